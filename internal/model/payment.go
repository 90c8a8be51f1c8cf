package model

import (
	"bytes"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	PaymentMethod string
	PaymentKind   string
	Gateway       string
)

const (
	MethodCard        PaymentMethod = "card"
	MethodMobile      PaymentMethod = "mobile"
	MethodBank        PaymentMethod = "bank"
	MethodBkashManual PaymentMethod = "bkash_manual"
	MethodNagadManual PaymentMethod = "nagad_manual"
)

const (
	KindInstant PaymentKind = "INSTANT"
	KindManual  PaymentKind = "MANUAL"
)

const (
	GatewayStripe Gateway = "STRIPE"
	GatewayBkash  Gateway = "BKASH"
)

func (m PaymentMethod) Known() bool {
	switch m {
	case MethodCard, MethodMobile, MethodBank, MethodBkashManual, MethodNagadManual:
		return true
	default:
		return false
	}
}

func (m PaymentMethod) Kind() PaymentKind {
	switch m {
	case MethodCard, MethodMobile:
		return KindInstant
	default:
		return KindManual
	}
}

// Gateway selects the charge processor for instant methods. Mobile
// banking routes through bKash, everything else through Stripe.
func (m PaymentMethod) Gateway() Gateway {
	if m == MethodMobile {
		return GatewayBkash
	}
	return GatewayStripe
}

// Payment instruction templates for manual methods, in English and Bangla.
// {{.Reference}} is replaced with the invoice number the payer must cite.
var manualInstructions = map[PaymentMethod]struct {
	en *template.Template
	bn *template.Template
}{
	MethodBank: {
		en: template.Must(template.New("bank_en").Parse(
			"Transfer the total amount to City Bank, A/C 1101-2345-6789 (FA Creative Firm Ltd), Gulshan Branch. Use {{.Reference}} as the transfer reference.")),
		bn: template.Must(template.New("bank_bn").Parse(
			"সিটি ব্যাংক, হিসাব নম্বর ১১০১-২৩৪৫-৬৭৮৯ (এফএ ক্রিয়েটিভ ফার্ম লিঃ), গুলশান শাখায় সম্পূর্ণ টাকা পাঠান। রেফারেন্স হিসেবে {{.Reference}} লিখুন।")),
	},
	MethodBkashManual: {
		en: template.Must(template.New("bkash_en").Parse(
			"Send the total amount to bKash merchant 01700-000000 using the Payment option. Use {{.Reference}} as the reference, then submit the transaction ID below.")),
		bn: template.Must(template.New("bkash_bn").Parse(
			"পেমেন্ট অপশন ব্যবহার করে বিকাশ মার্চেন্ট ০১৭০০-০০০০০০ নম্বরে সম্পূর্ণ টাকা পাঠান। রেফারেন্স হিসেবে {{.Reference}} দিন এবং নিচে ট্রানজেকশন আইডি জমা দিন।")),
	},
	MethodNagadManual: {
		en: template.Must(template.New("nagad_en").Parse(
			"Send the total amount to Nagad merchant 01800-000000. Use {{.Reference}} as the reference, then submit the transaction ID below.")),
		bn: template.Must(template.New("nagad_bn").Parse(
			"নগদ মার্চেন্ট ০১৮০০-০০০০০০ নম্বরে সম্পূর্ণ টাকা পাঠান। রেফারেন্স হিসেবে {{.Reference}} দিন এবং নিচে ট্রানজেকশন আইডি জমা দিন।")),
	},
}

type PaymentInstructions struct {
	English string
	Bangla  string
}

// Instructions renders the manual payment instructions for the method with
// the given invoice reference substituted in. Instant methods have none.
func (m PaymentMethod) Instructions(reference string) (PaymentInstructions, error) {
	tpl, ok := manualInstructions[m]
	if !ok {
		return PaymentInstructions{}, ErrManualMethodOnly
	}

	data := struct{ Reference string }{Reference: reference}

	var en, bn bytes.Buffer
	if err := tpl.en.Execute(&en, data); err != nil {
		return PaymentInstructions{}, err
	}
	if err := tpl.bn.Execute(&bn, data); err != nil {
		return PaymentInstructions{}, err
	}

	return PaymentInstructions{English: en.String(), Bangla: bn.String()}, nil
}

type PaymentMethodInfo struct {
	Method  PaymentMethod
	Kind    PaymentKind
	TitleEN string
	TitleBN string
}

// PaymentMethods is the catalog presented on the payment selection step.
var PaymentMethods = []PaymentMethodInfo{
	{Method: MethodCard, Kind: KindInstant, TitleEN: "Credit / Debit Card", TitleBN: "ক্রেডিট / ডেবিট কার্ড"},
	{Method: MethodMobile, Kind: KindInstant, TitleEN: "Mobile Banking", TitleBN: "মোবাইল ব্যাংকিং"},
	{Method: MethodBank, Kind: KindManual, TitleEN: "Bank Transfer", TitleBN: "ব্যাংক ট্রান্সফার"},
	{Method: MethodBkashManual, Kind: KindManual, TitleEN: "bKash (Manual)", TitleBN: "বিকাশ (ম্যানুয়াল)"},
	{Method: MethodNagadManual, Kind: KindManual, TitleEN: "Nagad (Manual)", TitleBN: "নগদ (ম্যানুয়াল)"},
}

type ManualPaymentStatus string

const (
	ManualPaymentSubmitted ManualPaymentStatus = "SUBMITTED"
	ManualPaymentApproved  ManualPaymentStatus = "APPROVED"
	ManualPaymentRejected  ManualPaymentStatus = "REJECTED"
)

// ManualPayment is a payment proof submitted by the customer for an
// operator to verify against the provider statement.
type ManualPayment struct {
	ID            uuid.UUID
	InvoiceID     uuid.UUID
	Method        PaymentMethod
	TransactionID string
	SenderNumber  string
	Status        ManualPaymentStatus
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type PaymentTransaction struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Gateway   Gateway
	Reference string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

type ChargeParams struct {
	InvoiceID uuid.UUID
	Gateway   Gateway
	Amount    decimal.Decimal
	Currency  string
}

type ChargeResult struct {
	Reference string
}
