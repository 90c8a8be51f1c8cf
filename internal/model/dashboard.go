package model

import "github.com/shopspring/decimal"

// QuickAction is a dashboard shortcut with a bilingual label.
type QuickAction struct {
	Key     string
	TitleEN string
	TitleBN string
	Href    string
}

type DashboardSummary struct {
	ActiveServices int64
	UnpaidInvoices int64
	OpenTickets    int64
	Revenue        decimal.Decimal
	RecentOrders   []Order
	QuickActions   []QuickAction
}
