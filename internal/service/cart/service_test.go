package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/facreativefirm/billing-portal/internal/model"
	"github.com/facreativefirm/billing-portal/internal/service/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestServiceAddItem(t *testing.T) {
	t.Parallel()

	type deps struct {
		repository *mocks.MockCartRepository
	}

	newSvc := func(d deps) *service {
		return NewCartService(d.repository, time.Second, time.Second)
	}

	userID := uuid.New()
	itemID := uuid.New()

	type testCase struct {
		name   string
		params model.AddCartItemParams
		setup  func(d deps)
		assert func(t *testing.T, item *model.CartItem, err error, d deps)
	}

	tests := []testCase{
		{
			name: "validation error: empty user id",
			params: model.AddCartItemParams{
				UserID:       uuid.Nil,
				ProductID:    7,
				Name:         "Web Hosting",
				Type:         model.ItemTypeService,
				BillingCycle: model.CycleMonthly,
				Price:        dec("9.99"),
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, item)

				d.repository.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
			},
		},
		{
			name: "validation error: unknown billing cycle",
			params: model.AddCartItemParams{
				UserID:       userID,
				ProductID:    7,
				Name:         "Web Hosting",
				Type:         model.ItemTypeService,
				BillingCycle: model.BillingCycle("WEEKLY"),
				Price:        dec("9.99"),
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, item)

				d.repository.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
			},
		},
		{
			name: "domain name too short",
			params: model.AddCartItemParams{
				UserID:       userID,
				ProductID:    3,
				Name:         "Domain Registration",
				Type:         model.ItemTypeDomain,
				BillingCycle: model.CycleAnnually,
				Price:        dec("20.00"),
				DomainName:   strPtr("ab"),
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidDomainName)
				assert.Nil(t, item)

				d.repository.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
			},
		},
		{
			name: "success: domain name without tld gets .com and quantity defaults to one",
			params: model.AddCartItemParams{
				UserID:       userID,
				ProductID:    3,
				Name:         "Domain Registration",
				Type:         model.ItemTypeDomain,
				BillingCycle: model.CycleAnnually,
				Price:        dec("20.00"),
				DomainName:   strPtr("mysite"),
			},
			setup: func(d deps) {
				d.repository.
					On("AddItem", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
						return it.UserID == userID &&
							it.Quantity == 1 &&
							it.DomainName != nil && *it.DomainName == "mysite.com"
					})).
					Return(itemID, nil).
					Once()
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, item)
				assert.Equal(t, itemID, item.ID)

				d.repository.AssertExpectations(t)
			},
		},
		{
			name: "repository error",
			params: model.AddCartItemParams{
				UserID:       userID,
				ProductID:    7,
				Name:         "Web Hosting",
				Type:         model.ItemTypeService,
				BillingCycle: model.CycleMonthly,
				Price:        dec("9.99"),
				Quantity:     2,
			},
			setup: func(d deps) {
				d.repository.
					On("AddItem", mock.Anything, mock.Anything).
					Return(uuid.Nil, errors.New("db write failed")).
					Once()
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.Nil(t, item)

				d.repository.AssertExpectations(t)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{repository: mocks.NewMockCartRepository(t)}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			item, err := svc.AddItem(ctx, tt.params)
			tt.assert(t, item, err, d)
		})
	}
}

func TestServiceSetBillingCycle(t *testing.T) {
	t.Parallel()

	type deps struct {
		repository *mocks.MockCartRepository
	}

	newSvc := func(d deps) *service {
		return NewCartService(d.repository, time.Second, time.Second)
	}

	userID := uuid.New()
	itemID := uuid.New()

	storedItem := func() *model.CartItem {
		return &model.CartItem{
			ID:           itemID,
			UserID:       userID,
			Name:         "Web Hosting",
			Type:         model.ItemTypeService,
			BillingCycle: model.CycleMonthly,
			Price:        dec("9.99"),
			MonthlyPrice: decPtr("9.99"),
			AnnualPrice:  decPtr("99.00"),
			Quantity:     1,
		}
	}

	type testCase struct {
		name   string
		cycle  model.BillingCycle
		setup  func(d deps)
		assert func(t *testing.T, item *model.CartItem, err error, d deps)
	}

	tests := []testCase{
		{
			name:  "unknown cycle",
			cycle: model.BillingCycle("WEEKLY"),
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, item)

				d.repository.AssertNotCalled(t, "ItemByID", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:  "item not found",
			cycle: model.CycleAnnually,
			setup: func(d deps) {
				d.repository.
					On("ItemByID", mock.Anything, userID, itemID).
					Return((*model.CartItem)(nil), model.ErrCartItemNotFound).
					Once()
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrCartItemNotFound)
				assert.Nil(t, item)

				d.repository.AssertExpectations(t)
			},
		},
		{
			name:  "no price option for the requested cycle",
			cycle: model.CycleAnnually,
			setup: func(d deps) {
				it := storedItem()
				it.AnnualPrice = nil

				d.repository.
					On("ItemByID", mock.Anything, userID, itemID).
					Return(it, nil).
					Once()
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, item)

				d.repository.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "success: switch to annual reprices the item",
			cycle: model.CycleAnnually,
			setup: func(d deps) {
				d.repository.
					On("ItemByID", mock.Anything, userID, itemID).
					Return(storedItem(), nil).
					Once()

				d.repository.
					On("UpdateItem", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
						return it.BillingCycle == model.CycleAnnually && it.Price.Equal(dec("99.00"))
					})).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, item *model.CartItem, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, item)
				assert.Equal(t, model.CycleAnnually, item.BillingCycle)
				assert.True(t, item.Price.Equal(dec("99.00")))

				d.repository.AssertExpectations(t)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{repository: mocks.NewMockCartRepository(t)}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			item, err := svc.SetBillingCycle(ctx, userID, itemID, tt.cycle)
			tt.assert(t, item, err, d)
		})
	}
}

func TestServiceSetDomainName(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	itemID := uuid.New()

	t.Run("rejects non-domain item", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockCartRepository(t)
		repo.
			On("ItemByID", mock.Anything, userID, itemID).
			Return(&model.CartItem{ID: itemID, UserID: userID, Type: model.ItemTypeService}, nil).
			Once()

		svc := NewCartService(repo, time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		item, err := svc.SetDomainName(ctx, userID, itemID, "mysite")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Nil(t, item)

		repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("normalizes and stores the name", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockCartRepository(t)
		repo.
			On("ItemByID", mock.Anything, userID, itemID).
			Return(&model.CartItem{ID: itemID, UserID: userID, Type: model.ItemTypeDomain}, nil).
			Once()
		repo.
			On("UpdateItem", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
				return it.DomainName != nil && *it.DomainName == "mysite.com"
			})).
			Return(nil).
			Once()

		svc := NewCartService(repo, time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		item, err := svc.SetDomainName(ctx, userID, itemID, "  mysite  ")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "mysite.com", *item.DomainName)
	})
}

func TestServiceApplyPromoCode(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("unknown code rejected without storing", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockCartRepository(t)
		svc := NewCartService(repo, time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := svc.ApplyPromoCode(ctx, userID, "SAVE50")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidPromoCode)

		repo.AssertNotCalled(t, "SetPromoCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("exact match stored", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockCartRepository(t)
		repo.
			On("SetPromoCode", mock.Anything, userID, mock.MatchedBy(func(code *string) bool {
				return code != nil && *code == model.PromoCode
			})).
			Return(nil).
			Once()

		svc := NewCartService(repo, time.Second, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		require.NoError(t, svc.ApplyPromoCode(ctx, userID, "SAVE20"))
	})
}
