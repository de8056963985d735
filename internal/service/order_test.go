package service

import (
	"context"
	"testing"
	"time"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[string]*model.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *model.Order) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) ByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) ByUser(_ context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) ByDeal(_ context.Context, dealID string) ([]*model.Order, error) {
	var orders []*model.Order
	for _, o := range r.orders {
		if o.DealID == dealID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *model.Order) error {
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

func publishedDeal() *model.Deal {
	deal := newDeal()
	deal.ID = "deal-1"
	deal.Status = model.DealStatusPublished
	return deal
}

func TestOrderService_CreateComputesAmount(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[string]*model.Order{}}
	svc := NewOrderService(orders, newFakeDealRepo(publishedDeal()))

	order, err := svc.Create(context.Background(), &model.Order{
		DealID:   "deal-1",
		UserID:   "user-1",
		Quantity: 3,
		Amount:   decimal.NewFromInt(1),
	})

	require.NoError(t, err)
	assert.True(t, order.Amount.Equal(decimal.RequireFromString("36.00")), "got %s", order.Amount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Contains(t, orders.orders, order.ID)
}

func TestOrderService_CreateRequiresPublishedDeal(t *testing.T) {
	draft := publishedDeal()
	draft.Status = model.DealStatusDraft
	orders := &fakeOrderRepo{orders: map[string]*model.Order{}}
	svc := NewOrderService(orders, newFakeDealRepo(draft))

	_, err := svc.Create(context.Background(), &model.Order{DealID: "deal-1", UserID: "user-1", Quantity: 1})

	assert.Equal(t, "dealUuid.nonPublie", validationCode(t, err))
	assert.Empty(t, orders.orders)

	_, err = svc.Create(context.Background(), &model.Order{DealID: "missing", UserID: "user-1", Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrDealNotFound)
}

func TestOrderService_UpdateRecomputesAmount(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[string]*model.Order{
		"ord-1": {ID: "ord-1", DealID: "deal-1", UserID: "user-1", Quantity: 1, Amount: decimal.NewFromInt(12), Status: model.OrderStatusPending},
	}}
	svc := NewOrderService(orders, newFakeDealRepo(publishedDeal()))

	updated, err := svc.Update(context.Background(), "ord-1", &model.Order{Quantity: 2, Status: model.OrderStatusConfirmed})

	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)
	assert.Equal(t, "deal-1", updated.DealID)
}

type fakePaymentRepo struct {
	payments map[string]*model.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) error {
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) ByID(_ context.Context, id string) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) ByOrder(_ context.Context, orderID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *model.Payment) error {
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id string) error {
	delete(r.payments, id)
	return nil
}

func TestPaymentService_Create(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[string]*model.Order{"ord-1": {ID: "ord-1"}}}
	payments := &fakePaymentRepo{payments: map[string]*model.Payment{}}
	svc := NewPaymentService(payments, orders)
	ctx := context.Background()

	pending, err := svc.Create(ctx, &model.Payment{OrderID: "ord-1", Amount: decimal.NewFromInt(36), Method: model.PaymentMethodCard})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, pending.Status)
	assert.Nil(t, pending.PaidAt)

	paid, err := svc.Create(ctx, &model.Payment{OrderID: "ord-1", Amount: decimal.NewFromInt(36), Method: model.PaymentMethodPaypal, Status: model.PaymentStatusSucceeded})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now(), *paid.PaidAt, time.Minute)

	_, err = svc.Create(ctx, &model.Payment{OrderID: "ord-404", Amount: decimal.NewFromInt(1), Method: model.PaymentMethodCard})
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	_, err = svc.Create(ctx, &model.Payment{OrderID: "ord-1", Amount: decimal.NewFromInt(1), Method: "CHEQUE"})
	assert.Equal(t, "moyenPaiement.invalide", validationCode(t, err))
}
