package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/validation"
	"github.com/google/uuid"
)

type PaymentService struct {
	repo   repository.PaymentRepository
	orders repository.OrderRepository
}

func NewPaymentService(repo repository.PaymentRepository, orders repository.OrderRepository) *PaymentService {
	return &PaymentService{
		repo:   repo,
		orders: orders,
	}
}

func (s *PaymentService) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	err := validation.ValidatePayment(payment)
	if err != nil {
		return nil, err
	}

	_, err = s.orders.ByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}

	if payment.Status == "" {
		payment.Status = model.PaymentStatusPending
	}

	now := time.Now()
	payment.ID = uuid.New().String()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	stampPaidAt(payment, now)

	err = s.repo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

func (s *PaymentService) Update(ctx context.Context, id string, payment *model.Payment) (*model.Payment, error) {
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.ID = id
	payment.OrderID = existing.OrderID
	err = validation.ValidatePaymentForUpdate(payment)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing.Amount = payment.Amount
	existing.Method = payment.Method
	if payment.Status != "" {
		existing.Status = payment.Status
	}
	if payment.PaidAt != nil {
		existing.PaidAt = payment.PaidAt
	}
	existing.UpdatedAt = now
	stampPaidAt(existing, now)

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return existing, nil
}

// stampPaidAt records the settlement time the first time a payment succeeds.
func stampPaidAt(payment *model.Payment, now time.Time) {
	if payment.Status == model.PaymentStatusSucceeded && payment.PaidAt == nil {
		payment.PaidAt = &now
	}
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *PaymentService) ByID(ctx context.Context, id string) (*model.Payment, error) {
	return s.repo.ByID(ctx, id)
}

func (s *PaymentService) ByOrder(ctx context.Context, orderID string) ([]*model.Payment, error) {
	return s.repo.ByOrder(ctx, orderID)
}
