package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	repo  repository.OrderRepository
	deals repository.DealRepository
}

func NewOrderService(repo repository.OrderRepository, deals repository.DealRepository) *OrderService {
	return &OrderService{
		repo:  repo,
		deals: deals,
	}
}

// Create books parts of a published deal. The amount is always computed from
// the deal's part price; a client-sent amount is ignored.
func (s *OrderService) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := validation.ValidateOrder(order)
	if err != nil {
		return nil, err
	}

	deal, err := s.orderableDeal(ctx, order.DealID)
	if err != nil {
		return nil, err
	}

	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	now := time.Now()
	order.ID = uuid.New().String()
	order.Amount = deal.PartPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
	order.CreatedAt = now
	order.UpdatedAt = now

	err = s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (s *OrderService) orderableDeal(ctx context.Context, dealID string) (*model.Deal, error) {
	deal, err := s.deals.ByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != model.DealStatusPublished {
		return nil, validation.Fail("dealUuid.nonPublie", "statut", deal.Status)
	}
	return deal, nil
}

// Update changes quantity, address and status; the amount follows the quantity.
func (s *OrderService) Update(ctx context.Context, id string, order *model.Order) (*model.Order, error) {
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ID = id
	order.DealID = existing.DealID
	order.UserID = existing.UserID
	err = validation.ValidateOrderForUpdate(order)
	if err != nil {
		return nil, err
	}

	if order.Quantity != existing.Quantity {
		deal, err := s.deals.ByID(ctx, existing.DealID)
		if err != nil {
			return nil, err
		}
		existing.Amount = deal.PartPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
	}

	existing.Quantity = order.Quantity
	existing.AddressID = order.AddressID
	if order.Status != "" {
		existing.Status = order.Status
	}
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return existing, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *OrderService) ByID(ctx context.Context, id string) (*model.Order, error) {
	return s.repo.ByID(ctx, id)
}

func (s *OrderService) ByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.repo.ByUser(ctx, userID)
}

func (s *OrderService) ByDeal(ctx context.Context, dealID string) ([]*model.Order, error) {
	return s.repo.ByDeal(ctx, dealID)
}
