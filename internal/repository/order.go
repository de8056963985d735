package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrOrderNotFound = notFound("order")

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ByID(ctx context.Context, id string) (*model.Order, error)
	ByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ByDeal(ctx context.Context, dealID string) ([]*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `INSERT INTO orders (id, deal_id, user_id, address_id, quantity, amount, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.DealID,
		order.UserID,
		order.AddressID,
		order.Quantity,
		order.Amount,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return writeError("failed to insert order", err)
	}

	return nil
}

func (r *orderRepository) ByID(ctx context.Context, id string) (*model.Order, error) {
	order := &model.Order{}
	query := `SELECT * FROM orders WHERE id = $1`

	err := r.db.GetContext(ctx, order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	orders := []*model.Order{}
	query := `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &orders, query, userID)
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) ByDeal(ctx context.Context, dealID string) ([]*model.Order, error) {
	orders := []*model.Order{}
	query := `SELECT * FROM orders WHERE deal_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &orders, query, dealID)
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	query := `UPDATE orders SET address_id = $1, quantity = $2, amount = $3, status = $4, updated_at = $5 WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		order.AddressID,
		order.Quantity,
		order.Amount,
		order.Status,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return writeError("failed to update order", err)
	}

	return checkAffected(result, ErrOrderNotFound)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrOrderNotFound)
}
