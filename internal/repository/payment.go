package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrPaymentNotFound = notFound("payment")

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	ByID(ctx context.Context, id string) (*model.Payment, error)
	ByOrder(ctx context.Context, orderID string) ([]*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id string) error
}

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `INSERT INTO payments (id, order_id, amount, method, status, paid_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return writeError("failed to insert payment", err)
	}

	return nil
}

func (r *paymentRepository) ByID(ctx context.Context, id string) (*model.Payment, error) {
	payment := &model.Payment{}
	query := `SELECT * FROM payments WHERE id = $1`

	err := r.db.GetContext(ctx, payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *paymentRepository) ByOrder(ctx context.Context, orderID string) ([]*model.Payment, error) {
	payments := []*model.Payment{}
	query := `SELECT * FROM payments WHERE order_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &payments, query, orderID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	query := `UPDATE payments SET amount = $1, method = $2, status = $3, paid_at = $4, updated_at = $5 WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.PaidAt,
		payment.UpdatedAt,
		payment.ID,
	)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrPaymentNotFound)
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM payments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrPaymentNotFound)
}
