package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrAddressNotFound = notFound("address")

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	ByID(ctx context.Context, id string) (*model.Address, error)
	ByUser(ctx context.Context, userID string) ([]*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id string) error
}

type addressRepository struct {
	db *sqlx.DB
}

func NewAddressRepository(db *sqlx.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	query := `INSERT INTO addresses (id, user_id, street, postal_code, city, country, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		address.ID,
		address.UserID,
		address.Street,
		address.PostalCode,
		address.City,
		address.Country,
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		return writeError("failed to insert address", err)
	}

	return nil
}

func (r *addressRepository) ByID(ctx context.Context, id string) (*model.Address, error) {
	address := &model.Address{}
	query := `SELECT * FROM addresses WHERE id = $1`

	err := r.db.GetContext(ctx, address, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (r *addressRepository) ByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	addresses := []*model.Address{}
	query := `SELECT * FROM addresses WHERE user_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &addresses, query, userID)
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	query := `UPDATE addresses SET street = $1, postal_code = $2, city = $3, country = $4, updated_at = $5 WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		address.Street,
		address.PostalCode,
		address.City,
		address.Country,
		address.UpdatedAt,
		address.ID,
	)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrAddressNotFound)
}

func (r *addressRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM addresses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrAddressNotFound)
}
