package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrAdvertisementNotFound = notFound("advertisement")

type AdvertisementRepository interface {
	Create(ctx context.Context, ad *model.Advertisement) error
	ByID(ctx context.Context, id string) (*model.Advertisement, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Advertisement, error)
	Update(ctx context.Context, ad *model.Advertisement) error
	Delete(ctx context.Context, id string) error
}

type advertisementRepository struct {
	db *sqlx.DB
}

func NewAdvertisementRepository(db *sqlx.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ctx context.Context, ad *model.Advertisement) error {
	query := `INSERT INTO advertisements (id, title, description, external_link, start_date, end_date, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			ad.ID,
			ad.Title,
			ad.Description,
			ad.ExternalLink,
			ad.StartDate,
			ad.EndDate,
			ad.Active,
			ad.CreatedAt,
			ad.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert advertisement: %w", err)
		}

		return saveImages(ctx, tx, TableAdImages, ad.ID, ad.Images)
	})
}

func (r *advertisementRepository) ByID(ctx context.Context, id string) (*model.Advertisement, error) {
	ad := &model.Advertisement{}
	query := `SELECT * FROM advertisements WHERE id = $1`

	err := r.db.GetContext(ctx, ad, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdvertisementNotFound
	}
	if err != nil {
		return nil, err
	}

	images, err := imagesByOwners(ctx, r.db, TableAdImages, []string{ad.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load advertisement images: %w", err)
	}
	ad.Images = images[ad.ID]

	return ad, nil
}

func (r *advertisementRepository) List(ctx context.Context, activeOnly bool) ([]*model.Advertisement, error) {
	query := `SELECT * FROM advertisements ORDER BY created_at DESC`
	var args []any
	if activeOnly {
		query = `SELECT * FROM advertisements WHERE active = $1 ORDER BY created_at DESC`
		args = append(args, true)
	}

	ads := []*model.Advertisement{}
	err := r.db.SelectContext(ctx, &ads, query, args...)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ads))
	for i, a := range ads {
		ids[i] = a.ID
	}
	images, err := imagesByOwners(ctx, r.db, TableAdImages, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load advertisement images: %w", err)
	}
	for _, a := range ads {
		a.Images = images[a.ID]
	}

	return ads, nil
}

func (r *advertisementRepository) Update(ctx context.Context, ad *model.Advertisement) error {
	query := `UPDATE advertisements
	          SET title = $1, description = $2, external_link = $3, start_date = $4, end_date = $5, active = $6, updated_at = $7
	          WHERE id = $8`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			ad.Title,
			ad.Description,
			ad.ExternalLink,
			ad.StartDate,
			ad.EndDate,
			ad.Active,
			ad.UpdatedAt,
			ad.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update advertisement: %w", err)
		}

		err = checkAffected(result, ErrAdvertisementNotFound)
		if err != nil {
			return err
		}

		return saveImages(ctx, tx, TableAdImages, ad.ID, ad.Images)
	})
}

func (r *advertisementRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM advertisements WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrAdvertisementNotFound)
}
