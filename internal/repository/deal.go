package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrDealNotFound = notFound("deal")

// DealFilter narrows List; empty fields are ignored.
type DealFilter struct {
	Status     string
	CreatorID  string
	CategoryID string
}

type DealRepository interface {
	Create(ctx context.Context, deal *model.Deal) error
	ByID(ctx context.Context, id string) (*model.Deal, error)
	List(ctx context.Context, filter DealFilter) ([]*model.Deal, error)
	Update(ctx context.Context, deal *model.Deal) error
	Delete(ctx context.Context, id string) error
}

type dealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(ctx context.Context, deal *model.Deal) error {
	query := `INSERT INTO deals (id, title, description, deal_price, part_price, max_participants, start_date, end_date, status, creator_id, category_id, city, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			deal.ID,
			deal.Title,
			deal.Description,
			deal.DealPrice,
			deal.PartPrice,
			deal.MaxParticipants,
			deal.StartDate,
			deal.EndDate,
			deal.Status,
			deal.CreatorID,
			deal.CategoryID,
			deal.City,
			deal.CreatedAt,
			deal.UpdatedAt,
		)
		if err != nil {
			return writeError("failed to insert deal", err)
		}

		return saveImages(ctx, tx, TableDealImages, deal.ID, deal.Images)
	})
}

func (r *dealRepository) ByID(ctx context.Context, id string) (*model.Deal, error) {
	deal := &model.Deal{}
	query := `SELECT * FROM deals WHERE id = $1`

	err := r.db.GetContext(ctx, deal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}

	images, err := imagesByOwners(ctx, r.db, TableDealImages, []string{deal.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load deal images: %w", err)
	}
	deal.Images = images[deal.ID]

	return deal, nil
}

func (r *dealRepository) List(ctx context.Context, filter DealFilter) ([]*model.Deal, error) {
	var conditions []string
	var args []any

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("status", filter.Status)
	add("creator_id", filter.CreatorID)
	add("category_id", filter.CategoryID)

	query := `SELECT * FROM deals`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	deals := []*model.Deal{}
	err := r.db.SelectContext(ctx, &deals, query, args...)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(deals))
	for i, d := range deals {
		ids[i] = d.ID
	}
	images, err := imagesByOwners(ctx, r.db, TableDealImages, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load deal images: %w", err)
	}
	for _, d := range deals {
		d.Images = images[d.ID]
	}

	return deals, nil
}

// Update overwrites the deal row and upserts its images by id. Images stored
// for the deal but absent from deal.Images are kept.
func (r *dealRepository) Update(ctx context.Context, deal *model.Deal) error {
	query := `UPDATE deals
	          SET title = $1, description = $2, deal_price = $3, part_price = $4, max_participants = $5,
	              start_date = $6, end_date = $7, status = $8, creator_id = $9, category_id = $10, city = $11, updated_at = $12
	          WHERE id = $13`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			deal.Title,
			deal.Description,
			deal.DealPrice,
			deal.PartPrice,
			deal.MaxParticipants,
			deal.StartDate,
			deal.EndDate,
			deal.Status,
			deal.CreatorID,
			deal.CategoryID,
			deal.City,
			deal.UpdatedAt,
			deal.ID,
		)
		if err != nil {
			return writeError("failed to update deal", err)
		}

		err = checkAffected(result, ErrDealNotFound)
		if err != nil {
			return err
		}

		return saveImages(ctx, tx, TableDealImages, deal.ID, deal.Images)
	})
}

func (r *dealRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM deals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrDealNotFound)
}
