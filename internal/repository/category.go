package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrCategoryNotFound      = notFound("category")
	ErrDuplicateCategoryName = errors.New("category name already exists")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	ByID(ctx context.Context, id string) (*model.Category, error)
	ByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateCategoryName
	}

	return err
}

func (r *categoryRepository) ByID(ctx context.Context, id string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

// ByName matches the name exactly (case-sensitive).
func (r *categoryRepository) ByName(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE name = $1`

	err := r.db.GetContext(ctx, category, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	categories := []*model.Category{}
	query := `SELECT * FROM categories ORDER BY name`

	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.UpdatedAt, category.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateCategoryName
	}
	if err != nil {
		return err
	}

	return checkAffected(result, ErrCategoryNotFound)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrCategoryNotFound)
}
