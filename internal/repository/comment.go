package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrCommentNotFound = notFound("comment")

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ByID(ctx context.Context, id string) (*model.Comment, error)
	ByDeal(ctx context.Context, dealID string) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (id, deal_id, user_id, content, rating, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.DealID,
		comment.UserID,
		comment.Content,
		comment.Rating,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return writeError("failed to insert comment", err)
	}

	return nil
}

func (r *commentRepository) ByID(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (r *commentRepository) ByDeal(ctx context.Context, dealID string) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	query := `SELECT * FROM comments WHERE deal_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &comments, query, dealID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	query := `UPDATE comments SET content = $1, rating = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, comment.Content, comment.Rating, comment.UpdatedAt, comment.ID)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrCommentNotFound)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrCommentNotFound)
}
