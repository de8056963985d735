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

type CommentService struct {
	repo  repository.CommentRepository
	deals repository.DealRepository
}

func NewCommentService(repo repository.CommentRepository, deals repository.DealRepository) *CommentService {
	return &CommentService{
		repo:  repo,
		deals: deals,
	}
}

func (s *CommentService) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	err := validation.ValidateComment(comment)
	if err != nil {
		return nil, err
	}

	_, err = s.deals.ByID(ctx, comment.DealID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment.ID = uuid.New().String()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	err = s.repo.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// Update edits content and rating; deal and author never change.
func (s *CommentService) Update(ctx context.Context, id string, comment *model.Comment) (*model.Comment, error) {
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.ID = id
	comment.DealID = existing.DealID
	comment.UserID = existing.UserID
	err = validation.ValidateCommentForUpdate(comment)
	if err != nil {
		return nil, err
	}

	existing.Content = comment.Content
	existing.Rating = comment.Rating
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return existing, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CommentService) ByID(ctx context.Context, id string) (*model.Comment, error) {
	return s.repo.ByID(ctx, id)
}

func (s *CommentService) ByDeal(ctx context.Context, dealID string) ([]*model.Comment, error) {
	return s.repo.ByDeal(ctx, dealID)
}
