package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/validation"
	"github.com/google/uuid"
)

const codeCategoryNameTaken = "categorie.nom.existant"

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	err := validation.ValidateCategory(category)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameOwner(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, conflict(codeCategoryNameTaken)
	}

	now := time.Now()
	category.ID = uuid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now

	err = s.repo.Create(ctx, category)
	if errors.Is(err, repository.ErrDuplicateCategoryName) {
		return nil, conflict(codeCategoryNameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// Update renames a category. Keeping its own name is not a conflict.
func (s *CategoryService) Update(ctx context.Context, id string, category *model.Category) (*model.Category, error) {
	category.ID = id
	err := validation.ValidateCategoryForUpdate(category)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameOwner(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if taken != nil && taken.ID != id {
		return nil, conflict(codeCategoryNameTaken)
	}

	existing.Name = category.Name
	existing.Description = category.Description
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if errors.Is(err, repository.ErrDuplicateCategoryName) {
		return nil, conflict(codeCategoryNameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return existing, nil
}

// nameOwner returns the category holding name, or nil when it is free.
func (s *CategoryService) nameOwner(ctx context.Context, name string) (*model.Category, error) {
	category, err := s.repo.ByName(ctx, name)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CategoryService) ByID(ctx context.Context, id string) (*model.Category, error) {
	return s.repo.ByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}
