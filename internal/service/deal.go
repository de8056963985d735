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

// errUnknownDealReference reports a creator or category id with no matching row.
var errUnknownDealReference = validation.Fail("createurUuid.categorieUuid.inexistant")

type DealService struct {
	repo   repository.DealRepository
	images *ImageIssuer
}

func NewDealService(repo repository.DealRepository, images *ImageIssuer) *DealService {
	return &DealService{
		repo:   repo,
		images: images,
	}
}

// Create validates and stores a deal with its images, then attaches an upload
// URL to every image.
func (s *DealService) Create(ctx context.Context, deal *model.Deal) (*model.Deal, error) {
	err := validation.ValidateDeal(deal)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deal.ID = uuid.New().String()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	deal.Images = s.images.Merge(nil, deal.Images)

	err = s.repo.Create(ctx, deal)
	if errors.Is(err, repository.ErrMissingReference) {
		return nil, errUnknownDealReference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.images.Issue(ctx, model.NamespaceDeals, deal.Images)
	return deal, nil
}

// Update replaces the deal fields and merges its images by id.
func (s *DealService) Update(ctx context.Context, id string, deal *model.Deal) (*model.Deal, error) {
	deal.ID = id
	err := validation.ValidateDealForUpdate(deal)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = deal.Title
	existing.Description = deal.Description
	existing.DealPrice = deal.DealPrice
	existing.PartPrice = deal.PartPrice
	existing.MaxParticipants = deal.MaxParticipants
	existing.StartDate = deal.StartDate
	existing.EndDate = deal.EndDate
	existing.Status = deal.Status
	existing.CreatorID = deal.CreatorID
	existing.CategoryID = deal.CategoryID
	existing.City = deal.City
	existing.UpdatedAt = time.Now()
	existing.Images = s.images.Merge(existing.Images, deal.Images)

	err = s.repo.Update(ctx, existing)
	if errors.Is(err, repository.ErrMissingReference) {
		return nil, errUnknownDealReference
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	s.images.Issue(ctx, model.NamespaceDeals, existing.Images)
	return existing, nil
}

func (s *DealService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *DealService) ByID(ctx context.Context, id string) (*model.Deal, error) {
	return s.repo.ByID(ctx, id)
}

func (s *DealService) List(ctx context.Context, filter repository.DealFilter) ([]*model.Deal, error) {
	return s.repo.List(ctx, filter)
}

func (s *DealService) ByStatus(ctx context.Context, status string) ([]*model.Deal, error) {
	return s.repo.List(ctx, repository.DealFilter{Status: status})
}

func (s *DealService) ByCreator(ctx context.Context, creatorID string) ([]*model.Deal, error) {
	return s.repo.List(ctx, repository.DealFilter{CreatorID: creatorID})
}

func (s *DealService) ByCategory(ctx context.Context, categoryID string) ([]*model.Deal, error) {
	return s.repo.List(ctx, repository.DealFilter{CategoryID: categoryID})
}
