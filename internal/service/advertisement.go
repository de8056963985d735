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

type AdvertisementService struct {
	repo   repository.AdvertisementRepository
	images *ImageIssuer
	now    func() time.Time
}

func NewAdvertisementService(repo repository.AdvertisementRepository, images *ImageIssuer) *AdvertisementService {
	return &AdvertisementService{
		repo:   repo,
		images: images,
		now:    time.Now,
	}
}

func (s *AdvertisementService) Create(ctx context.Context, ad *model.Advertisement) (*model.Advertisement, error) {
	err := validation.ValidateAdvertisement(ad)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ad.ID = uuid.New().String()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	ad.Images = s.images.Merge(nil, ad.Images)

	err = s.repo.Create(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}

	s.images.Issue(ctx, model.NamespaceAdvertisements, ad.Images)
	return ad, nil
}

func (s *AdvertisementService) Update(ctx context.Context, id string, ad *model.Advertisement) (*model.Advertisement, error) {
	ad.ID = id
	err := validation.ValidateAdvertisementForUpdate(ad)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = ad.Title
	existing.Description = ad.Description
	existing.ExternalLink = ad.ExternalLink
	existing.StartDate = ad.StartDate
	existing.EndDate = ad.EndDate
	existing.Active = ad.Active
	existing.UpdatedAt = s.now()
	existing.Images = s.images.Merge(existing.Images, ad.Images)

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}

	s.images.Issue(ctx, model.NamespaceAdvertisements, existing.Images)
	return existing, nil
}

func (s *AdvertisementService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *AdvertisementService) ByID(ctx context.Context, id string) (*model.Advertisement, error) {
	return s.repo.ByID(ctx, id)
}

func (s *AdvertisementService) List(ctx context.Context) ([]*model.Advertisement, error) {
	return s.repo.List(ctx, false)
}

// Active returns the advertisements flagged active whose date window contains now.
func (s *AdvertisementService) Active(ctx context.Context) ([]*model.Advertisement, error) {
	ads, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	now := s.now()
	running := make([]*model.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if ad.RunningAt(now) {
			running = append(running, ad)
		}
	}
	return running, nil
}
