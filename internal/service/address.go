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

type AddressService struct {
	repo  repository.AddressRepository
	users repository.UserRepository
}

func NewAddressService(repo repository.AddressRepository, users repository.UserRepository) *AddressService {
	return &AddressService{
		repo:  repo,
		users: users,
	}
}

func (s *AddressService) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	err := validation.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	_, err = s.users.ByID(ctx, address.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	address.ID = uuid.New().String()
	address.CreatedAt = now
	address.UpdatedAt = now

	err = s.repo.Create(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return address, nil
}

// Update changes the postal fields; the owning user is fixed at creation.
func (s *AddressService) Update(ctx context.Context, id string, address *model.Address) (*model.Address, error) {
	existing, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address.ID = id
	address.UserID = existing.UserID
	err = validation.ValidateAddressForUpdate(address)
	if err != nil {
		return nil, err
	}

	existing.Street = address.Street
	existing.PostalCode = address.PostalCode
	existing.City = address.City
	existing.Country = address.Country
	existing.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return existing, nil
}

func (s *AddressService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *AddressService) ByID(ctx context.Context, id string) (*model.Address, error) {
	return s.repo.ByID(ctx, id)
}

func (s *AddressService) ByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.repo.ByUser(ctx, userID)
}
