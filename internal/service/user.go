package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/validation"
	"github.com/google/uuid"
)

const codeEmailTaken = "utilisateur.email.existant"

var ErrAvatarNotFound = fmt.Errorf("avatar %w", repository.ErrNotFound)

// AccountProvider manages the identity-provider side of a user.
type AccountProvider interface {
	CreateAccount(ctx context.Context, account identity.Account, password string) (string, error)
	SetEnabled(ctx context.Context, subject string, enabled bool) error
	AssignRole(ctx context.Context, subject, role string) error
	ResetPassword(ctx context.Context, subject, password string) error
}

// ObjectStore is the part of object storage the user service needs beyond uploads.
type ObjectStore interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type UserService struct {
	repo           repository.UserRepository
	avatars        repository.ImageRepository
	images         *ImageIssuer
	objects        ObjectStore
	accounts       AccountProvider
	downloadExpiry time.Duration
}

func NewUserService(
	repo repository.UserRepository,
	avatars repository.ImageRepository,
	images *ImageIssuer,
	objects ObjectStore,
	accounts AccountProvider,
	downloadExpiry time.Duration,
) *UserService {
	return &UserService{
		repo:           repo,
		avatars:        avatars,
		images:         images,
		objects:        objects,
		accounts:       accounts,
		downloadExpiry: downloadExpiry,
	}
}

// Create provisions the identity account first and stores its subject on the user.
func (s *UserService) Create(ctx context.Context, user *model.User, password string) (*model.User, error) {
	err := validation.ValidateUser(user)
	if err != nil {
		return nil, err
	}
	if password != "" {
		err = validation.ValidatePassword(password)
		if err != nil {
			return nil, err
		}
	}

	err = s.ensureEmailFree(ctx, user.Email, "")
	if err != nil {
		return nil, err
	}

	if user.Role == "" {
		user.Role = model.RoleClient
	}
	user.Enabled = true

	subject, err := s.accounts.CreateAccount(ctx, identity.Account{
		Username:  user.Email,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Enabled:   true,
	}, password)
	if errors.Is(err, identity.ErrAccountExists) {
		return nil, conflict(codeEmailTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}

	if user.Role != model.RoleClient {
		err = s.accounts.AssignRole(ctx, subject, user.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to assign role: %w", err)
		}
	}

	now := time.Now()
	user.ID = uuid.New().String()
	user.IdentityID = subject
	user.CreatedAt = now
	user.UpdatedAt = now

	err = s.repo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, conflict(codeEmailTaken)
	}
	if err != nil {
		slog.Error("identity account created without local user", "subject", subject, "email", user.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies the non-nil fields of patch.
func (s *UserService) Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error) {
	err := validation.ValidateUserPatch(patch)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		err = s.ensureEmailFree(ctx, *patch.Email, id)
		if err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	user.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, conflict(codeEmailTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.withAvatar(ctx, user)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return conflict(codeEmailTaken)
	}
	return nil
}

// SetAvatar replaces the single avatar slot of a user and returns it with an
// upload URL when its key changed.
func (s *UserService) SetAvatar(ctx context.Context, id string, avatar *model.Image) (*model.Image, error) {
	err := validation.ValidateImageKey("photoProfil.urlImage", avatar.StorageKey)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.avatars.ByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load avatar: %w", err)
	}

	incoming := &model.Image{StorageKey: avatar.StorageKey}
	previousKey := ""
	if len(stored) > 0 {
		stored = stored[:1]
		incoming.ID = stored[0].ID
		previousKey = stored[0].StorageKey
	}

	merged := s.images.Merge(stored, []*model.Image{incoming})
	current := merged[0]

	err = s.avatars.Save(ctx, id, []*model.Image{current})
	if err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	if previousKey != "" && previousKey != current.StorageKey {
		s.deleteObject(ctx, model.NamespaceUsers.ObjectKey(previousKey))
	}

	s.images.Issue(ctx, model.NamespaceUsers, []*model.Image{current})
	return current, nil
}

// deleteObject is best effort; an orphaned object only costs storage.
func (s *UserService) deleteObject(ctx context.Context, key string) {
	err := s.objects.Delete(ctx, key)
	if err != nil {
		slog.Warn("failed to delete replaced avatar", "error", err, "key", key)
	}
}

// AvatarURL returns a time-limited read URL for the user's avatar.
func (s *UserService) AvatarURL(ctx context.Context, id string) (string, error) {
	stored, err := s.avatars.ByOwner(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load avatar: %w", err)
	}
	if len(stored) == 0 {
		return "", ErrAvatarNotFound
	}

	url, err := s.objects.PresignGet(ctx, model.NamespaceUsers.ObjectKey(stored[0].StorageKey), s.downloadExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign avatar: %w", err)
	}
	return url, nil
}

func (s *UserService) SetEnabled(ctx context.Context, id string, enabled bool) (*model.User, error) {
	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.accounts.SetEnabled(ctx, user.IdentityID, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to update identity account: %w", err)
	}

	user.Enabled = enabled
	user.UpdatedAt = time.Now()
	err = s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) AssignRole(ctx context.Context, id, role string) (*model.User, error) {
	err := validation.ValidateRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.accounts.AssignRole(ctx, user.IdentityID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	err = s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) ResetPassword(ctx context.Context, id, password string) error {
	err := validation.ValidatePassword(password)
	if err != nil {
		return err
	}

	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.accounts.ResetPassword(ctx, user.IdentityID, password)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	slog.Info("password reset", "user_id", id)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAvatar(ctx, user)
}

// BySubject resolves the local user behind a bearer token subject.
func (s *UserService) BySubject(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.repo.ByIdentityID(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.withAvatar(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) withAvatar(ctx context.Context, user *model.User) (*model.User, error) {
	stored, err := s.avatars.ByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load avatar: %w", err)
	}
	if len(stored) > 0 {
		user.Avatar = stored[0]
	}
	return user, nil
}
