package service

import (
	"context"
	"log/slog"

	"github.com/dealmarket/bff/internal/identity"
	"golang.org/x/oauth2"
)

// SessionProvider issues and ends user sessions at the identity provider.
type SessionProvider interface {
	Login(ctx context.Context, username, password string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	Logout(ctx context.Context, refreshToken string) error
	Account(ctx context.Context, subject string) (*identity.Account, error)
}

// AuthService proxies the token flows; the BFF keeps no session state.
type AuthService struct {
	sessions SessionProvider
}

func NewAuthService(sessions SessionProvider) *AuthService {
	return &AuthService{sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	token, err := s.sessions.Login(ctx, username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "error", err)
		return nil, err
	}
	return token, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Logout(ctx, refreshToken)
}

// Account returns the identity-provider profile of a token subject.
func (s *AuthService) Account(ctx context.Context, subject string) (*identity.Account, error) {
	return s.sessions.Account(ctx, subject)
}
