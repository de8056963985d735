package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dealmarket/bff/internal/ctxkeys"
	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/service"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

type recordingProcessor struct {
	keys []string
	err  error
}

func (p *recordingProcessor) Process(ctx context.Context, objectKeys []string) error {
	p.keys = append(p.keys, objectKeys...)
	return p.err
}

const minioEvent = `{
  "EventName": "s3:ObjectCreated:Put",
  "Key": "dealmarket/deals/panier.jpg_1700000000000",
  "Records": [
    {"eventName": "s3:ObjectCreated:Put", "s3": {"bucket": {"name": "dealmarket"}, "object": {"key": "deals%2Fpanier.jpg_1700000000000", "size": 2048}}}
  ]
}`

func TestWebhookHandler_Storage(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		header    string
		body      string
		procErr   error
		status    int
		processed []string
	}{
		{
			name:      "open webhook",
			body:      minioEvent,
			status:    http.StatusNoContent,
			processed: []string{"deals%2Fpanier.jpg_1700000000000"},
		},
		{
			name:      "shared secret accepted",
			token:     "hook-secret",
			header:    "Bearer hook-secret",
			body:      minioEvent,
			status:    http.StatusNoContent,
			processed: []string{"deals%2Fpanier.jpg_1700000000000"},
		},
		{
			name:   "shared secret rejected",
			token:  "hook-secret",
			header: "Bearer guess",
			body:   minioEvent,
			status: http.StatusUnauthorized,
		},
		{
			name:      "lowercase records",
			body:      `{"records":[{"s3":{"object":{"key":"publicites/banniere.png_1700000000001"}}}]}`,
			status:    http.StatusNoContent,
			processed: []string{"publicites/banniere.png_1700000000001"},
		},
		{
			name:      "no records",
			body:      `{"Records":[]}`,
			status:    http.StatusNoContent,
			processed: nil,
		},
		{
			name:      "record without key does not drop the batch",
			body:      `{"Records":[{"s3":{"object":{}}},{"s3":{"object":{"key":"deals/panier.jpg_1700000000000"}}}]}`,
			status:    http.StatusNoContent,
			processed: []string{"", "deals/panier.jpg_1700000000000"},
		},
		{
			name:   "malformed payload",
			body:   `not json`,
			status: http.StatusBadRequest,
		},
		{
			name:      "database failure",
			body:      minioEvent,
			procErr:   errors.New("database is locked"),
			status:    http.StatusInternalServerError,
			processed: []string{"deals%2Fpanier.jpg_1700000000000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &recordingProcessor{err: tt.procErr}
			h := NewWebhookHandler(processor, tt.token)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/storage", strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.Storage(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.processed, processor.keys)
		})
	}
}

type fakeSessions struct {
	revoked []string
}

func (s *fakeSessions) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if password != "s3cret" {
		return nil, identity.ErrInvalidCredentials
	}
	return &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(5 * time.Minute),
	}, nil
}

func (s *fakeSessions) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access-2", RefreshToken: refreshToken, TokenType: "Bearer"}, nil
}

func (s *fakeSessions) Logout(ctx context.Context, refreshToken string) error {
	s.revoked = append(s.revoked, refreshToken)
	return nil
}

func (s *fakeSessions) Account(ctx context.Context, subject string) (*identity.Account, error) {
	if subject != "kc-42" {
		return nil, identity.ErrNotFound
	}
	return &identity.Account{ID: subject, Username: "ana", Email: "ana@example.com", Enabled: true}, nil
}

func TestAuthHandler(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewAuthHandler(service.NewAuthService(sessions))

	t.Run("login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ana","password":"s3cret"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"accessToken":"access"`)
		assert.Contains(t, rec.Body.String(), `"tokenType":"Bearer"`)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ana","password":"nope"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh requires token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":"refreshToken.obligatoire"}`, rec.Body.String())
	})

	t.Run("logout", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(`{"refreshToken":"refresh"}`)))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"refresh"}, sessions.revoked)
	})

	t.Run("account of unknown subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me/compte", nil)
		req = req.WithContext(ctxkeys.WithSubject(req.Context(), "kc-missing"))
		rec := httptest.NewRecorder()
		h.Account(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(stubPinger{}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(stubPinger{err: errors.New("down")}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
