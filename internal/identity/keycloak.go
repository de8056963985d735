package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("identity resource not found")
	ErrAccountExists      = errors.New("identity account already exists")
)

type KeycloakConfig struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Account is the subset of the Keycloak user representation the BFF reads and writes.
type Account struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Enabled   bool   `json:"enabled"`
}

// KeycloakClient talks to one Keycloak realm: the token endpoint for user
// sessions and the admin REST API, authenticated as the confidential client.
type KeycloakClient struct {
	baseURL    string
	realm      string
	oauth      *oauth2.Config
	httpClient *http.Client
	admin      *http.Client
}

func NewKeycloakClient(cfg KeycloakConfig) *KeycloakClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	tokenURL := base + "/realms/" + url.PathEscape(cfg.Realm) + "/protocol/openid-connect/token"

	httpClient := &http.Client{Timeout: cfg.Timeout}

	adminConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	// The admin token source outlives any single request and refreshes itself.
	adminCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)

	return &KeycloakClient{
		baseURL: base,
		realm:   cfg.Realm,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid"},
		},
		httpClient: httpClient,
		admin:      adminConfig.Client(adminCtx),
	}
}

func (c *KeycloakClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Login exchanges user credentials for an access/refresh token pair (password grant).
func (c *KeycloakClient) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	token, err := c.oauth.PasswordCredentialsToken(c.withHTTPClient(ctx), username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && isClientError(retrieveErr.Response) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return token, nil
}

func (c *KeycloakClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && isClientError(retrieveErr.Response) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return token, nil
}

// Logout ends the session bound to the refresh token.
func (c *KeycloakClient) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {c.oauth.ClientID},
		"client_secret": {c.oauth.ClientSecret},
		"refresh_token": {refreshToken},
	}
	endpoint := c.baseURL + "/realms/" + url.PathEscape(c.realm) + "/protocol/openid-connect/logout"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to log out: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Account loads the account of a token subject.
func (c *KeycloakClient) Account(ctx context.Context, subject string) (*Account, error) {
	var account Account
	err := c.adminJSON(ctx, http.MethodGet, c.adminURL("users", subject), nil, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount provisions an enabled account with a permanent password and
// returns the new subject.
func (c *KeycloakClient) CreateAccount(ctx context.Context, account Account, password string) (string, error) {
	payload := struct {
		Account
		Credentials []credential `json:"credentials,omitempty"`
	}{Account: account}
	if password != "" {
		payload.Credentials = []credential{{Type: "password", Value: password}}
	}

	resp, err := c.adminDo(ctx, http.MethodPost, c.adminURL("users"), payload)
	if err != nil {
		return "", err
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusConflict:
		return "", ErrAccountExists
	case resp.StatusCode != http.StatusCreated:
		return "", fmt.Errorf("failed to create account: unexpected status %d", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.New("failed to create account: missing Location header")
	}
	return path.Base(location), nil
}

func (c *KeycloakClient) SetEnabled(ctx context.Context, subject string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return c.adminJSON(ctx, http.MethodPut, c.adminURL("users", subject), body, nil)
}

// AssignRole adds a realm role to the account; existing roles are kept.
func (c *KeycloakClient) AssignRole(ctx context.Context, subject, role string) error {
	var representation json.RawMessage
	err := c.adminJSON(ctx, http.MethodGet, c.adminURL("roles", role), nil, &representation)
	if err != nil {
		return fmt.Errorf("failed to load role %s: %w", role, err)
	}

	return c.adminJSON(ctx, http.MethodPost, c.adminURL("users", subject, "role-mappings", "realm"), []json.RawMessage{representation}, nil)
}

func (c *KeycloakClient) ResetPassword(ctx context.Context, subject, password string) error {
	body := credential{Type: "password", Value: password}
	return c.adminJSON(ctx, http.MethodPut, c.adminURL("users", subject, "reset-password"), body, nil)
}

type credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

func (c *KeycloakClient) adminURL(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/admin/realms/" + url.PathEscape(c.realm) + "/" + strings.Join(escaped, "/")
}

func (c *KeycloakClient) adminDo(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.admin.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	return resp, nil
}

func (c *KeycloakClient) adminJSON(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.adminDo(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("identity provider %s %s: unexpected status %d", method, endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func isClientError(resp *http.Response) bool {
	return resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500
}

func closeBody(resp *http.Response) {
	err := resp.Body.Close()
	if err != nil {
		slog.Error("failed to close response body", "error", err)
	}
}
