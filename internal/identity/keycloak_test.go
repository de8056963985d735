package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeycloak struct {
	*httptest.Server
	t        *testing.T
	requests []string
	bodies   map[string]json.RawMessage
}

func newFakeKeycloak(t *testing.T) *fakeKeycloak {
	f := &fakeKeycloak{t: t, bodies: map[string]json.RawMessage{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /realms/dealmarket/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "bff", r.PostForm.Get("client_id"))

		switch r.PostForm.Get("grant_type") {
		case "client_credentials":
			writeToken(w, "admin-token", "")
		case "password":
			if r.PostForm.Get("password") != "correct" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			writeToken(w, "user-access", "user-refresh")
		case "refresh_token":
			assert.Equal(t, "user-refresh", r.PostForm.Get("refresh_token"))
			writeToken(w, "user-access-2", "user-refresh-2")
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("POST /realms/dealmarket/protocol/openid-connect/logout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.record(r)
		assert.Equal(t, "user-refresh", r.PostForm.Get("refresh_token"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/admin/realms/dealmarket/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		f.record(r)

		switch r.Method + " " + r.URL.Path {
		case "GET /admin/realms/dealmarket/users/kc-1":
			writeJSON(w, Account{ID: "kc-1", Username: "marie", Email: "marie@example.fr", Enabled: true})
		case "POST /admin/realms/dealmarket/users":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["email"] == "taken@example.fr" {
				w.WriteHeader(http.StatusConflict)
				return
			}
			w.Header().Set("Location", f.URL+"/admin/realms/dealmarket/users/kc-new")
			w.WriteHeader(http.StatusCreated)
		case "GET /admin/realms/dealmarket/roles/COMMERCANT":
			writeJSON(w, map[string]string{"id": "role-1", "name": "COMMERCANT"})
		case "PUT /admin/realms/dealmarket/users/kc-1",
			"POST /admin/realms/dealmarket/users/kc-1/role-mappings/realm",
			"PUT /admin/realms/dealmarket/users/kc-1/reset-password":
			var body json.RawMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.bodies[r.Method+" "+r.URL.Path] = body
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeKeycloak) record(r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeKeycloak) client() *KeycloakClient {
	return NewKeycloakClient(KeycloakConfig{
		BaseURL:      f.URL,
		Realm:        "dealmarket",
		ClientID:     "bff",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
	})
}

func writeToken(w http.ResponseWriter, access, refresh string) {
	writeJSON(w, map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "Bearer",
		"expires_in":    300,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestKeycloakClient_Login(t *testing.T) {
	kc := newFakeKeycloak(t)
	client := kc.client()
	ctx := context.Background()

	token, err := client.Login(ctx, "marie", "correct")
	require.NoError(t, err)
	assert.Equal(t, "user-access", token.AccessToken)
	assert.Equal(t, "user-refresh", token.RefreshToken)

	_, err = client.Login(ctx, "marie", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestKeycloakClient_RefreshAndLogout(t *testing.T) {
	kc := newFakeKeycloak(t)
	client := kc.client()
	ctx := context.Background()

	token, err := client.Refresh(ctx, "user-refresh")
	require.NoError(t, err)
	assert.Equal(t, "user-access-2", token.AccessToken)
	assert.Equal(t, "user-refresh-2", token.RefreshToken)

	require.NoError(t, client.Logout(ctx, "user-refresh"))
	assert.Contains(t, kc.requests, "POST /realms/dealmarket/protocol/openid-connect/logout")
}

func TestKeycloakClient_Account(t *testing.T) {
	kc := newFakeKeycloak(t)
	client := kc.client()

	account, err := client.Account(context.Background(), "kc-1")
	require.NoError(t, err)
	assert.Equal(t, "marie@example.fr", account.Email)

	_, err = client.Account(context.Background(), "kc-unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeycloakClient_CreateAccount(t *testing.T) {
	kc := newFakeKeycloak(t)
	client := kc.client()
	ctx := context.Background()

	subject, err := client.CreateAccount(ctx, Account{Username: "paul@example.fr", Email: "paul@example.fr", Enabled: true}, "long enough password")
	require.NoError(t, err)
	assert.Equal(t, "kc-new", subject)

	_, err = client.CreateAccount(ctx, Account{Username: "taken@example.fr", Email: "taken@example.fr"}, "")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestKeycloakClient_AdminUpdates(t *testing.T) {
	kc := newFakeKeycloak(t)
	client := kc.client()
	ctx := context.Background()

	require.NoError(t, client.SetEnabled(ctx, "kc-1", false))
	assert.JSONEq(t, `{"enabled":false}`, string(kc.bodies["PUT /admin/realms/dealmarket/users/kc-1"]))

	require.NoError(t, client.AssignRole(ctx, "kc-1", "COMMERCANT"))
	assert.JSONEq(t, `[{"id":"role-1","name":"COMMERCANT"}]`, string(kc.bodies["POST /admin/realms/dealmarket/users/kc-1/role-mappings/realm"]))

	require.NoError(t, client.ResetPassword(ctx, "kc-1", "another long password"))
	assert.JSONEq(t, `{"type":"password","value":"another long password","temporary":false}`,
		string(kc.bodies["PUT /admin/realms/dealmarket/users/kc-1/reset-password"]))

	err := client.AssignRole(ctx, "kc-1", "INCONNU")
	assert.ErrorIs(t, err, ErrNotFound)
}
