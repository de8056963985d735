package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/dealmarket/bff/internal/identity"
)

// ObjectEventProcessor marks uploaded objects in the database.
type ObjectEventProcessor interface {
	Process(ctx context.Context, objectKeys []string) error
}

type WebhookHandler struct {
	reconciler ObjectEventProcessor
	token      string
}

// NewWebhookHandler accepts unauthenticated notifications when token is empty.
func NewWebhookHandler(reconciler ObjectEventProcessor, token string) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		token:      token,
	}
}

// storageEvent is the S3 event notification shape MinIO and AWS both send.
// Records are not validated; a bad key is ignored by the reconciler without
// failing the rest of the batch.
type storageEvent struct {
	Records []storageRecord `json:"Records"`
}

type storageRecord struct {
	EventName string `json:"eventName"`
	S3        struct {
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

func (h *WebhookHandler) Storage(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		slog.Warn("storage webhook rejected", "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "authentification.invalide"})
		return
	}

	var event storageEvent
	err := decodeJSON(w, r, &event)
	if err != nil {
		writeError(w, r, err)
		return
	}

	keys := make([]string, 0, len(event.Records))
	for _, record := range event.Records {
		keys = append(keys, record.S3.Object.Key)
	}

	err = h.reconciler.Process(r.Context(), keys)
	if err != nil {
		slog.Error("failed to process storage event", "error", err, "records", len(keys))
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "erreur.interne"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WebhookHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	token, ok := identity.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
