package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/service"
	"github.com/dealmarket/bff/internal/validation"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so failures read like the rest of the error codes
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ruleCodes maps validator tags onto the rule suffixes used by validation codes.
var ruleCodes = map[string]string{
	"required": "obligatoire",
	"email":    "invalide",
	"oneof":    "invalide",
	"min":      "tropCourt",
	"max":      "tropLong",
	"dive":     "invalide",
}

// decodeJSON reads a JSON body into dst and runs the struct-tag checks on it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return validation.Fail("corps.invalide")
	}
	return checkStruct(dst)
}

func checkStruct(dst any) error {
	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return nil
	}
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validation.Fail("corps.invalide")
	}

	fe := fieldErrs[0]
	rule, ok := ruleCodes[fe.Tag()]
	if !ok {
		rule = "invalide"
	}
	if fe.Param() != "" {
		return validation.Fail(fe.Field()+"."+rule, "valeur", fe.Param())
	}
	return validation.Fail(fe.Field() + "." + rule)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// writeError maps service and collaborator errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: validationErr.Code, Params: validationErr.Params})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorBody{Code: conflictErr.Code})
	case errors.Is(err, repository.ErrMissingReference):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "reference.inexistante"})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, identity.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Code: "ressource.introuvable"})
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "authentification.invalide"})
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "erreur.interne"})
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Code: "ressource.introuvable"})
}
