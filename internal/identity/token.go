package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid bearer token")

// TokenVerifier checks bearer token signatures and extracts the subject claim.
type TokenVerifier struct {
	key     any
	methods []string
}

// NewTokenVerifier prefers the realm RSA public key; secret is the HS256 fallback.
// The key may be given with or without PEM armour, as copied from the realm settings.
func NewTokenVerifier(publicKey, secret string) (*TokenVerifier, error) {
	if publicKey != "" {
		if !strings.Contains(publicKey, "-----BEGIN") {
			publicKey = "-----BEGIN PUBLIC KEY-----\n" + publicKey + "\n-----END PUBLIC KEY-----"
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse realm public key: %w", err)
		}
		return &TokenVerifier{key: key, methods: []string{jwt.SigningMethodRS256.Alg()}}, nil
	}

	if secret == "" {
		return nil, errors.New("either a public key or a secret is required")
	}
	return &TokenVerifier{key: []byte(secret), methods: []string{jwt.SigningMethodHS256.Alg()}}, nil
}

// Subject verifies the token and returns its "sub" claim.
func (v *TokenVerifier) Subject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods(v.methods))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	return subject, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
