package validation

import (
	"strings"
)

// ValidatePassword validates password strength
// Enforces NIST recommendations: minimum 12 characters, blocks common patterns
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return Fail("motDePasse.tropCourt", "min", 12)
	}

	if len(password) > 72 {
		return Fail("motDePasse.tropLong", "max", 72)
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "motdepasse", "123456", "azerty", "qwerty", "admin",
		"bonjour", "soleil", "welcome", "letmein",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return Fail("motDePasse.tropCommun")
		}
	}

	return nil
}
