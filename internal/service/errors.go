package service

// ConflictError reports a uniqueness rule violation; Code follows the
// validation code format, e.g. "categorie.nom.existant".
type ConflictError struct {
	Code string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Code
}

func conflict(code string) error {
	return &ConflictError{Code: code}
}
