package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/dealmarket/bff/internal/model"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 .\-]{6,20}$`)

func ValidateUser(u *model.User) error {
	return first(
		name("prenom", u.FirstName),
		name("nom", u.LastName),
		ValidateEmail(u.Email),
		phone(u.Phone),
		role(u.Role),
	)
}

func ValidateUserForUpdate(u *model.User) error {
	return first(requireID(u.ID), ValidateUser(u))
}

// ValidateUserPatch only checks the fields present in the patch.
func ValidateUserPatch(p *model.UserPatch) error {
	var errs []error
	if p.FirstName != nil {
		errs = append(errs, name("prenom", *p.FirstName))
	}
	if p.LastName != nil {
		errs = append(errs, name("nom", *p.LastName))
	}
	if p.Email != nil {
		errs = append(errs, ValidateEmail(*p.Email))
	}
	if p.Phone != nil {
		errs = append(errs, phone(*p.Phone))
	}
	return first(errs...)
}

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return Fail("email.obligatoire")
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return Fail("email.tropLong", "max", 254)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Fail("email.invalide")
	}

	return nil
}

func name(field, value string) error {
	return first(
		required(field, value),
		maxLength(field, strings.TrimSpace(value), 100, "tropLong"),
	)
}

func phone(value string) error {
	if value == "" {
		return nil
	}
	if !phoneRe.MatchString(value) {
		return Fail("telephone.invalide")
	}
	return nil
}

func role(value string) error {
	if value == "" {
		return nil
	}
	return oneOf("role", value, model.Roles)
}

// ValidateRole checks a role assignment request.
func ValidateRole(value string) error {
	return first(required("role", value), oneOf("role", value, model.Roles))
}
