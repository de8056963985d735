package validation

import (
	"regexp"

	"github.com/dealmarket/bff/internal/model"
)

var postalCodeRe = regexp.MustCompile(`^[0-9A-Za-z \-]{3,10}$`)

func ValidateAddress(a *model.Address) error {
	return first(
		required("utilisateurUuid", a.UserID),
		required("rue", a.Street),
		maxLength("rue", a.Street, 255, "tropLongue"),
		required("codePostal", a.PostalCode),
		postalCode(a.PostalCode),
		required("ville", a.City),
		required("pays", a.Country),
	)
}

func ValidateAddressForUpdate(a *model.Address) error {
	return first(requireID(a.ID), ValidateAddress(a))
}

func postalCode(value string) error {
	if !postalCodeRe.MatchString(value) {
		return Fail("codePostal.invalide")
	}
	return nil
}
