package validation

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Each rule returns nil when the value passes, so validators can chain them
// with first(...) and stop at the first failure.

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Fail(field + ".obligatoire")
	}
	return nil
}

func maxLength(field, value string, max int, code string) error {
	if utf8.RuneCountInString(value) > max {
		return Fail(field+"."+code, "max", max)
	}
	return nil
}

func positiveDecimal(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return Fail(field + ".positif")
	}
	return nil
}

func positiveInt(field string, value int) error {
	if value <= 0 {
		return Fail(field + ".positif")
	}
	return nil
}

func requiredDate(field string, value *time.Time) error {
	if value == nil || value.IsZero() {
		return Fail(field + ".obligatoire")
	}
	return nil
}

// startBeforeEnd only applies when both dates are present; the start date is optional.
func startBeforeEnd(start, end *time.Time) error {
	if start == nil || end == nil {
		return nil
	}
	if !start.Before(*end) {
		return Fail("dateDebut.avantDateFin")
	}
	return nil
}

func oneOf(field, value string, allowed map[string]bool) error {
	if !allowed[value] {
		return Fail(field+".invalide", "valeur", value)
	}
	return nil
}

func httpURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || strings.TrimSpace(u.Host) == "" {
		return Fail(field + ".invalide")
	}
	return nil
}

func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func requireID(id string) error {
	return required("uuid", id)
}
