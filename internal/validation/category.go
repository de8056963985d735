package validation

import "github.com/dealmarket/bff/internal/model"

func ValidateCategory(c *model.Category) error {
	return first(
		required("nom", c.Name),
		maxLength("nom", c.Name, 100, "tropLong"),
		maxLength("description", c.Description, 1000, "tropLongue"),
	)
}

func ValidateCategoryForUpdate(c *model.Category) error {
	return first(requireID(c.ID), ValidateCategory(c))
}
