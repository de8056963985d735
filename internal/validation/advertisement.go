package validation

import "github.com/dealmarket/bff/internal/model"

func ValidateAdvertisement(a *model.Advertisement) error {
	return first(
		required("titre", a.Title),
		maxLength("titre", a.Title, 200, "tropLong"),
		maxLength("description", a.Description, 5000, "tropLongue"),
		externalLink(a.ExternalLink),
		startBeforeEnd(a.StartDate, a.EndDate),
		validateImages("listeImages", a.Images),
	)
}

func ValidateAdvertisementForUpdate(a *model.Advertisement) error {
	return first(requireID(a.ID), ValidateAdvertisement(a))
}

func externalLink(link string) error {
	if link == "" {
		return nil
	}
	return httpURL("lienExterne", link)
}
