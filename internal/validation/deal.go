package validation

import (
	"github.com/dealmarket/bff/internal/model"
)

const DealDescriptionMax = 5000

// ValidateDeal runs the deal business rules in a fixed order and returns the
// first failure.
func ValidateDeal(d *model.Deal) error {
	return first(
		required("titre", d.Title),
		positiveDecimal("prixDeal", d.DealPrice),
		positiveDecimal("prixPart", d.PartPrice),
		positiveInt("nbParticipants", d.MaxParticipants),
		requiredDate("dateFin", d.EndDate),
		startBeforeEnd(d.StartDate, d.EndDate),
		dealStatus(d.Status),
		required("createurUuid", d.CreatorID),
		required("categorieUuid", d.CategoryID),
		dealImages(d.Images),
		required("ville", d.City),
		maxLength("description", d.Description, DealDescriptionMax, "tropLongue"),
	)
}

// ValidateDealForUpdate additionally requires the deal identifier.
func ValidateDealForUpdate(d *model.Deal) error {
	return first(requireID(d.ID), ValidateDeal(d))
}

func dealStatus(status string) error {
	return first(
		required("statut", status),
		oneOf("statut", status, model.DealStatuses),
	)
}

func dealImages(images []*model.Image) error {
	if len(images) == 0 {
		return Fail("listeImages.obligatoire")
	}
	if err := validateImages("listeImages", images); err != nil {
		return err
	}
	for _, img := range images {
		if img.IsPrimary {
			return nil
		}
	}
	return Fail("listeImages.principaleObligatoire")
}
