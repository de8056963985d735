package validation

import "github.com/dealmarket/bff/internal/model"

const CommentContentMax = 2000

func ValidateComment(c *model.Comment) error {
	return first(
		required("dealUuid", c.DealID),
		required("utilisateurUuid", c.UserID),
		required("contenu", c.Content),
		maxLength("contenu", c.Content, CommentContentMax, "tropLong"),
		rating(c.Rating),
	)
}

func ValidateCommentForUpdate(c *model.Comment) error {
	return first(requireID(c.ID), ValidateComment(c))
}

func rating(value int) error {
	if value < model.RatingMin || value > model.RatingMax {
		return Fail("note.horsLimites", "min", model.RatingMin, "max", model.RatingMax)
	}
	return nil
}
