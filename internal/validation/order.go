package validation

import "github.com/dealmarket/bff/internal/model"

func ValidateOrder(o *model.Order) error {
	return first(
		required("dealUuid", o.DealID),
		required("utilisateurUuid", o.UserID),
		positiveInt("quantite", o.Quantity),
		orderStatus(o.Status),
	)
}

func ValidateOrderForUpdate(o *model.Order) error {
	return first(requireID(o.ID), ValidateOrder(o))
}

// An empty status is allowed on create; the service defaults it.
func orderStatus(status string) error {
	if status == "" {
		return nil
	}
	return oneOf("statut", status, model.OrderStatuses)
}
