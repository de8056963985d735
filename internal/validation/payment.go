package validation

import "github.com/dealmarket/bff/internal/model"

func ValidatePayment(p *model.Payment) error {
	return first(
		required("commandeUuid", p.OrderID),
		positiveDecimal("montant", p.Amount),
		required("moyenPaiement", p.Method),
		oneOf("moyenPaiement", p.Method, model.PaymentMethods),
		paymentStatus(p.Status),
	)
}

func ValidatePaymentForUpdate(p *model.Payment) error {
	return first(requireID(p.ID), ValidatePayment(p))
}

func paymentStatus(status string) error {
	if status == "" {
		return nil
	}
	return oneOf("statut", status, model.PaymentStatuses)
}
