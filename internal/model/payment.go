package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "EN_ATTENTE"
	PaymentStatusSucceeded = "REUSSI"
	PaymentStatusFailed    = "ECHOUE"
	PaymentStatusRefunded  = "REMBOURSE"
)

var PaymentStatuses = map[string]bool{
	PaymentStatusPending:   true,
	PaymentStatusSucceeded: true,
	PaymentStatusFailed:    true,
	PaymentStatusRefunded:  true,
}

const (
	PaymentMethodCard     = "CARTE"
	PaymentMethodPaypal   = "PAYPAL"
	PaymentMethodTransfer = "VIREMENT"
)

var PaymentMethods = map[string]bool{
	PaymentMethodCard:     true,
	PaymentMethodPaypal:   true,
	PaymentMethodTransfer: true,
}

type Payment struct {
	ID        string          `db:"id" json:"uuid"`
	OrderID   string          `db:"order_id" json:"commandeUuid"`
	Amount    decimal.Decimal `db:"amount" json:"montant"`
	Method    string          `db:"method" json:"moyenPaiement"`
	Status    string          `db:"status" json:"statut"`
	PaidAt    *time.Time      `db:"paid_at" json:"datePaiement,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"dateCreation"`
	UpdatedAt time.Time       `db:"updated_at" json:"dateModification"`
}
