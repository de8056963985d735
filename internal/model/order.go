package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "EN_ATTENTE"
	OrderStatusConfirmed = "CONFIRMEE"
	OrderStatusCancelled = "ANNULEE"
	OrderStatusDelivered = "LIVREE"
)

var OrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusCancelled: true,
	OrderStatusDelivered: true,
}

type Order struct {
	ID        string          `db:"id" json:"uuid"`
	DealID    string          `db:"deal_id" json:"dealUuid"`
	UserID    string          `db:"user_id" json:"utilisateurUuid"`
	AddressID *string         `db:"address_id" json:"adresseUuid,omitempty"`
	Quantity  int             `db:"quantity" json:"quantite"`
	Amount    decimal.Decimal `db:"amount" json:"montant"`
	Status    string          `db:"status" json:"statut"`
	CreatedAt time.Time       `db:"created_at" json:"dateCreation"`
	UpdatedAt time.Time       `db:"updated_at" json:"dateModification"`
}
