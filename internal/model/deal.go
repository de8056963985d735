package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DealStatusDraft     = "BROUILLON"
	DealStatusPublished = "PUBLIE"
	DealStatusClosed    = "CLOTURE"
	DealStatusCancelled = "ANNULE"
)

var DealStatuses = map[string]bool{
	DealStatusDraft:     true,
	DealStatusPublished: true,
	DealStatusClosed:    true,
	DealStatusCancelled: true,
}

type Deal struct {
	ID              string          `db:"id" json:"uuid"`
	Title           string          `db:"title" json:"titre"`
	Description     string          `db:"description" json:"description"`
	DealPrice       decimal.Decimal `db:"deal_price" json:"prixDeal"`
	PartPrice       decimal.Decimal `db:"part_price" json:"prixPart"`
	MaxParticipants int             `db:"max_participants" json:"nbParticipants"`
	StartDate       *time.Time      `db:"start_date" json:"dateDebut,omitempty"`
	EndDate         *time.Time      `db:"end_date" json:"dateFin,omitempty"`
	Status          string          `db:"status" json:"statut"`
	CreatorID       string          `db:"creator_id" json:"createurUuid"`
	CategoryID      string          `db:"category_id" json:"categorieUuid"`
	City            string          `db:"city" json:"ville"`
	CreatedAt       time.Time       `db:"created_at" json:"dateCreation"`
	UpdatedAt       time.Time       `db:"updated_at" json:"dateModification"`

	Images []*Image `db:"-" json:"listeImages"`
}
