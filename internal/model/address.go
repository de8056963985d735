package model

import "time"

type Address struct {
	ID         string    `db:"id" json:"uuid"`
	UserID     string    `db:"user_id" json:"utilisateurUuid"`
	Street     string    `db:"street" json:"rue"`
	PostalCode string    `db:"postal_code" json:"codePostal"`
	City       string    `db:"city" json:"ville"`
	Country    string    `db:"country" json:"pays"`
	CreatedAt  time.Time `db:"created_at" json:"dateCreation"`
	UpdatedAt  time.Time `db:"updated_at" json:"dateModification"`
}
