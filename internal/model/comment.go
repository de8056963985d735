package model

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

type Comment struct {
	ID        string    `db:"id" json:"uuid"`
	DealID    string    `db:"deal_id" json:"dealUuid"`
	UserID    string    `db:"user_id" json:"utilisateurUuid"`
	Content   string    `db:"content" json:"contenu"`
	Rating    int       `db:"rating" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"dateCreation"`
	UpdatedAt time.Time `db:"updated_at" json:"dateModification"`
}
