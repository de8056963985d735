package model

import "time"

type Category struct {
	ID          string    `db:"id" json:"uuid"`
	Name        string    `db:"name" json:"nom"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"dateCreation"`
	UpdatedAt   time.Time `db:"updated_at" json:"dateModification"`
}
