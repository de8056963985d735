package model

import "time"

type Advertisement struct {
	ID           string     `db:"id" json:"uuid"`
	Title        string     `db:"title" json:"titre"`
	Description  string     `db:"description" json:"description"`
	ExternalLink string     `db:"external_link" json:"lienExterne"`
	StartDate    *time.Time `db:"start_date" json:"dateDebut,omitempty"`
	EndDate      *time.Time `db:"end_date" json:"dateFin,omitempty"`
	Active       bool       `db:"active" json:"active"`
	CreatedAt    time.Time  `db:"created_at" json:"dateCreation"`
	UpdatedAt    time.Time  `db:"updated_at" json:"dateModification"`

	Images []*Image `db:"-" json:"listeImages"`
}

// RunningAt reports whether the advertisement is active and inside its date window at t.
func (a *Advertisement) RunningAt(t time.Time) bool {
	if !a.Active {
		return false
	}
	if a.StartDate != nil && t.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && t.After(*a.EndDate) {
		return false
	}
	return true
}
