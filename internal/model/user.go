package model

import (
	"time"
)

const (
	RoleClient   = "CLIENT"
	RoleMerchant = "COMMERCANT"
	RoleAdmin    = "ADMIN"
)

var Roles = map[string]bool{
	RoleClient:   true,
	RoleMerchant: true,
	RoleAdmin:    true,
}

type User struct {
	ID         string    `db:"id" json:"uuid"`
	IdentityID string    `db:"identity_id" json:"keycloakId"`
	FirstName  string    `db:"first_name" json:"prenom"`
	LastName   string    `db:"last_name" json:"nom"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"telephone"`
	Role       string    `db:"role" json:"role"`
	Enabled    bool      `db:"enabled" json:"actif"`
	CreatedAt  time.Time `db:"created_at" json:"dateCreation"`
	UpdatedAt  time.Time `db:"updated_at" json:"dateModification"`

	// Computed fields (not in database)
	Avatar *Image `db:"-" json:"photoProfil,omitempty"`
}

// UserPatch carries the optional fields of a user update; nil fields are left untouched.
type UserPatch struct {
	FirstName *string `json:"prenom"`
	LastName  *string `json:"nom"`
	Email     *string `json:"email"`
	Phone     *string `json:"telephone"`
}
