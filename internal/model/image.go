package model

import (
	"strings"
	"time"
)

const (
	ImageStatusPending  = "PENDING"
	ImageStatusUploaded = "UPLOADED"
)

// ImageNamespace is the object-storage prefix owning a family of image rows.
type ImageNamespace string

const (
	NamespaceDeals          ImageNamespace = "deals"
	NamespaceAdvertisements ImageNamespace = "publicites"
	NamespaceUsers          ImageNamespace = "utilisateurs"
)

// Namespaces lists every namespace the storage webhook dispatches on.
var Namespaces = []ImageNamespace{NamespaceDeals, NamespaceAdvertisements, NamespaceUsers}

// ObjectKey returns the full object-storage key for a stored image key.
func (n ImageNamespace) ObjectKey(storageKey string) string {
	return string(n) + "/" + strings.TrimPrefix(storageKey, "/")
}

// Image is shared by deal images, advertisement images and user avatars.
// Only deal images use IsPrimary.
type Image struct {
	ID         string    `db:"id" json:"uuid"`
	OwnerID    string    `db:"owner_id" json:"-"`
	StorageKey string    `db:"storage_key" json:"urlImage"`
	IsPrimary  bool      `db:"is_primary" json:"isPrincipal"`
	Status     string    `db:"upload_status" json:"statut"`
	CreatedAt  time.Time `db:"created_at" json:"dateCreation"`
	UpdatedAt  time.Time `db:"updated_at" json:"dateModification"`

	// Computed fields (not in database)
	PresignURL string `db:"-" json:"presignUrl,omitempty"`
}

func (i *Image) IsPending() bool {
	return i.Status == ImageStatusPending
}
