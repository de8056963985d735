package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dealmarket/bff/internal/model"
	"github.com/jmoiron/sqlx"
)

// ImageTable names one of the three image tables.
type ImageTable string

const (
	TableDealImages ImageTable = "deal_images"
	TableAdImages   ImageTable = "ad_images"
	TableAvatars    ImageTable = "user_avatars"
)

var ErrImageNotFound = notFound("image")

// TableFor maps an object-storage namespace to the table holding its images.
func TableFor(ns model.ImageNamespace) (ImageTable, bool) {
	switch ns {
	case model.NamespaceDeals:
		return TableDealImages, true
	case model.NamespaceAdvertisements:
		return TableAdImages, true
	case model.NamespaceUsers:
		return TableAvatars, true
	}
	return "", false
}

type ImageRepository interface {
	ByOwner(ctx context.Context, ownerID string) ([]*model.Image, error)
	ByStorageKey(ctx context.Context, storageKey string) (*model.Image, error)
	Save(ctx context.Context, ownerID string, images []*model.Image) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type imageRepository struct {
	db    *sqlx.DB
	table ImageTable
}

func NewImageRepository(db *sqlx.DB, table ImageTable) ImageRepository {
	return &imageRepository{db: db, table: table}
}

func (r *imageRepository) ByOwner(ctx context.Context, ownerID string) ([]*model.Image, error) {
	images := []*model.Image{}
	query := `SELECT * FROM ` + string(r.table) + ` WHERE owner_id = $1 ORDER BY created_at, id`

	err := r.db.SelectContext(ctx, &images, query, ownerID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) ByStorageKey(ctx context.Context, storageKey string) (*model.Image, error) {
	image := &model.Image{}
	query := `SELECT * FROM ` + string(r.table) + ` WHERE storage_key = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, image, query, storageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *imageRepository) Save(ctx context.Context, ownerID string, images []*model.Image) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return saveImages(ctx, tx, r.table, ownerID, images)
	})
}

func (r *imageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE ` + string(r.table) + ` SET upload_status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}

	return checkAffected(result, ErrImageNotFound)
}

// saveImages upserts images by id; rows of the owner that are not in the list are left untouched.
func saveImages(ctx context.Context, tx *sqlx.Tx, table ImageTable, ownerID string, images []*model.Image) error {
	query := `INSERT INTO ` + string(table) + ` (id, owner_id, storage_key, is_primary, upload_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	              storage_key = excluded.storage_key,
	              is_primary = excluded.is_primary,
	              upload_status = excluded.upload_status,
	              updated_at = excluded.updated_at`

	for _, img := range images {
		img.OwnerID = ownerID
		_, err := tx.ExecContext(ctx, query,
			img.ID,
			img.OwnerID,
			img.StorageKey,
			img.IsPrimary,
			img.Status,
			img.CreatedAt,
			img.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save image %s: %w", img.ID, err)
		}
	}

	return nil
}

// imagesByOwners loads the images of several owners in one query, grouped by owner id.
func imagesByOwners(ctx context.Context, db *sqlx.DB, table ImageTable, ownerIDs []string) (map[string][]*model.Image, error) {
	grouped := make(map[string][]*model.Image, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM `+string(table)+` WHERE owner_id IN (?) ORDER BY created_at, id`, ownerIDs)
	if err != nil {
		return nil, err
	}

	var images []*model.Image
	err = db.SelectContext(ctx, &images, db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		grouped[img.OwnerID] = append(grouped[img.OwnerID], img)
	}
	return grouped, nil
}
