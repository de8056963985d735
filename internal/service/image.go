package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dealmarket/bff/internal/metrics"
	"github.com/dealmarket/bff/internal/model"
	"github.com/google/uuid"
)

// KeyStamper makes an image key unique before it is stored.
type KeyStamper interface {
	Stamp(key string) string
}

// clockStamper suffixes keys with the wall clock in milliseconds, bumped so
// that two stamps never share a value.
type clockStamper struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockStamper() KeyStamper {
	return &clockStamper{now: time.Now}
}

func (s *clockStamper) Stamp(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n

	return fmt.Sprintf("%s_%d", key, n)
}

// Presigner issues upload URLs; storage.S3Storage implements it.
type Presigner interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ImageIssuer prepares image lists for persistence and hands out upload URLs
// for the images still waiting for their bytes.
type ImageIssuer struct {
	stamper   KeyStamper
	presigner Presigner
	expiry    time.Duration
}

func NewImageIssuer(stamper KeyStamper, presigner Presigner, expiry time.Duration) *ImageIssuer {
	return &ImageIssuer{
		stamper:   stamper,
		presigner: presigner,
		expiry:    expiry,
	}
}

// Merge applies the incoming images onto the stored ones and returns the list
// to persist. A new or re-keyed image gets a stamped key and goes back to
// PENDING; an unchanged key keeps its stored status. Stored images the request
// does not mention are kept. Client-supplied statuses are ignored.
func (i *ImageIssuer) Merge(stored, incoming []*model.Image) []*model.Image {
	now := time.Now()

	byID := make(map[string]*model.Image, len(stored))
	merged := make([]*model.Image, 0, len(stored)+len(incoming))
	for _, img := range stored {
		byID[img.ID] = img
		merged = append(merged, img)
	}

	for _, in := range incoming {
		if in == nil {
			continue
		}

		existing, ok := byID[in.ID]
		if in.ID != "" && ok {
			existing.IsPrimary = in.IsPrimary
			existing.UpdatedAt = now
			if in.StorageKey != existing.StorageKey {
				existing.StorageKey = i.stamper.Stamp(in.StorageKey)
				existing.Status = model.ImageStatusPending
			}
			continue
		}

		img := &model.Image{
			ID:         uuid.New().String(),
			StorageKey: i.stamper.Stamp(in.StorageKey),
			IsPrimary:  in.IsPrimary,
			Status:     model.ImageStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		byID[img.ID] = img
		merged = append(merged, img)
	}

	return merged
}

// Issue requests one upload URL per PENDING image. Failures are logged and
// counted; the image is returned without a URL and stays PENDING, so the next
// update of its owner retries.
func (i *ImageIssuer) Issue(ctx context.Context, ns model.ImageNamespace, images []*model.Image) {
	for _, img := range images {
		if !img.IsPending() {
			continue
		}

		key := ns.ObjectKey(img.StorageKey)
		url, err := i.presigner.PresignPut(ctx, key, i.expiry)
		if err != nil {
			metrics.PresignFailuresTotal.WithLabelValues(string(ns)).Inc()
			slog.Error("failed to presign image upload", "error", err, "key", key, "image_id", img.ID)
			continue
		}
		img.PresignURL = url
	}
}
