package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/dealmarket/bff/internal/metrics"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
)

// ImageReconciler marks images UPLOADED when object storage reports that
// their bytes have arrived.
type ImageReconciler struct {
	repos map[model.ImageNamespace]repository.ImageRepository
}

func NewImageReconciler(repos map[model.ImageNamespace]repository.ImageRepository) *ImageReconciler {
	return &ImageReconciler{repos: repos}
}

// Process reconciles every key of a notification batch. A failing key does
// not stop the batch; all failures are returned joined.
func (r *ImageReconciler) Process(ctx context.Context, objectKeys []string) error {
	var errs []error
	for _, key := range objectKeys {
		_, err := r.Reconcile(ctx, key)
		if err != nil {
			slog.Error("failed to reconcile uploaded object", "error", err, "key", key)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reconcile handles one object key and returns the outcome label it was counted under.
// Keys outside the known namespaces, or with no matching image, are no-ops.
func (r *ImageReconciler) Reconcile(ctx context.Context, objectKey string) (string, error) {
	key, err := url.QueryUnescape(objectKey)
	if err != nil {
		key = objectKey
	}
	key = strings.TrimPrefix(key, "/")

	ns, repo, ok := r.resolve(key)
	if !ok {
		return r.count("unknown", metrics.OutcomeUnknownNamespace, key), nil
	}

	filename := path.Base(key)
	img, err := repo.ByStorageKey(ctx, filename)
	if errors.Is(err, repository.ErrImageNotFound) {
		return r.count(string(ns), metrics.OutcomeNoMatch, key), nil
	}
	if err != nil {
		r.count(string(ns), metrics.OutcomeError, key)
		return metrics.OutcomeError, fmt.Errorf("failed to load image for %s: %w", key, err)
	}

	if !img.IsPending() {
		return r.count(string(ns), metrics.OutcomeAlreadyUploaded, key), nil
	}

	err = repo.UpdateStatus(ctx, img.ID, model.ImageStatusUploaded)
	if err != nil {
		r.count(string(ns), metrics.OutcomeError, key)
		return metrics.OutcomeError, fmt.Errorf("failed to mark %s uploaded: %w", key, err)
	}

	slog.Info("image uploaded", "namespace", ns, "image_id", img.ID, "owner_id", img.OwnerID)
	return r.count(string(ns), metrics.OutcomeUploaded, key), nil
}

func (r *ImageReconciler) resolve(key string) (model.ImageNamespace, repository.ImageRepository, bool) {
	for _, ns := range model.Namespaces {
		if !strings.HasPrefix(key, string(ns)+"/") {
			continue
		}
		repo, ok := r.repos[ns]
		return ns, repo, ok
	}
	return "", nil, false
}

func (r *ImageReconciler) count(namespace, outcome, key string) string {
	metrics.StorageEventsTotal.WithLabelValues(namespace, outcome).Inc()
	if outcome == metrics.OutcomeNoMatch || outcome == metrics.OutcomeUnknownNamespace {
		slog.Debug("storage event ignored", "outcome", outcome, "key", key)
	}
	return outcome
}
