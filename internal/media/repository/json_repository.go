package repository

import (
	"context"

	"github.com/draftstudio/media-backend/internal/media"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/storage/jsonstore"
)

type mediaRepo struct {
	store *jsonstore.Store[*models.MediaFile]
}

func NewMediaRepo(store *jsonstore.Store[*models.MediaFile]) media.Repository {
	return &mediaRepo{
		store: store,
	}
}

func (r *mediaRepo) GetByID(ctx context.Context, mediaID string) (*models.MediaFile, error) {
	rec, ok, err := r.store.Load(mediaID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, media.ErrNotFound
	}
	return rec, nil
}

func (r *mediaRepo) GetAll(ctx context.Context) (map[string]*models.MediaFile, error) {
	return r.store.GetAll()
}

func (r *mediaRepo) Save(ctx context.Context, mediaID string, rec *models.MediaFile) error {
	return r.store.Save(mediaID, rec)
}

func (r *mediaRepo) Delete(ctx context.Context, mediaID string) error {
	return r.store.Delete(mediaID)
}
