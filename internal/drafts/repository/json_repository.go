package repository

import (
	"context"

	"github.com/draftstudio/media-backend/internal/drafts"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/storage/jsonstore"
)

type draftRepo struct {
	store *jsonstore.Store[*models.Draft]
}

func NewDraftRepo(store *jsonstore.Store[*models.Draft]) drafts.Repository {
	return &draftRepo{
		store: store,
	}
}

func (r *draftRepo) GetByID(ctx context.Context, draftID string) (*models.Draft, error) {
	draft, ok, err := r.store.Load(draftID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, drafts.ErrNotFound
	}
	return draft, nil
}

func (r *draftRepo) GetAll(ctx context.Context) (map[string]*models.Draft, error) {
	return r.store.GetAll()
}

func (r *draftRepo) Save(ctx context.Context, draftID string, draft *models.Draft) error {
	return r.store.Save(draftID, draft)
}

func (r *draftRepo) Delete(ctx context.Context, draftID string) error {
	return r.store.Delete(draftID)
}
