package drafts

import (
	"context"

	"github.com/draftstudio/media-backend/internal/models"
)

// Repository is the flat key-value persistence contract for drafts.
// GetByID returns ErrNotFound for an absent id.
type Repository interface {
	GetByID(ctx context.Context, draftID string) (*models.Draft, error)
	GetAll(ctx context.Context) (map[string]*models.Draft, error)
	Save(ctx context.Context, draftID string, draft *models.Draft) error
	Delete(ctx context.Context, draftID string) error
}
