package media

import (
	"context"

	"github.com/draftstudio/media-backend/internal/models"
)

// Repository is the flat key-value persistence contract for media records.
// GetByID returns ErrNotFound for an absent id.
type Repository interface {
	GetByID(ctx context.Context, mediaID string) (*models.MediaFile, error)
	GetAll(ctx context.Context) (map[string]*models.MediaFile, error)
	Save(ctx context.Context, mediaID string, media *models.MediaFile) error
	Delete(ctx context.Context, mediaID string) error
}
