package media

import (
	"context"
	"errors"

	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/utils"
)

var (
	ErrNotFound        = errors.New("media not found")
	ErrInvalidType     = errors.New("invalid media type")
	ErrMissingFile     = errors.New("missing file payload")
	ErrTypeMismatch    = errors.New("file content does not match declared type")
	ErrInvalidMetadata = errors.New("invalid metadata json")
)

type UseCase interface {
	Upload(ctx context.Context, input *models.UploadInput) (*models.MediaFile, error)
	GetByID(ctx context.Context, mediaID string) (*models.MediaFile, error)
	GetData(ctx context.Context) (map[string]*models.MediaFile, error)
	ListByType(ctx context.Context, mediaType models.MediaType, pagination *utils.Pagination) (*models.MediaList, error)
	GetSize(ctx context.Context, mediaID string) (*models.MediaSizeInfo, error)
	Stats(ctx context.Context) (*models.MediaStats, error)
	Sync(ctx context.Context) (*models.SyncResult, error)
	Delete(ctx context.Context, mediaID string) error
}
