package drafts

import (
	"context"
	"errors"

	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/utils"
)

var (
	ErrNotFound      = errors.New("draft not found")
	ErrEmptyDraft    = errors.New("draft must have content or mediaIds")
	ErrInvalidStatus = errors.New("invalid draft status")
)

type UseCase interface {
	Create(ctx context.Context, input *models.DraftInput) (*models.Draft, error)
	GetByID(ctx context.Context, draftID string) (*models.Draft, error)
	List(ctx context.Context, filter *ListFilter, pagination *utils.Pagination) (*models.DraftList, error)
	Update(ctx context.Context, draftID string, input *models.DraftInput) (*models.Draft, error)
	Delete(ctx context.Context, draftID string) error
}

// ListFilter narrows listing by tag and/or status; zero values match all.
type ListFilter struct {
	Tag    string
	Status models.DraftStatus
}
