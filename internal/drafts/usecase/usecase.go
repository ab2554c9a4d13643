package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/internal/drafts"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/logger"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type draftUC struct {
	cfg       *config.Config
	draftRepo drafts.Repository
	logger    logger.Logger
}

func NewDraftUseCase(cfg *config.Config, draftRepo drafts.Repository, log logger.Logger) drafts.UseCase {
	return &draftUC{
		cfg:       cfg,
		draftRepo: draftRepo,
		logger:    log,
	}
}

func (d *draftUC) Create(ctx context.Context, input *models.DraftInput) (*models.Draft, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		d.logger.Errorf("Create - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}
	hasContent := input.Content != nil && *input.Content != ""
	if !hasContent && len(input.MediaIDs) == 0 {
		return nil, drafts.ErrEmptyDraft
	}

	status := models.DraftStatusDraft
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", drafts.ErrInvalidStatus, *input.Status)
		}
		status = *input.Status
	}

	now := time.Now()
	draft := &models.Draft{
		DraftID:   uuid.New().String(),
		MediaIDs:  input.MediaIDs,
		Tags:      input.Tags,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Content != nil {
		draft.Content = *input.Content
	}
	if draft.MediaIDs == nil {
		draft.MediaIDs = []string{}
	}

	if err := d.draftRepo.Save(ctx, draft.DraftID, draft); err != nil {
		d.logger.Errorf("Create - Save error: %v", err)
		return nil, err
	}
	return draft, nil
}

func (d *draftUC) GetByID(ctx context.Context, draftID string) (*models.Draft, error) {
	if draftID == "" {
		return nil, fmt.Errorf("invalid draft id: cannot be empty")
	}
	return d.draftRepo.GetByID(ctx, draftID)
}

func (d *draftUC) List(ctx context.Context, filter *drafts.ListFilter, pagination *utils.Pagination) (*models.DraftList, error) {
	all, err := d.draftRepo.GetAll(ctx)
	if err != nil {
		d.logger.Errorf("List - GetAll error: %v", err)
		return nil, fmt.Errorf("failed to fetch drafts: %v", err)
	}

	var filtered []*models.Draft
	for _, draft := range all {
		if filter != nil {
			if filter.Status != "" && draft.Status != filter.Status {
				continue
			}
			if filter.Tag != "" && !hasTag(draft, filter.Tag) {
				continue
			}
		}
		filtered = append(filtered, draft)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	total := len(filtered)
	offset := pagination.GetOffset()
	if offset > total {
		offset = total
	}
	end := offset + pagination.GetLimit()
	if end > total {
		end = total
	}

	return &models.DraftList{
		Drafts:     filtered[offset:end],
		TotalCount: total,
		TotalPages: utils.GetTotalPages(total, pagination.GetSize()),
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), total, pagination.GetSize()),
	}, nil
}

func hasTag(draft *models.Draft, tag string) bool {
	for _, t := range draft.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (d *draftUC) Update(ctx context.Context, draftID string, input *models.DraftInput) (*models.Draft, error) {
	existing, err := d.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		d.logger.Errorf("Update - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}

	if input.Content != nil {
		existing.Content = *input.Content
	}
	if input.MediaIDs != nil {
		existing.MediaIDs = input.MediaIDs
	}
	if input.Tags != nil {
		existing.Tags = input.Tags
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", drafts.ErrInvalidStatus, *input.Status)
		}
		existing.Status = *input.Status
	}
	existing.UpdatedAt = time.Now()

	if err := d.draftRepo.Save(ctx, draftID, existing); err != nil {
		d.logger.Errorf("Update - Save error: %v", err)
		return nil, err
	}
	return existing, nil
}

// Delete removes the draft only. Referenced media are shared, not owned,
// and stay in place.
func (d *draftUC) Delete(ctx context.Context, draftID string) error {
	if _, err := d.draftRepo.GetByID(ctx, draftID); err != nil {
		return err
	}
	if err := d.draftRepo.Delete(ctx, draftID); err != nil {
		d.logger.Errorf("Delete - repo delete error: %v", err)
		return err
	}
	return nil
}
