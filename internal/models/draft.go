package models

import "time"

type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "DRAFT"
	DraftStatusInReview  DraftStatus = "IN_REVIEW"
	DraftStatusScheduled DraftStatus = "SCHEDULED"
	DraftStatusPublished DraftStatus = "PUBLISHED"
	DraftStatusArchived  DraftStatus = "ARCHIVED"
)

func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusInReview, DraftStatusScheduled, DraftStatusPublished, DraftStatusArchived:
		return true
	}
	return false
}

// Draft references uploaded media by id only. Deleting a draft never
// deletes the media it points at, and a dangling media id is not an error.
type Draft struct {
	DraftID    string           `json:"id" validate:"omitempty"`
	Content    string           `json:"content"`
	MediaIDs   []string         `json:"mediaIds"`
	Tags       []string         `json:"tags,omitempty"`
	Status     DraftStatus      `json:"status" validate:"omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Processing *ProcessingState `json:"processing,omitempty"`
}

type DraftInput struct {
	Content  *string      `json:"content" validate:"omitempty"`
	MediaIDs []string     `json:"mediaIds" validate:"omitempty,dive,required"`
	Tags     []string     `json:"tags" validate:"omitempty,dive,required"`
	Status   *DraftStatus `json:"status" validate:"omitempty"`
}

type DraftList struct {
	Drafts     []*Draft `json:"drafts"`
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}
