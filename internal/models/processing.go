package models

import "time"

type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "PENDING"
	ProcessingStatusQueued     ProcessingStatus = "QUEUED"
	ProcessingStatusProcessing ProcessingStatus = "PROCESSING"
	ProcessingStatusCompleted  ProcessingStatus = "COMPLETED"
	ProcessingStatusFailed     ProcessingStatus = "FAILED"
)

// Terminal reports whether no further transition may leave the status.
func (s ProcessingStatus) Terminal() bool {
	return s == ProcessingStatusCompleted || s == ProcessingStatusFailed
}

type VideoRef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"omitempty,lte=255"`
	URL  string `json:"url" validate:"required"`
}

type AudioTrack struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"omitempty,lte=255"`
	URL      string `json:"url" validate:"required"`
	Language string `json:"language" validate:"omitempty,lte=16"`
}

type SubtitleTrack struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"omitempty,lte=255"`
	URL      string `json:"url" validate:"required"`
	Language string `json:"language" validate:"omitempty,lte=16"`
}

type ProcessingConfig struct {
	VideoFile      VideoRef        `json:"videoFile" validate:"required"`
	AudioTracks    []AudioTrack    `json:"audioTracks" validate:"omitempty,dive"`
	SubtitleTracks []SubtitleTrack `json:"subtitleTracks" validate:"omitempty,dive"`
	OutputFormat   string          `json:"outputFormat" validate:"omitempty,lte=20"`
	Quality        string          `json:"quality" validate:"omitempty,oneof=low medium high"`
}

type ProcessingResult struct {
	OutputURL   string    `json:"outputUrl"`
	BlobKey     string    `json:"blobKey"`
	Duration    float64   `json:"duration"`
	FileSize    int64     `json:"fileSize"`
	Format      string    `json:"format"`
	Resolution  string    `json:"resolution,omitempty"`
	Bitrate     int64     `json:"bitrate,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}

// ProcessingState is the persisted projection of a draft's processing job.
// The in-memory queue entry mirrors it but is lost on restart.
type ProcessingState struct {
	Config      ProcessingConfig  `json:"config"`
	Status      ProcessingStatus  `json:"status"`
	Result      *ProcessingResult `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
	QueuedAt    time.Time         `json:"queuedAt"`
	StartedAt   *time.Time        `json:"startedAt,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}
