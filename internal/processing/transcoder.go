package processing

import (
	"context"
	"time"

	"github.com/draftstudio/media-backend/internal/models"
)

// Transcoder is the external media-processing engine. The queue only
// orchestrates when it runs and how its success or failure is recorded.
type Transcoder interface {
	Transcode(ctx context.Context, cfg models.ProcessingConfig) (*TranscodeOutput, error)
}

// TranscodeOutput is the engine's half of a ProcessingResult: everything
// except the blob URL and key, which the upload step fills in.
type TranscodeOutput struct {
	Duration    float64
	FileSize    int64
	Format      string
	Resolution  string
	Bitrate     int64
	ProcessedAt time.Time
}

const (
	DefaultOutputFormat = "mp4"
	DefaultQuality      = "medium"

	simDuration   = 120.0
	simFileSize   = 10 * 1024 * 1024
	simResolution = "1920x1080"
	simBitrate    = 2_500_000
	simDelay      = 50 * time.Millisecond
)

// simTranscoder stands in for a real encoder: it sleeps briefly and
// reports fixed output characteristics stamped with the requested format.
type simTranscoder struct{}

func NewSimTranscoder() Transcoder {
	return &simTranscoder{}
}

func (s *simTranscoder) Transcode(ctx context.Context, cfg models.ProcessingConfig) (*TranscodeOutput, error) {
	format := cfg.OutputFormat
	if format == "" {
		format = DefaultOutputFormat
	}

	select {
	case <-time.After(simDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &TranscodeOutput{
		Duration:    simDuration,
		FileSize:    simFileSize,
		Format:      format,
		Resolution:  simResolution,
		Bitrate:     simBitrate,
		ProcessedAt: time.Now(),
	}, nil
}
