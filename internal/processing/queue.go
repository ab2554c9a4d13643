// Package processing owns the draft processing queue: an in-memory,
// explicitly drained, single-worker pipeline that walks each job through
// QUEUED, PROCESSING and a terminal COMPLETED or FAILED, persisting every
// transition onto the draft record.
package processing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/draftstudio/media-backend/internal/blobstore"
	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/internal/drafts"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/logger"
)

var (
	ErrAlreadyQueued    = errors.New("draft is already queued or processing")
	ErrMissingVideoFile = errors.New("processing config requires a video file with id and url")
)

type QueueStatus struct {
	Total        int  `json:"total"`
	Queued       int  `json:"queued"`
	Processing   int  `json:"processing"`
	Completed    int  `json:"completed"`
	Failed       int  `json:"failed"`
	IsProcessing bool `json:"isProcessing"`
}

// Service is constructed once at startup and shared by reference. The
// mutex covers the entry map, the insertion order and the draining flag;
// job execution itself is serialized by the single drain pass.
type Service struct {
	cfg        *config.Config
	draftRepo  drafts.Repository
	blobStore  blobstore.BlobStore
	transcoder Transcoder
	logger     logger.Logger

	mu       sync.Mutex
	entries  map[string]*queueEntry
	order    []string
	draining bool
}

func NewService(cfg *config.Config, draftRepo drafts.Repository, blobStore blobstore.BlobStore, transcoder Transcoder, log logger.Logger) *Service {
	return &Service{
		cfg:        cfg,
		draftRepo:  draftRepo,
		blobStore:  blobStore,
		transcoder: transcoder,
		logger:     log,
		entries:    make(map[string]*queueEntry),
	}
}

// CanEnqueue reports whether the draft may accept a new processing job.
// Only QUEUED and PROCESSING block; terminal and absent states may be
// re-enqueued.
func (s *Service) CanEnqueue(draft *models.Draft) bool {
	if draft.Processing == nil {
		return true
	}
	switch draft.Processing.Status {
	case models.ProcessingStatusQueued, models.ProcessingStatusProcessing:
		return false
	}
	return true
}

// Enqueue records the job on the draft and inserts its queue entry. It
// never starts execution; RunWorker drains explicitly.
func (s *Service) Enqueue(ctx context.Context, draftID string, cfg models.ProcessingConfig) (*models.Draft, error) {
	if cfg.VideoFile.ID == "" || cfg.VideoFile.URL == "" {
		return nil, ErrMissingVideoFile
	}
	// Defaults come from the processing config section, falling back to
	// the package constants when the section is empty.
	cfg.OutputFormat = firstNonEmpty(cfg.OutputFormat, s.cfg.Processing.DefaultFormat, DefaultOutputFormat)
	cfg.Quality = firstNonEmpty(cfg.Quality, s.cfg.Processing.DefaultQuality, DefaultQuality)

	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !s.CanEnqueue(draft) {
		return nil, ErrAlreadyQueued
	}

	now := time.Now()
	draft.Processing = &models.ProcessingState{
		Config:   cfg,
		Status:   models.ProcessingStatusQueued,
		QueuedAt: now,
	}
	if err := s.draftRepo.Save(ctx, draftID, draft); err != nil {
		s.logger.Errorf("Enqueue - Save error: %v", err)
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.entries[draftID]; !exists {
		s.order = append(s.order, draftID)
	}
	s.entries[draftID] = newQueueEntry(draftID, cfg, now)
	s.mu.Unlock()

	s.logger.Infof("Enqueued draft %s for processing", draftID)
	return draft, nil
}

// RunWorker drains the queue sequentially: one full pass over the entries
// that were QUEUED when the pass began, in insertion order. A drain
// already in progress makes the call a no-op. Jobs enqueued mid-pass wait
// for the next drain.
func (s *Service) RunWorker(ctx context.Context) error {
	s.mu.Lock()
	if s.draining || len(s.entries) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.draining = true
	pass := make([]string, len(s.order))
	copy(pass, s.order)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.draining = false
		s.mu.Unlock()
	}()

	for _, draftID := range pass {
		s.mu.Lock()
		entry, ok := s.entries[draftID]
		queued := ok && entry.status == models.ProcessingStatusQueued
		cfg := models.ProcessingConfig{}
		if ok {
			cfg = entry.config
		}
		s.mu.Unlock()

		if !queued {
			continue
		}
		if err := s.processOne(ctx, draftID, cfg); err != nil {
			// Storage failures while persisting a transition can leave the
			// in-memory entry ahead of the draft record; the drain keeps
			// going regardless.
			s.logger.Errorf("RunWorker - processOne %s: %v", draftID, err)
		}
	}
	return nil
}

// processOne executes a single job. Transcode and upload failures are
// absorbed into the draft's FAILED state; only persistence errors escape.
func (s *Service) processOne(ctx context.Context, draftID string, cfg models.ProcessingConfig) error {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, drafts.ErrNotFound) {
			// Draft deleted since it was enqueued: skip the job.
			s.logger.Warnf("processOne - draft %s no longer exists, skipping", draftID)
			return nil
		}
		return err
	}

	state := draft.Processing
	if state == nil {
		state = &models.ProcessingState{Config: cfg, QueuedAt: time.Now()}
		draft.Processing = state
	}

	started := time.Now()
	state.Status = models.ProcessingStatusProcessing
	state.StartedAt = &started
	if err := s.draftRepo.Save(ctx, draftID, draft); err != nil {
		return err
	}
	s.withEntry(draftID, func(e *queueEntry) { e.markProcessing(started) })

	output, err := s.transcoder.Transcode(ctx, cfg)
	if err != nil {
		return s.finishFailed(ctx, draftID, draft, fmt.Errorf("transcode failed: %v", err))
	}

	key := fmt.Sprintf("processed/%s/%d.%s", draftID, time.Now().UnixMilli(), output.Format)
	upload, err := s.blobStore.Upload(ctx, []byte("mock-video-data"), key, "video/"+output.Format)
	if err != nil {
		return s.finishFailed(ctx, draftID, draft, fmt.Errorf("upload failed: %v", err))
	}

	completed := time.Now()
	result := &models.ProcessingResult{
		OutputURL:   upload.URL,
		BlobKey:     upload.Key,
		Duration:    output.Duration,
		FileSize:    output.FileSize,
		Format:      output.Format,
		Resolution:  output.Resolution,
		Bitrate:     output.Bitrate,
		ProcessedAt: output.ProcessedAt,
	}
	state.Result = result
	state.Status = models.ProcessingStatusCompleted
	state.CompletedAt = &completed
	state.Error = ""
	if err := s.draftRepo.Save(ctx, draftID, draft); err != nil {
		return err
	}
	s.withEntry(draftID, func(e *queueEntry) { e.markCompleted(result, completed) })

	s.logger.Infof("Draft %s processed successfully", draftID)
	return nil
}

func (s *Service) finishFailed(ctx context.Context, draftID string, draft *models.Draft, jobErr error) error {
	s.logger.Errorf("processOne - draft %s failed: %v", draftID, jobErr)

	completed := time.Now()
	state := draft.Processing
	state.Status = models.ProcessingStatusFailed
	state.Error = jobErr.Error()
	state.Result = nil
	state.CompletedAt = &completed
	if err := s.draftRepo.Save(ctx, draftID, draft); err != nil {
		return err
	}
	s.withEntry(draftID, func(e *queueEntry) { e.markFailed(jobErr.Error(), completed) })
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *Service) withEntry(draftID string, fn func(*queueEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[draftID]; ok {
		fn(entry)
	}
}

// GetQueueStatus is a pure projection of the in-memory entries.
func (s *Service) GetQueueStatus() QueueStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := QueueStatus{
		Total:        len(s.entries),
		IsProcessing: s.draining,
	}
	for _, entry := range s.entries {
		switch entry.status {
		case models.ProcessingStatusQueued:
			status.Queued++
		case models.ProcessingStatusProcessing:
			status.Processing++
		case models.ProcessingStatusCompleted:
			status.Completed++
		case models.ProcessingStatusFailed:
			status.Failed++
		}
	}
	return status
}

// ClearQueue drops every in-memory entry and resets the draining flag.
// Persisted draft state is deliberately left untouched.
func (s *Service) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*queueEntry)
	s.order = nil
	s.draining = false
}
