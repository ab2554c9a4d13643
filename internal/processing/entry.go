package processing

import (
	"time"

	"github.com/draftstudio/media-backend/internal/models"
)

// queueEntry is the transient in-memory mirror of one draft's processing
// job. It is never persisted and is lost on restart. All mutations go
// through the mark* methods so an entry can only carry the fields valid
// for its status: a result implies COMPLETED, an error implies FAILED.
type queueEntry struct {
	draftID     string
	config      models.ProcessingConfig
	status      models.ProcessingStatus
	queuedAt    time.Time
	startedAt   *time.Time
	completedAt *time.Time
	result      *models.ProcessingResult
	err         string
}

func newQueueEntry(draftID string, cfg models.ProcessingConfig, queuedAt time.Time) *queueEntry {
	return &queueEntry{
		draftID:  draftID,
		config:   cfg,
		status:   models.ProcessingStatusQueued,
		queuedAt: queuedAt,
	}
}

func (e *queueEntry) markProcessing(at time.Time) {
	e.status = models.ProcessingStatusProcessing
	e.startedAt = &at
	e.completedAt = nil
	e.result = nil
	e.err = ""
}

func (e *queueEntry) markCompleted(result *models.ProcessingResult, at time.Time) {
	e.status = models.ProcessingStatusCompleted
	e.completedAt = &at
	e.result = result
	e.err = ""
}

func (e *queueEntry) markFailed(errMsg string, at time.Time) {
	e.status = models.ProcessingStatusFailed
	e.completedAt = &at
	e.result = nil
	e.err = errMsg
}
