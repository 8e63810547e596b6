package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lifecycle states for analysis jobs and scrape logs. The external worker
// flips pending/processing rows to completed or failed via the task webhook;
// cancellation only flips the row here.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobRunning    = "running" // scrape logs use running instead of processing
	JobCompleted  = "completed"
	JobFailed     = "failed"
	JobCancelled  = "cancelled"
)

type AnalysisJob struct {
	ID            uuid.UUID
	PortfolioID   uuid.NullUUID
	ProjectID     uuid.NullUUID
	CreatorID     uuid.UUID
	Status        string
	Progress      int
	StatusMessage sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ScrapeLog struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	URL          string
	ProjectID    uuid.NullUUID
	Status       string
	HandleID     sql.NullString
	Settings     json.RawMessage
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActiveJobStatuses are the states that block a new job for the same target.
func ActiveJobStatuses() []string {
	return []string{JobPending, JobProcessing}
}
