package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Media analysis statuses written by the external worker.
const (
	AnalysisPending   = "pending"
	AnalysisCompleted = "completed"
	AnalysisFailed    = "failed"
)

type Image struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	CreatorID      uuid.UUID
	URL            string
	StoragePath    sql.NullString
	SortOrder      int
	AltText        sql.NullString
	Title          sql.NullString
	Description    sql.NullString
	FileSize       sql.NullInt64
	MimeType       sql.NullString
	AnalysisStatus string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Video struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	CreatorID      uuid.UUID
	URL            string
	StoragePath    sql.NullString
	Title          sql.NullString
	Description    sql.NullString
	YouTubeID      sql.NullString
	VimeoID        sql.NullString
	AnalysisStatus string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
