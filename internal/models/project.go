package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID               uuid.UUID
	CreatorID        uuid.UUID
	Title            string
	Description      sql.NullString
	ShortDescription sql.NullString
	Roles            []string
	ClientIDs        []string
	ThumbnailURL     sql.NullString
	Year             sql.NullInt64
	Featured         bool
	// Embedding is written by the analysis worker and never serialized to
	// API responses.
	Embedding []float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
