package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"talentfolio-backend/internal/apperr"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Begin() (*sql.Tx, error) {
	return d.db.Begin()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// rowErr maps scan/exec errors to the shared taxonomy. entity is the
// user-facing resource name used for not-found messages.
func rowErr(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.KindNotFound, "%s not found", entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Wrap(apperr.KindConflict, fmt.Sprintf("%s already exists", entity), err)
	}
	return apperr.Wrap(apperr.KindDatabase, fmt.Sprintf("database error on %s", entity), err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
