package supabase

import (
	"encoding/json"

	"github.com/google/uuid"

	"talentfolio-backend/internal/models"
)

const scrapeColumns = `id, user_id, url, project_id, status, handle_id,
	settings, error_message, created_at, updated_at`

func scanScrape(row interface{ Scan(...interface{}) error }) (*models.ScrapeLog, error) {
	var s models.ScrapeLog
	err := row.Scan(
		&s.ID, &s.UserID, &s.URL, &s.ProjectID, &s.Status, &s.HandleID,
		&s.Settings, &s.ErrorMessage, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("scrape log", err)
	}
	return &s, nil
}

func (d *DatabaseClient) CreateScrapeLog(userID uuid.UUID, url string, projectID uuid.NullUUID, settings json.RawMessage) (*models.ScrapeLog, error) {
	if len(settings) == 0 {
		settings = json.RawMessage("{}")
	}
	return scanScrape(d.db.QueryRow(`
		INSERT INTO scrape_logs (user_id, url, project_id, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING `+scrapeColumns+`
	`, userID, url, projectID, settings))
}

func (d *DatabaseClient) GetScrapeLog(id uuid.UUID) (*models.ScrapeLog, error) {
	return scanScrape(d.db.QueryRow(`
		SELECT `+scrapeColumns+`
		FROM scrape_logs
		WHERE id = $1
	`, id))
}

func (d *DatabaseClient) GetScrapeLogByHandle(handleID string) (*models.ScrapeLog, error) {
	return scanScrape(d.db.QueryRow(`
		SELECT `+scrapeColumns+`
		FROM scrape_logs
		WHERE handle_id = $1
	`, handleID))
}

func (d *DatabaseClient) SetScrapeLogHandle(id uuid.UUID, handleID, status string) error {
	_, err := d.db.Exec(`
		UPDATE scrape_logs
		SET handle_id = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, handleID, status, id)
	if err != nil {
		return rowErr("scrape log", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateScrapeLogStatus(id uuid.UUID, status, errorMessage string) error {
	_, err := d.db.Exec(`
		UPDATE scrape_logs
		SET status = $1, error_message = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $3
	`, status, errorMessage, id)
	if err != nil {
		return rowErr("scrape log", err)
	}
	return nil
}

func (d *DatabaseClient) ListScrapeLogsByUser(userID uuid.UUID) ([]models.ScrapeLog, error) {
	rows, err := d.db.Query(`
		SELECT `+scrapeColumns+`
		FROM scrape_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, rowErr("scrape log", err)
	}
	defer rows.Close()

	var logs []models.ScrapeLog
	for rows.Next() {
		s, err := scanScrape(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *s)
	}

	return logs, nil
}
