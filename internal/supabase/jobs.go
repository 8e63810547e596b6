package supabase

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
)

const jobColumns = `id, portfolio_id, project_id, creator_id, status, progress,
	status_message, created_at, updated_at`

func scanJob(row interface{ Scan(...interface{}) error }) (*models.AnalysisJob, error) {
	var j models.AnalysisJob
	err := row.Scan(
		&j.ID, &j.PortfolioID, &j.ProjectID, &j.CreatorID, &j.Status,
		&j.Progress, &j.StatusMessage, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("analysis job", err)
	}
	return &j, nil
}

// ActiveJobExists is the pre-flight probe for a friendly error message; the
// partial unique indexes on analysis_jobs decide races.
func (d *DatabaseClient) ActiveJobExists(portfolioID, projectID uuid.NullUUID) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*)
		FROM analysis_jobs
		WHERE status = ANY($1)
		  AND (($2::uuid IS NOT NULL AND portfolio_id = $2)
		    OR ($3::uuid IS NOT NULL AND project_id = $3))
	`, pq.Array(models.ActiveJobStatuses()), portfolioID, projectID).Scan(&count)
	if err != nil {
		return false, rowErr("analysis job", err)
	}
	return count > 0, nil
}

func (d *DatabaseClient) CreateAnalysisJob(portfolioID, projectID uuid.NullUUID, creatorID uuid.UUID) (*models.AnalysisJob, error) {
	job, err := scanJob(d.db.QueryRow(`
		INSERT INTO analysis_jobs (portfolio_id, project_id, creator_id)
		VALUES ($1, $2, $3)
		RETURNING `+jobColumns+`
	`, portfolioID, projectID, creatorID))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.New(apperr.KindConflict, "An analysis job is already running for this target")
		}
		return nil, err
	}
	return job, nil
}

func (d *DatabaseClient) GetAnalysisJob(id uuid.UUID) (*models.AnalysisJob, error) {
	return scanJob(d.db.QueryRow(`
		SELECT `+jobColumns+`
		FROM analysis_jobs
		WHERE id = $1
	`, id))
}

func (d *DatabaseClient) UpdateAnalysisJobStatus(id uuid.UUID, status string, progress int, message string) error {
	_, err := d.db.Exec(`
		UPDATE analysis_jobs
		SET status = $1, progress = $2, status_message = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $4
	`, status, progress, message, id)
	if err != nil {
		return rowErr("analysis job", err)
	}
	return nil
}

func (d *DatabaseClient) ListAnalysisJobsByCreator(creatorID uuid.UUID) ([]models.AnalysisJob, error) {
	rows, err := d.db.Query(`
		SELECT `+jobColumns+`
		FROM analysis_jobs
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, creatorID)
	if err != nil {
		return nil, rowErr("analysis job", err)
	}
	defer rows.Close()

	var jobs []models.AnalysisJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, nil
}
