package supabase

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentfolio-backend/internal/models"
)

const projectColumns = `id, creator_id, title, description, short_description,
	roles, client_ids, thumbnail_url, year, featured, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.CreatorID, &p.Title, &p.Description, &p.ShortDescription,
		pq.Array(&p.Roles), pq.Array(&p.ClientIDs), &p.ThumbnailURL, &p.Year,
		&p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("project", err)
	}
	return &p, nil
}

// CreateProjectTx inserts the project row inside the caller's transaction so
// media rows and the thumbnail patch commit atomically with it.
func (d *DatabaseClient) CreateProjectTx(tx *sql.Tx, creatorID uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	return scanProject(tx.QueryRow(`
		INSERT INTO projects (creator_id, title, description, short_description, roles, client_ids, year, featured)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, 0), $8)
		RETURNING `+projectColumns+`
	`, creatorID, in.Title, in.Description, in.ShortDescription,
		pq.Array(in.Roles), pq.Array(in.ClientIDs), in.Year, in.Featured))
}

func (d *DatabaseClient) GetProject(id uuid.UUID) (*models.Project, error) {
	return scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, id))
}

func (d *DatabaseClient) ListProjectsByCreator(creatorID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE creator_id = $1
		ORDER BY featured DESC, created_at DESC
	`, creatorID)
	if err != nil {
		return nil, rowErr("project", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}

	return projects, nil
}

func (d *DatabaseClient) UpdateProject(id uuid.UUID, req models.UpdateProjectRequest) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    short_description = COALESCE($3, short_description),
		    roles = COALESCE($4, roles),
		    client_ids = COALESCE($5, client_ids),
		    year = COALESCE($6, year),
		    featured = COALESCE($7, featured),
		    thumbnail_url = COALESCE($8, thumbnail_url),
		    updated_at = NOW()
		WHERE id = $9
	`, req.Title, req.Description, req.ShortDescription,
		rolesOrNil(req.Roles), rolesOrNil(req.ClientIDs),
		req.Year, req.Featured, req.ThumbnailURL, id)
	if err != nil {
		return rowErr("project", err)
	}
	return nil
}

func (d *DatabaseClient) SetProjectThumbnailTx(tx *sql.Tx, id uuid.UUID, url string) error {
	_, err := tx.Exec(`
		UPDATE projects
		SET thumbnail_url = $1, updated_at = NOW()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return rowErr("project", err)
	}
	return nil
}

// DeleteProject removes the project row; images and videos cascade in the
// database. Storage objects are the caller's responsibility.
func (d *DatabaseClient) DeleteProject(id uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1
	`, id)
	if err != nil {
		return rowErr("project", err)
	}
	return nil
}
