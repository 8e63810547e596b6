package supabase

import (
	"database/sql"

	"github.com/google/uuid"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
)

// Media kinds used by the shared media routes.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

const imageColumns = `id, project_id, creator_id, url, storage_path, sort_order,
	alt_text, title, description, file_size, mime_type, analysis_status,
	created_at, updated_at`

const videoColumns = `id, project_id, creator_id, url, storage_path, title,
	description, youtube_id, vimeo_id, analysis_status, created_at, updated_at`

func scanImage(row interface{ Scan(...interface{}) error }) (*models.Image, error) {
	var m models.Image
	err := row.Scan(
		&m.ID, &m.ProjectID, &m.CreatorID, &m.URL, &m.StoragePath, &m.SortOrder,
		&m.AltText, &m.Title, &m.Description, &m.FileSize, &m.MimeType,
		&m.AnalysisStatus, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("image", err)
	}
	return &m, nil
}

func scanVideo(row interface{ Scan(...interface{}) error }) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID, &v.ProjectID, &v.CreatorID, &v.URL, &v.StoragePath, &v.Title,
		&v.Description, &v.YouTubeID, &v.VimeoID, &v.AnalysisStatus,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("video", err)
	}
	return &v, nil
}

type NewImage struct {
	ProjectID   uuid.UUID
	CreatorID   uuid.UUID
	URL         string
	StoragePath string
	SortOrder   int
	FileSize    int64
	MimeType    string
}

func (d *DatabaseClient) CreateImageTx(tx *sql.Tx, in NewImage) (*models.Image, error) {
	return scanImage(tx.QueryRow(`
		INSERT INTO images (project_id, creator_id, url, storage_path, sort_order, file_size, mime_type)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, 0), NULLIF($7, ''))
		RETURNING `+imageColumns+`
	`, in.ProjectID, in.CreatorID, in.URL, in.StoragePath, in.SortOrder, in.FileSize, in.MimeType))
}

func (d *DatabaseClient) CreateImage(in NewImage) (*models.Image, error) {
	return scanImage(d.db.QueryRow(`
		INSERT INTO images (project_id, creator_id, url, storage_path, sort_order, file_size, mime_type)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, 0), NULLIF($7, ''))
		RETURNING `+imageColumns+`
	`, in.ProjectID, in.CreatorID, in.URL, in.StoragePath, in.SortOrder, in.FileSize, in.MimeType))
}

type NewVideo struct {
	ProjectID   uuid.UUID
	CreatorID   uuid.UUID
	URL         string
	StoragePath string
	Title       string
	Description string
	YouTubeID   string
	VimeoID     string
}

func (d *DatabaseClient) CreateVideoTx(tx *sql.Tx, in NewVideo) (*models.Video, error) {
	return scanVideo(tx.QueryRow(`
		INSERT INTO videos (project_id, creator_id, url, storage_path, title, description, youtube_id, vimeo_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING `+videoColumns+`
	`, in.ProjectID, in.CreatorID, in.URL, in.StoragePath, in.Title, in.Description, in.YouTubeID, in.VimeoID))
}

func (d *DatabaseClient) CreateVideo(in NewVideo) (*models.Video, error) {
	return scanVideo(d.db.QueryRow(`
		INSERT INTO videos (project_id, creator_id, url, storage_path, title, description, youtube_id, vimeo_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING `+videoColumns+`
	`, in.ProjectID, in.CreatorID, in.URL, in.StoragePath, in.Title, in.Description, in.YouTubeID, in.VimeoID))
}

func (d *DatabaseClient) GetImage(id uuid.UUID) (*models.Image, error) {
	return scanImage(d.db.QueryRow(`
		SELECT `+imageColumns+`
		FROM images
		WHERE id = $1
	`, id))
}

func (d *DatabaseClient) GetVideo(id uuid.UUID) (*models.Video, error) {
	return scanVideo(d.db.QueryRow(`
		SELECT `+videoColumns+`
		FROM videos
		WHERE id = $1
	`, id))
}

// GetMediaKind resolves whether an id refers to an image or a video. The
// media routes accept either.
func (d *DatabaseClient) GetMediaKind(id uuid.UUID) (string, error) {
	var kind string
	err := d.db.QueryRow(`
		SELECT 'image' FROM images WHERE id = $1
		UNION ALL
		SELECT 'video' FROM videos WHERE id = $1
		LIMIT 1
	`, id).Scan(&kind)
	if err != nil {
		return "", rowErr("media", err)
	}
	return kind, nil
}

func (d *DatabaseClient) ListImagesByProject(projectID uuid.UUID) ([]models.Image, error) {
	rows, err := d.db.Query(`
		SELECT `+imageColumns+`
		FROM images
		WHERE project_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`, projectID)
	if err != nil {
		return nil, rowErr("image", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		m, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, *m)
	}

	return images, nil
}

func (d *DatabaseClient) ListVideosByProject(projectID uuid.UUID) ([]models.Video, error) {
	rows, err := d.db.Query(`
		SELECT `+videoColumns+`
		FROM videos
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, rowErr("video", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}

	return videos, nil
}

func (d *DatabaseClient) UpdateImageMetadata(id uuid.UUID, altText, title, description *string) error {
	_, err := d.db.Exec(`
		UPDATE images
		SET alt_text = COALESCE($1, alt_text),
		    title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $4
	`, altText, title, description, id)
	if err != nil {
		return rowErr("image", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateVideoMetadata(id uuid.UUID, title, description *string) error {
	_, err := d.db.Exec(`
		UPDATE videos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    updated_at = NOW()
		WHERE id = $3
	`, title, description, id)
	if err != nil {
		return rowErr("video", err)
	}
	return nil
}

// ReorderImages assigns sort_order from the given id order, atomically.
// Ids not belonging to the project are rejected.
func (d *DatabaseClient) ReorderImages(projectID uuid.UUID, imageIDs []uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return rowErr("image", err)
	}
	defer tx.Rollback()

	for i, id := range imageIDs {
		res, err := tx.Exec(`
			UPDATE images
			SET sort_order = $1, updated_at = NOW()
			WHERE id = $2 AND project_id = $3
		`, i, id, projectID)
		if err != nil {
			return rowErr("image", err)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return apperr.Newf(apperr.KindValidation, "image %s does not belong to this project", id)
		}
	}

	if err := tx.Commit(); err != nil {
		return rowErr("image", err)
	}
	return nil
}

func (d *DatabaseClient) DeleteImage(id uuid.UUID) error {
	_, err := d.db.Exec(`DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return rowErr("image", err)
	}
	return nil
}

func (d *DatabaseClient) DeleteVideo(id uuid.UUID) error {
	_, err := d.db.Exec(`DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return rowErr("video", err)
	}
	return nil
}

// ProjectStoragePaths collects the object keys of all stored media under a
// project, for best-effort storage cleanup when the project is deleted.
func (d *DatabaseClient) ProjectStoragePaths(projectID uuid.UUID) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT storage_path FROM images WHERE project_id = $1 AND storage_path IS NOT NULL
		UNION ALL
		SELECT storage_path FROM videos WHERE project_id = $1 AND storage_path IS NOT NULL
	`, projectID)
	if err != nil {
		return nil, rowErr("media", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, rowErr("media", err)
		}
		paths = append(paths, p)
	}

	return paths, nil
}
