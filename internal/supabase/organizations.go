package supabase

import (
	"github.com/google/uuid"

	"talentfolio-backend/internal/models"
)

func (d *DatabaseClient) CreateOrganization(name, website, logoURL string) (*models.Organization, error) {
	var o models.Organization
	err := d.db.QueryRow(`
		INSERT INTO organizations (name, website, logo_url)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		RETURNING id, name, website, logo_url, created_at, updated_at
	`, name, website, logoURL).Scan(
		&o.ID, &o.Name, &o.Website, &o.LogoURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("organization", err)
	}
	return &o, nil
}

func (d *DatabaseClient) GetOrganization(id uuid.UUID) (*models.Organization, error) {
	var o models.Organization
	err := d.db.QueryRow(`
		SELECT id, name, website, logo_url, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.Name, &o.Website, &o.LogoURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("organization", err)
	}
	return &o, nil
}

func (d *DatabaseClient) UpdateOrganization(id uuid.UUID, name, website, logoURL string) error {
	_, err := d.db.Exec(`
		UPDATE organizations
		SET name = $1,
		    website = NULLIF($2, ''),
		    logo_url = NULLIF($3, ''),
		    updated_at = NOW()
		WHERE id = $4
	`, name, website, logoURL, id)
	if err != nil {
		return rowErr("organization", err)
	}
	return nil
}
