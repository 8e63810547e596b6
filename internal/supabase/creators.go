package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
)

const creatorColumns = `id, profile_id, username, bio, location, primary_roles,
	avatar_url, banner_url, social_links, minimum_social_links_verified,
	created_at, updated_at`

func scanCreator(row interface{ Scan(...interface{}) error }) (*models.Creator, error) {
	var c models.Creator
	err := row.Scan(
		&c.ID, &c.ProfileID, &c.Username, &c.Bio, &c.Location, pq.Array(&c.PrimaryRoles),
		&c.AvatarURL, &c.BannerURL, &c.SocialLinks, &c.MinimumSocialLinksVerified,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("creator", err)
	}
	return &c, nil
}

func (d *DatabaseClient) GetCreatorByUsername(username string) (*models.Creator, error) {
	return scanCreator(d.db.QueryRow(`
		SELECT `+creatorColumns+`
		FROM creators
		WHERE username = $1
	`, username))
}

func (d *DatabaseClient) GetCreatorByProfileID(profileID uuid.UUID) (*models.Creator, error) {
	return scanCreator(d.db.QueryRow(`
		SELECT `+creatorColumns+`
		FROM creators
		WHERE profile_id = $1
	`, profileID))
}

func (d *DatabaseClient) GetCreatorByID(id uuid.UUID) (*models.Creator, error) {
	return scanCreator(d.db.QueryRow(`
		SELECT `+creatorColumns+`
		FROM creators
		WHERE id = $1
	`, id))
}

// EnsureCreatorForProfile lazily creates the creator row with a placeholder
// username derived from the profile id. The username step replaces it later.
func (d *DatabaseClient) EnsureCreatorForProfile(profileID uuid.UUID) (*models.Creator, error) {
	creator, err := d.GetCreatorByProfileID(profileID)
	if err == nil {
		return creator, nil
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	placeholder := fmt.Sprintf("user-%s", profileID.String()[:8])
	_, err = d.db.Exec(`
		INSERT INTO creators (profile_id, username)
		VALUES ($1, $2)
		ON CONFLICT (profile_id) DO NOTHING
	`, profileID, placeholder)
	if err != nil {
		return nil, rowErr("creator", err)
	}
	return d.GetCreatorByProfileID(profileID)
}

func (d *DatabaseClient) UpdateCreatorProfileInfo(id uuid.UUID, bio, location *string, primaryRoles []string) error {
	_, err := d.db.Exec(`
		UPDATE creators
		SET bio = COALESCE($1, bio),
		    location = COALESCE($2, location),
		    primary_roles = COALESCE($3, primary_roles),
		    updated_at = NOW()
		WHERE id = $4
	`, bio, location, rolesOrNil(primaryRoles), id)
	if err != nil {
		return rowErr("creator", err)
	}
	return nil
}

func rolesOrNil(roles []string) interface{} {
	if roles == nil {
		return nil
	}
	return pq.Array(roles)
}

func (d *DatabaseClient) UpdateCreatorSocialLinks(id uuid.UUID, links map[string]string, verified bool) error {
	payload, err := json.Marshal(links)
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid social links", err)
	}
	_, err = d.db.Exec(`
		UPDATE creators
		SET social_links = $1, minimum_social_links_verified = $2, updated_at = NOW()
		WHERE id = $3
	`, payload, verified, id)
	if err != nil {
		return rowErr("creator", err)
	}
	return nil
}

// UpdateCreatorUsername relies on the unique constraint; a concurrent claim
// of the same name surfaces as a conflict here, not in the pre-flight probe.
func (d *DatabaseClient) UpdateCreatorUsername(id uuid.UUID, username string) error {
	_, err := d.db.Exec(`
		UPDATE creators
		SET username = $1, updated_at = NOW()
		WHERE id = $2
	`, username, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "Username is already taken")
		}
		return rowErr("creator", err)
	}
	return nil
}

// UsernameTaken is the pre-flight probe. The unique constraint remains the
// arbiter under concurrent claims.
func (d *DatabaseClient) UsernameTaken(username string, excludeID uuid.UUID) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*)
		FROM creators
		WHERE username = $1 AND id <> $2
	`, username, excludeID).Scan(&count)
	if err != nil {
		return false, rowErr("creator", err)
	}
	return count > 0, nil
}

func (d *DatabaseClient) UpdateCreatorImage(id uuid.UUID, kind, url string) error {
	column := "avatar_url"
	if kind == "banner" {
		column = "banner_url"
	}
	_, err := d.db.Exec(`
		UPDATE creators
		SET `+column+` = $1, updated_at = NOW()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return rowErr("creator", err)
	}
	return nil
}

func (d *DatabaseClient) SearchCreators(query, role, location string, page, perPage int) ([]models.Creator, int, error) {
	where := `WHERE minimum_social_links_verified = TRUE`
	args := []interface{}{}
	idx := 1
	if query != "" {
		where += fmt.Sprintf(` AND (username ILIKE $%d OR bio ILIKE $%d)`, idx, idx)
		args = append(args, "%"+query+"%")
		idx++
	}
	if role != "" {
		where += fmt.Sprintf(` AND $%d = ANY(primary_roles)`, idx)
		args = append(args, role)
		idx++
	}
	if location != "" {
		where += fmt.Sprintf(` AND location ILIKE $%d`, idx)
		args = append(args, "%"+location+"%")
		idx++
	}

	var total int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM creators `+where, args...).Scan(&total); err != nil {
		return nil, 0, rowErr("creator", err)
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := d.db.Query(fmt.Sprintf(`
		SELECT `+creatorColumns+`
		FROM creators
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, idx, idx+1), args...)
	if err != nil {
		return nil, 0, rowErr("creator", err)
	}
	defer rows.Close()

	var creators []models.Creator
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, 0, err
		}
		creators = append(creators, *c)
	}

	return creators, total, nil
}

func (d *DatabaseClient) RandomCreators(limit int) ([]models.Creator, error) {
	rows, err := d.db.Query(`
		SELECT `+creatorColumns+`
		FROM creators
		WHERE minimum_social_links_verified = TRUE
		ORDER BY RANDOM()
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, rowErr("creator", err)
	}
	defer rows.Close()

	var creators []models.Creator
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, *c)
	}

	return creators, nil
}
