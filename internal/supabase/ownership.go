package supabase

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"talentfolio-backend/internal/apperr"
)

// Resource identifies a row kind for ownership resolution. Every resource
// resolves, through its owner chain, to the profile id that owns it.
type Resource string

const (
	ResourceCreator     Resource = "creator"
	ResourceProject     Resource = "project"
	ResourceImage       Resource = "image"
	ResourceVideo       Resource = "video"
	ResourceAnalysisJob Resource = "analysis job"
	ResourceScrapeLog   Resource = "scrape log"
)

// ownerChainQueries map each resource to the query walking its owner chain
// down to profiles.id. Adding a resource means adding a row here, not a new
// hand-rolled check.
var ownerChainQueries = map[Resource]string{
	ResourceCreator: `
		SELECT profile_id FROM creators WHERE id = $1`,
	ResourceProject: `
		SELECT c.profile_id
		FROM projects p
		JOIN creators c ON c.id = p.creator_id
		WHERE p.id = $1`,
	ResourceImage: `
		SELECT c.profile_id
		FROM images i
		JOIN creators c ON c.id = i.creator_id
		WHERE i.id = $1`,
	ResourceVideo: `
		SELECT c.profile_id
		FROM videos v
		JOIN creators c ON c.id = v.creator_id
		WHERE v.id = $1`,
	ResourceAnalysisJob: `
		SELECT c.profile_id
		FROM analysis_jobs j
		JOIN creators c ON c.id = j.creator_id
		WHERE j.id = $1`,
	ResourceScrapeLog: `
		SELECT user_id FROM scrape_logs WHERE id = $1`,
}

// ResolveOwner returns the profile id owning the resource row.
func (d *DatabaseClient) ResolveOwner(resource Resource, id uuid.UUID) (uuid.UUID, error) {
	query, ok := ownerChainQueries[resource]
	if !ok {
		return uuid.Nil, apperr.Newf(apperr.KindUnexpected, "unknown resource kind %q", resource)
	}

	var ownerID uuid.UUID
	err := d.db.QueryRow(query, id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, apperr.Newf(apperr.KindNotFound, "%s not found", resource)
	}
	if err != nil {
		return uuid.Nil, rowErr(string(resource), err)
	}
	return ownerID, nil
}

// VerifyOwnership checks that the authenticated profile owns the resource.
// It is the sole authorization mechanism for mutating routes.
func (d *DatabaseClient) VerifyOwnership(resource Resource, id, profileID uuid.UUID) error {
	ownerID, err := d.ResolveOwner(resource, id)
	if err != nil {
		return err
	}
	if ownerID != profileID {
		return apperr.Newf(apperr.KindAccessDenied, "%s access denied", resource)
	}
	return nil
}
