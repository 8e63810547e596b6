package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MinimumSocialLinks is the number of social links a creator must provide
// before minimum_social_links_verified flips to true.
const MinimumSocialLinks = 2

type Creator struct {
	ID                         uuid.UUID
	ProfileID                  uuid.UUID
	Username                   string
	Bio                        sql.NullString
	Location                   sql.NullString
	PrimaryRoles               []string
	AvatarURL                  sql.NullString
	BannerURL                  sql.NullString
	SocialLinks                json.RawMessage
	MinimumSocialLinksVerified bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

type Organization struct {
	ID        uuid.UUID
	Name      string
	Website   sql.NullString
	LogoURL   sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
