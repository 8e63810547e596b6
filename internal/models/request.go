package models

import "encoding/json"

type SetRoleRequest struct {
	Role string `json:"role"`
}

type OrganizationInfoRequest struct {
	Name    string `json:"name" binding:"required"`
	Website string `json:"website"`
	LogoURL string `json:"logo_url"`
}

type ProfileInfoRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// SocialLinks stays raw so the handler can distinguish "not an object" from
// "too few entries".
type SocialLinksRequest struct {
	SocialLinks json.RawMessage `json:"social_links"`
}

type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type UpdateCreatorRequest struct {
	Bio          *string           `json:"bio"`
	Location     *string           `json:"location"`
	PrimaryRoles []string          `json:"primary_roles"`
	SocialLinks  map[string]string `json:"social_links"`
}

type ProjectInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description"`
	Roles            []string `json:"roles"`
	ClientIDs        []string `json:"client_ids"`
	Year             int      `json:"year"`
	Featured         bool     `json:"featured"`
	// Thumbnail names the uploaded file (or imported URL) whose stored copy
	// becomes the project thumbnail.
	Thumbnail string `json:"thumbnail"`
	// ImportURLs are remote media fetched server-side during creation.
	ImportURLs []string `json:"import_urls"`
	// VideoURLs are YouTube/Vimeo links attached without storage upload.
	VideoURLs []string `json:"video_urls"`
}

type UpdateProjectRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	Roles            []string `json:"roles"`
	ClientIDs        []string `json:"client_ids"`
	Year             *int     `json:"year"`
	Featured         *bool    `json:"featured"`
	ThumbnailURL     *string  `json:"thumbnail_url"`
}

type ImportMediaRequest struct {
	URL string `json:"url" binding:"required"`
}

type AttachVideoRequest struct {
	URL         string `json:"url" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateMediaRequest struct {
	AltText     *string `json:"alt_text"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type ReorderImagesRequest struct {
	ImageIDs []string `json:"image_ids" binding:"required"`
}

type BatchDeleteRequest struct {
	MediaIDs []string `json:"media_ids" binding:"required"`
}

type StartScrapeRequest struct {
	URL       string          `json:"url" binding:"required"`
	ProjectID string          `json:"project_id"`
	Settings  json.RawMessage `json:"settings"`
}
