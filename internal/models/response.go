package models

import "time"

// Envelope is the uniform response shape every route returns, success or not.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type OnboardingStatusResponse struct {
	Role      string `json:"role,omitempty"`
	Step      int    `json:"step"`
	StepName  string `json:"step_name"`
	Completed bool   `json:"completed"`
}

type CreatorResponse struct {
	ID                         string            `json:"id"`
	Username                   string            `json:"username"`
	Bio                        string            `json:"bio,omitempty"`
	Location                   string            `json:"location,omitempty"`
	PrimaryRoles               []string          `json:"primary_roles,omitempty"`
	AvatarURL                  string            `json:"avatar_url,omitempty"`
	BannerURL                  string            `json:"banner_url,omitempty"`
	SocialLinks                map[string]string `json:"social_links,omitempty"`
	MinimumSocialLinksVerified bool              `json:"minimum_social_links_verified"`
	IsOwner                    bool              `json:"is_owner"`
	CreatedAt                  time.Time         `json:"created_at"`
}

type CreatorSearchResponse struct {
	Creators []CreatorResponse `json:"creators"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

type OrganizationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

type ImageResponse struct {
	ID             string `json:"id"`
	ProjectID      string `json:"project_id"`
	URL            string `json:"url"`
	SortOrder      int    `json:"order"`
	AltText        string `json:"alt_text,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	AnalysisStatus string `json:"analysis_status"`
}

type VideoResponse struct {
	ID             string `json:"id"`
	ProjectID      string `json:"project_id"`
	URL            string `json:"url"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	YouTubeID      string `json:"youtube_id,omitempty"`
	VimeoID        string `json:"vimeo_id,omitempty"`
	AnalysisStatus string `json:"analysis_status"`
}

type ProjectResponse struct {
	ID               string          `json:"id"`
	CreatorID        string          `json:"creator_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	ShortDescription string          `json:"short_description,omitempty"`
	Roles            []string        `json:"roles,omitempty"`
	ClientIDs        []string        `json:"client_ids,omitempty"`
	ThumbnailURL     string          `json:"thumbnail_url,omitempty"`
	Year             int             `json:"year,omitempty"`
	Featured         bool            `json:"featured"`
	Images           []ImageResponse `json:"images,omitempty"`
	Videos           []VideoResponse `json:"videos,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type MediaResult struct {
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	Type     string `json:"type"` // image or video
}

type MediaError struct {
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error"`
	Stage    string `json:"stage"`
}

// BatchMediaResponse accumulates per-item outcomes; partial failure is not
// an overall failure.
type BatchMediaResponse struct {
	Results      []MediaResult `json:"results"`
	Errors       []MediaError  `json:"errors,omitempty"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
}

type AnalysisJobResponse struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolio_id,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	StatusMessage string    `json:"status_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ScrapeLogResponse struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	ProjectID    string    `json:"project_id,omitempty"`
	Status       string    `json:"status"`
	HandleID     string    `json:"handle_id,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
