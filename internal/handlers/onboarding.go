package handlers

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,29}$`)

type OnboardingHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	logger        *zap.Logger
}

func NewOnboardingHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		logger:        logger,
	}
}

// Status godoc
// @Summary     Get onboarding status
// @Description Returns the current onboarding step for the authenticated user.
// @Tags        onboarding
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Failure     401 {object} models.Envelope
// @Router      /onboarding/status [get]
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, models.OnboardingStatusResponse{
		Role:      profile.UserRole.String,
		Step:      profile.OnboardingStep,
		StepName:  models.OnboardingStepName(profile.UserRole.String, profile.OnboardingStep),
		Completed: profile.OnboardingCompleted,
	}, "")
}

// SetRole godoc
// @Summary     Choose a role
// @Description Sets the user role (creator or employer) and advances onboarding.
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SetRoleRequest true "Role selection"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /onboarding/role [post]
func (h *OnboardingHandler) SetRole(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}
	if req.Role != models.RoleCreator && req.Role != models.RoleEmployer {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Role must be creator or employer"))
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.requireStep(profile, "role_selection"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.dbClient.SetProfileRole(userID, req.Role, models.NextOnboardingStep(profile.OnboardingStep)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if req.Role == models.RoleCreator {
		if _, err := h.dbClient.EnsureCreatorForProfile(userID); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	h.respondStatus(c, userID)
}

// SetOrganization godoc
// @Summary     Set organization details
// @Description Employer branch: records the organization and advances onboarding.
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.OrganizationInfoRequest true "Organization info"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /onboarding/organization [post]
func (h *OnboardingHandler) SetOrganization(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.OrganizationInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Organization name is required"))
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.requireStep(profile, "organization_info"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	org, err := h.dbClient.CreateOrganization(req.Name, req.Website, req.LogoURL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.SetProfileOrganization(userID, org.ID, models.NextOnboardingStep(profile.OnboardingStep)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.respondStatus(c, userID)
}

// SetProfileInfo godoc
// @Summary     Set profile names
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProfileInfoRequest true "Profile info"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /onboarding/profile [post]
func (h *OnboardingHandler) SetProfileInfo(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.ProfileInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "First and last name are required"))
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.requireStep(profile, "profile_info"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.dbClient.SetProfileNames(userID, req.FirstName, req.LastName, models.NextOnboardingStep(profile.OnboardingStep)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.respondStatus(c, userID)
}

// SetSocialLinks godoc
// @Summary     Set social links
// @Description Creator branch: requires at least two social links before advancing.
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SocialLinksRequest true "Social links"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /onboarding/social-links [post]
func (h *OnboardingHandler) SetSocialLinks(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.SocialLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}

	links, err := parseSocialLinks(req.SocialLinks)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.requireStep(profile, "social_links"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.EnsureCreatorForProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.UpdateCreatorSocialLinks(creator.ID, links, true); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.AdvanceOnboardingStep(userID, models.NextOnboardingStep(profile.OnboardingStep)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.respondStatus(c, userID)
}

// parseSocialLinks validates the raw payload as an object with at least the
// minimum number of non-empty entries.
func parseSocialLinks(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, apperr.New(apperr.KindValidation, "At least 2 social links are required")
	}

	var links map[string]string
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, apperr.New(apperr.KindValidation, "Social links must be an object")
	}

	filled := 0
	for _, v := range links {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	if filled < models.MinimumSocialLinks {
		return nil, apperr.New(apperr.KindValidation, "At least 2 social links are required")
	}
	return links, nil
}

// SetUsername godoc
// @Summary     Claim a username
// @Description Final onboarding step; claiming a username completes onboarding.
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UsernameRequest true "Username"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /onboarding/username [post]
func (h *OnboardingHandler) SetUsername(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Username is required"))
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Username must be 3-30 characters: lowercase letters, numbers, - or _"))
		return
	}

	profile, err := h.dbClient.EnsureProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.requireStep(profile, "username"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.EnsureCreatorForProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	taken, err := h.dbClient.UsernameTaken(username, creator.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if taken {
		respondError(c, h.logger, apperr.New(apperr.KindConflict, "Username is already taken"))
		return
	}

	// The unique constraint still backs this up if two requests race past
	// the probe.
	if err := h.dbClient.UpdateCreatorUsername(creator.ID, username); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.CompleteOnboarding(userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.respondStatus(c, userID)
}

// UploadProfileImage godoc
// @Summary     Upload an avatar or banner
// @Tags        onboarding
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Image file (max 10MB)"
// @Param       type formData string true "avatar or banner"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /onboarding/profile-image [post]
func (h *OnboardingHandler) UploadProfileImage(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	kind := c.PostForm("type")
	if kind != "avatar" && kind != "banner" {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Image type must be avatar or banner"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "An image file is required"))
		return
	}

	contentType := services.ResolveContentType(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err := services.ValidateMediaFile(fileHeader.Filename, fileHeader.Size, contentType, false, services.MaxProfileImageSize); err != nil {
		respondError(c, h.logger, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, apperr.Wrap(apperr.KindUnexpected, "Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, h.logger, apperr.Wrap(apperr.KindUnexpected, "Failed to read uploaded file", err))
		return
	}

	creator, err := h.dbClient.EnsureCreatorForProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	storagePath := supabase.ProfileImagePath(userID, kind, fileHeader.Filename)
	publicURL, err := h.storageClient.UploadFile(storagePath, data, contentType)
	if err != nil {
		respondError(c, h.logger, apperr.Wrap(apperr.KindExternal, "Failed to upload image", err))
		return
	}

	if err := h.dbClient.UpdateCreatorImage(creator.ID, kind, publicURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, gin.H{"url": publicURL, "type": kind}, "Image uploaded")
}

// requireStep rejects a request whose action does not match the profile's
// current step. Steps advance one at a time.
func (h *OnboardingHandler) requireStep(profile *models.Profile, action string) error {
	current := models.OnboardingStepName(profile.UserRole.String, profile.OnboardingStep)
	if current != action {
		return apperr.New(apperr.KindValidation, "Complete the previous onboarding step first")
	}
	return nil
}

func (h *OnboardingHandler) respondStatus(c *gin.Context, userID uuid.UUID) {
	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, models.OnboardingStatusResponse{
		Role:      profile.UserRole.String,
		Step:      profile.OnboardingStep,
		StepName:  models.OnboardingStepName(profile.UserRole.String, profile.OnboardingStep),
		Completed: profile.OnboardingCompleted,
	}, "")
}
