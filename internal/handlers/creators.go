package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/cache"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/supabase"
)

const (
	defaultPerPage    = 20
	maxPerPage        = 100
	randomCreatorsTTL = 12 * time.Hour
	randomCacheKey    = "creators:random"
)

type CreatorsHandler struct {
	dbClient    *supabase.DatabaseClient
	randomCache *cache.TTL[[]models.CreatorResponse]
	logger      *zap.Logger
}

func NewCreatorsHandler(dbClient *supabase.DatabaseClient, randomCache *cache.TTL[[]models.CreatorResponse], logger *zap.Logger) *CreatorsHandler {
	return &CreatorsHandler{
		dbClient:    dbClient,
		randomCache: randomCache,
		logger:      logger,
	}
}

// Get godoc
// @Summary     Get a creator profile
// @Description Returns the public profile and project gallery for a username.
// @Tags        creators
// @Produce     json
// @Param       username path string true "Username"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /creators/{username} [get]
func (h *CreatorsHandler) Get(c *gin.Context) {
	creator, err := h.dbClient.GetCreatorByUsername(c.Param("username"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	isOwner := false
	if userID, err := currentUserID(c); err == nil {
		isOwner = userID == creator.ProfileID
	}

	projects, err := h.dbClient.ListProjectsByCreator(creator.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projectResponses := []models.ProjectResponse{}
	for i := range projects {
		projectResponses = append(projectResponses, toProjectResponse(&projects[i], nil, nil))
	}

	respondData(c, gin.H{
		"creator":  toCreatorResponse(creator, isOwner),
		"projects": projectResponses,
	}, "")
}

// Search godoc
// @Summary     Search creators
// @Description Full-text search over verified creators with role and location filters.
// @Tags        creators
// @Produce     json
// @Param       query query string false "Search term"
// @Param       role query string false "Primary role filter"
// @Param       location query string false "Location filter"
// @Param       page query int false "Page number (1-based)"
// @Param       per_page query int false "Results per page (max 100)"
// @Success     200 {object} models.Envelope
// @Router      /creators [get]
func (h *CreatorsHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	creators, total, err := h.dbClient.SearchCreators(
		strings.TrimSpace(c.Query("query")),
		strings.TrimSpace(c.Query("role")),
		strings.TrimSpace(c.Query("location")),
		page, perPage,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	results := []models.CreatorResponse{}
	for i := range creators {
		results = append(results, toCreatorResponse(&creators[i], false))
	}
	respondData(c, models.CreatorSearchResponse{
		Creators: results,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, "")
}

// Random godoc
// @Summary     Random creators
// @Description Returns a rotating selection of verified creators, cached for 12 hours.
// @Tags        creators
// @Produce     json
// @Success     200 {object} models.Envelope
// @Router      /creators/random [get]
func (h *CreatorsHandler) Random(c *gin.Context) {
	if cached, ok := h.randomCache.Get(randomCacheKey); ok {
		respondData(c, gin.H{"creators": cached}, "")
		return
	}

	creators, err := h.dbClient.RandomCreators(12)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	results := []models.CreatorResponse{}
	for i := range creators {
		results = append(results, toCreatorResponse(&creators[i], false))
	}
	h.randomCache.Set(randomCacheKey, results, randomCreatorsTTL)
	respondData(c, gin.H{"creators": results}, "")
}

// Update godoc
// @Summary     Update a creator profile
// @Description Owner-only update of bio, location, roles and social links.
// @Tags        creators
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       username path string true "Username"
// @Param       request body models.UpdateCreatorRequest true "Fields to update"
// @Success     200 {object} models.Envelope
// @Failure     403 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /creators/{username} [put]
func (h *CreatorsHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.GetCreatorByUsername(c.Param("username"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if creator.ProfileID != userID {
		respondError(c, h.logger, apperr.New(apperr.KindAccessDenied, "creator access denied"))
		return
	}

	var req models.UpdateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}

	if err := h.dbClient.UpdateCreatorProfileInfo(creator.ID, req.Bio, req.Location, req.PrimaryRoles); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.SocialLinks != nil {
		filled := 0
		for _, v := range req.SocialLinks {
			if strings.TrimSpace(v) != "" {
				filled++
			}
		}
		if err := h.dbClient.UpdateCreatorSocialLinks(creator.ID, req.SocialLinks, filled >= models.MinimumSocialLinks); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	updated, err := h.dbClient.GetCreatorByID(creator.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toCreatorResponse(updated, true), "Profile updated")
}
