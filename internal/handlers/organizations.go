package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/supabase"
)

type OrganizationsHandler struct {
	dbClient *supabase.DatabaseClient
	logger   *zap.Logger
}

func NewOrganizationsHandler(dbClient *supabase.DatabaseClient, logger *zap.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{
		dbClient: dbClient,
		logger:   logger,
	}
}

// Me godoc
// @Summary     Get own organization
// @Description Returns the organization attached to the employer profile.
// @Tags        organizations
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /organizations/me [get]
func (h *OrganizationsHandler) Me(c *gin.Context) {
	org, err := h.ownOrganization(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toOrganizationResponse(org), "")
}

// Update godoc
// @Summary     Update own organization
// @Tags        organizations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.OrganizationInfoRequest true "Organization info"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /organizations/me [put]
func (h *OrganizationsHandler) Update(c *gin.Context) {
	org, err := h.ownOrganization(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.OrganizationInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Organization name is required"))
		return
	}

	if err := h.dbClient.UpdateOrganization(org.ID, req.Name, req.Website, req.LogoURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	updated, err := h.dbClient.GetOrganization(org.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toOrganizationResponse(updated), "Organization updated")
}

func (h *OrganizationsHandler) ownOrganization(c *gin.Context) (*models.Organization, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if !profile.OrganizationID.Valid {
		return nil, apperr.New(apperr.KindNotFound, "organization not found")
	}
	return h.dbClient.GetOrganization(profile.OrganizationID.UUID)
}
