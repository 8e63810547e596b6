package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
)

type AnalysisHandler struct {
	dbClient *supabase.DatabaseClient
	tasks    *services.TaskService
	logger   *zap.Logger
}

func NewAnalysisHandler(dbClient *supabase.DatabaseClient, tasks *services.TaskService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		dbClient: dbClient,
		tasks:    tasks,
		logger:   logger,
	}
}

// StartPortfolio godoc
// @Summary     Analyze the whole portfolio
// @Description Queues a background analysis run over every project of the
// @Description authenticated creator. One active run per portfolio.
// @Tags        analysis
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /analysis/portfolio [post]
func (h *AnalysisHandler) StartPortfolio(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.GetCreatorByProfileID(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.tasks.StartPortfolioAnalysis(userID, creator)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toAnalysisJobResponse(job), "Analysis queued")
}

// StartProject godoc
// @Summary     Analyze one project
// @Tags        analysis
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /analysis/projects/{project_id} [post]
func (h *AnalysisHandler) StartProject(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := requireProjectAccess(h.dbClient, projectID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.tasks.StartProjectAnalysis(userID, project.CreatorID, projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toAnalysisJobResponse(job), "Analysis queued")
}

// JobStatus godoc
// @Summary     Get analysis job status
// @Tags        analysis
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /analysis/jobs/{job_id} [get]
func (h *AnalysisHandler) JobStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.VerifyOwnership(supabase.ResourceAnalysisJob, jobID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.dbClient.GetAnalysisJob(jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toAnalysisJobResponse(job), "")
}

// Cancel godoc
// @Summary     Cancel an analysis job
// @Tags        analysis
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /analysis/jobs/{job_id}/cancel [post]
func (h *AnalysisHandler) Cancel(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.VerifyOwnership(supabase.ResourceAnalysisJob, jobID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.dbClient.GetAnalysisJob(jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.tasks.CancelAnalysis(job); err != nil {
		respondError(c, h.logger, err)
		return
	}

	updated, err := h.dbClient.GetAnalysisJob(jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toAnalysisJobResponse(updated), "Job cancelled")
}
