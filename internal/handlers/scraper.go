package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
)

type ScraperHandler struct {
	dbClient *supabase.DatabaseClient
	tasks    *services.TaskService
	logger   *zap.Logger
}

func NewScraperHandler(dbClient *supabase.DatabaseClient, tasks *services.TaskService, logger *zap.Logger) *ScraperHandler {
	return &ScraperHandler{
		dbClient: dbClient,
		tasks:    tasks,
		logger:   logger,
	}
}

// Start godoc
// @Summary     Scrape a website
// @Description Queues a background scrape of the given URL; results land in
// @Description the target project once the worker finishes.
// @Tags        scraper
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.StartScrapeRequest true "Scrape request"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /scrape [post]
func (h *ScraperHandler) Start(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.StartScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "A URL is required"))
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "A valid http(s) URL is required"))
		return
	}

	log, err := h.tasks.StartScrape(userID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toScrapeLogResponse(log), "Scrape queued")
}

// History godoc
// @Summary     List past scrapes
// @Tags        scraper
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Router      /scrape/history [get]
func (h *ScraperHandler) History(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	logs, err := h.dbClient.ListScrapeLogsByUser(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := []models.ScrapeLogResponse{}
	for i := range logs {
		resp = append(resp, toScrapeLogResponse(&logs[i]))
	}
	respondData(c, gin.H{"scrapes": resp}, "")
}

// Cancel godoc
// @Summary     Cancel a scrape
// @Tags        scraper
// @Produce     json
// @Security    Bearer
// @Param       scrape_id path string true "Scrape ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /scrape/{scrape_id}/cancel [post]
func (h *ScraperHandler) Cancel(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	scrapeID, err := parseUUIDParam(c, "scrape_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.VerifyOwnership(supabase.ResourceScrapeLog, scrapeID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	log, err := h.dbClient.GetScrapeLog(scrapeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.tasks.CancelScrape(log); err != nil {
		respondError(c, h.logger, err)
		return
	}

	updated, err := h.dbClient.GetScrapeLog(scrapeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toScrapeLogResponse(updated), "Scrape cancelled")
}
