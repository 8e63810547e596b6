package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/services"
)

type WebhookHandler struct {
	tasks         *services.TaskService
	webhookSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(tasks *services.TaskService, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		tasks:         tasks,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// TaskStatus godoc
// @Summary     Task runner status callback
// @Description Receives status updates from the background worker and applies
// @Description them to the matching analysis job or scrape log. Authenticated
// @Description with the shared webhook secret, not a user token.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       request body services.TaskStatusUpdate true "Status update"
// @Success     200 {object} models.Envelope
// @Failure     401 {object} models.Envelope
// @Router      /webhooks/tasks [post]
func (h *WebhookHandler) TaskStatus(c *gin.Context) {
	if !h.authorized(c) {
		respondError(c, h.logger, apperr.New(apperr.KindAuthRequired, apperr.MsgAuthRequired))
		return
	}

	var update services.TaskStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}

	if err := h.tasks.ApplyStatusUpdate(update); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("task status applied",
		zap.String("job_id", update.JobID),
		zap.String("scrape_id", update.ScrapeID),
		zap.String("status", update.Status),
	)
	respondData(c, nil, "Status applied")
}

func (h *WebhookHandler) authorized(c *gin.Context) bool {
	if h.webhookSecret == "" {
		return false
	}

	token := c.GetHeader("X-Webhook-Secret")
	if token == "" {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.webhookSecret)) == 1
}
