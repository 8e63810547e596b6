package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/middleware"
	"talentfolio-backend/internal/models"
)

func respondData(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError resolves every failure to the envelope; nothing propagates an
// exception to the framework. Unexpected kinds are logged with their cause
// and surfaced with the message only.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnexpected || kind == apperr.KindDatabase {
		if logger != nil {
			logger.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
	}
	c.JSON(apperr.HTTPStatus(kind), models.Envelope{
		Success: false,
		Error:   apperr.Message(err),
	})
}

// currentUserID reads the auth user id placed in the context by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, apperr.New(apperr.KindAuthRequired, apperr.MsgAuthRequired)
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.KindAuthRequired, apperr.MsgAuthRequired)
	}
	return userID, nil
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return id, nil
}
