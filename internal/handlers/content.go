package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/cache"
	"talentfolio-backend/internal/sanity"
)

const contentTTL = 5 * time.Minute

// contentQueries maps the public content type to its CMS query.
var contentQueries = map[string]string{
	"navigation":   sanity.QueryNavigation,
	"footer":       sanity.QueryFooter,
	"auth-page":    sanity.QueryAuthPage,
	"landing-page": sanity.QueryLandingPage,
}

type ContentHandler struct {
	sanityClient *sanity.Client
	contentCache *cache.TTL[json.RawMessage]
	logger       *zap.Logger
}

func NewContentHandler(sanityClient *sanity.Client, contentCache *cache.TTL[json.RawMessage], logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		sanityClient: sanityClient,
		contentCache: contentCache,
		logger:       logger,
	}
}

// Get godoc
// @Summary     Get CMS content
// @Description Returns a CMS document (navigation, footer, auth-page or
// @Description landing-page), cached for five minutes.
// @Tags        content
// @Produce     json
// @Param       type path string true "Content type"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /content/{type} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	contentType := c.Param("type")
	query, ok := contentQueries[contentType]
	if !ok {
		respondError(c, h.logger, apperr.New(apperr.KindNotFound, "content not found"))
		return
	}

	if !h.sanityClient.Configured() {
		respondError(c, h.logger, apperr.New(apperr.KindExternal, "Content service is not configured"))
		return
	}

	cacheKey := "content:" + contentType
	if cached, hit := h.contentCache.Get(cacheKey); hit {
		respondData(c, cached, "")
		return
	}

	result, err := h.sanityClient.Query(query)
	if err != nil {
		respondError(c, h.logger, apperr.Wrap(apperr.KindExternal, "Failed to load content", err))
		return
	}

	h.contentCache.Set(cacheKey, result, contentTTL)
	respondData(c, result, "")
}
