package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"talentfolio-backend/internal/handlers"
	"talentfolio-backend/internal/middleware"
)

// newOnboardingRouter wires the handler behind a stub auth layer. Requests
// exercised here fail validation before any database access.
func newOnboardingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewOnboardingHandler(nil, nil, zap.NewNop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New().String())
		c.Next()
	})
	router.POST("/onboarding/social-links", handler.SetSocialLinks)
	router.POST("/onboarding/role", handler.SetRole)
	router.POST("/onboarding/profile-image", handler.UploadProfileImage)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetSocialLinks_NotAnObject(t *testing.T) {
	router := newOnboardingRouter()

	w := postJSON(router, "/onboarding/social-links", `{"social_links": ["https://a.example", "https://b.example"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Social links must be an object")
}

func TestSetSocialLinks_TooFew(t *testing.T) {
	router := newOnboardingRouter()

	w := postJSON(router, "/onboarding/social-links", `{"social_links": {"instagram": "https://instagram.com/someone"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least 2 social links are required")
}

func TestSetSocialLinks_BlankValuesDontCount(t *testing.T) {
	router := newOnboardingRouter()

	w := postJSON(router, "/onboarding/social-links", `{"social_links": {"instagram": "https://instagram.com/someone", "behance": "  "}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least 2 social links are required")
}

func TestSetSocialLinks_Missing(t *testing.T) {
	router := newOnboardingRouter()

	w := postJSON(router, "/onboarding/social-links", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least 2 social links are required")
}

func TestSetRole_InvalidRole(t *testing.T) {
	router := newOnboardingRouter()

	w := postJSON(router, "/onboarding/role", `{"role": "admin"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "creator or employer")
}

func TestUploadProfileImage_InvalidKind(t *testing.T) {
	router := newOnboardingRouter()

	req, _ := http.NewRequest("POST", "/onboarding/profile-image", strings.NewReader("type=profile"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "avatar or banner")
}
