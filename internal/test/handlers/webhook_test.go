package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"talentfolio-backend/internal/handlers"
	"talentfolio-backend/internal/services"
)

func newWebhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tasks := services.NewTaskService(nil, nil, nil, zap.NewNop())
	handler := handlers.NewWebhookHandler(tasks, secret, zap.NewNop())

	router := gin.New()
	router.POST("/api/v1/webhooks/tasks", handler.TaskStatus)
	return router
}

func TestWebhook_MissingSecret(t *testing.T) {
	router := newWebhookRouter("hook-secret")

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestWebhook_WrongSecret(t *testing.T) {
	router := newWebhookRouter("hook-secret")

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "not-the-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_NoSecretConfigured(t *testing.T) {
	// An unset secret closes the endpoint rather than opening it.
	router := newWebhookRouter("")

	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_UnknownStatusRejected(t *testing.T) {
	router := newWebhookRouter("hook-secret")

	body := `{"job_id":"3e9a4a1e-9a50-4c4f-9f0e-8b1c2d3e4f5a","status":"exploded"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status")
}

func TestWebhook_JobRejectsScrapeVocabulary(t *testing.T) {
	// Analysis jobs use processing, never running; the mix-up is rejected
	// before it can hit the job row's status constraint.
	router := newWebhookRouter("hook-secret")

	body := `{"job_id":"3e9a4a1e-9a50-4c4f-9f0e-8b1c2d3e4f5a","status":"running"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status")
}

func TestWebhook_ScrapeRejectsJobVocabulary(t *testing.T) {
	router := newWebhookRouter("hook-secret")

	body := `{"scrape_id":"3e9a4a1e-9a50-4c4f-9f0e-8b1c2d3e4f5a","status":"processing"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", "hook-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status")
}

func TestWebhook_BearerTokenAccepted(t *testing.T) {
	router := newWebhookRouter("hook-secret")

	body := `{"status":"bogus"}`
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer hook-secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Authorization passed; the payload itself is invalid.
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
