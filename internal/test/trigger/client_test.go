package trigger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentfolio-backend/internal/trigger"
)

func TestClient_TriggerTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/tasks/portfolio-analysis/trigger", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Payload map[string]interface{} `json:"payload"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "job-1", body.Payload["job_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "run_abc123"}`))
	}))
	defer server.Close()

	client := trigger.NewClient(server.URL, "test-key")
	runID, err := client.TriggerTask(trigger.TaskPortfolioAnalysis, map[string]interface{}{
		"job_id": "job-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "run_abc123", runID)
}

func TestClient_TriggerTask_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()

	client := trigger.NewClient(server.URL, "test-key")
	_, err := client.TriggerTask(trigger.TaskProjectAnalysis, map[string]interface{}{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_TriggerTask_NotConfigured(t *testing.T) {
	client := trigger.NewClient("https://api.test.com", "")

	_, err := client.TriggerTask(trigger.TaskWebsiteScraper, map[string]interface{}{})

	assert.Error(t, err)
	assert.False(t, client.Configured())
}

func TestClient_CancelRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/runs/run_abc123/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := trigger.NewClient(server.URL, "test-key")
	assert.NoError(t, client.CancelRun("run_abc123"))
}

func TestClient_RetryWithBackoff(t *testing.T) {
	client := trigger.NewClient("https://api.test.com", "test-key")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 3 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestClient_TriggerTaskWithRetry_RecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"run_retry1"}`))
	}))
	defer server.Close()

	client := trigger.NewClient(server.URL, "test-key")

	var runID string
	err := client.RetryWithBackoff(func() error {
		var trErr error
		runID, trErr = client.TriggerTask(trigger.TaskPortfolioAnalysis, map[string]interface{}{"job_id": "j1"})
		return trErr
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "run_retry1", runID)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := trigger.NewClient("https://api.test.com", "test-key")

	err := client.RetryWithBackoff(func() error {
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}
