// Package trigger wraps the external task runner that executes portfolio
// analysis, project analysis, and website scraping. The app only enqueues
// tasks and records handles; execution happens entirely on the runner side.
package trigger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Task identifiers registered on the runner.
const (
	TaskPortfolioAnalysis = "portfolio-analysis"
	TaskProjectAnalysis   = "project-analysis"
	TaskWebsiteScraper    = "website-scraper"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type triggerRequest struct {
	Payload map[string]interface{} `json:"payload"`
}

type triggerResponse struct {
	ID string `json:"id"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the runner credentials are present. Enqueue
// attempts without them fail fast with a clear error.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// TriggerTask enqueues one run of the named task and returns the run handle.
func (c *Client) TriggerTask(taskID string, payload map[string]interface{}) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("task runner is not configured")
	}

	jsonData, err := json.Marshal(triggerRequest{Payload: payload})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/api/v1/tasks/" + taskID + "/trigger"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to trigger task %s: status %d, body: %s", taskID, resp.StatusCode, string(body))
	}

	var result triggerResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if result.ID == "" {
		return "", fmt.Errorf("run id is empty in response, body: %s", string(body))
	}

	return result.ID, nil
}

// CancelRun asks the runner to stop a run. Best-effort: the runner may have
// already finished or may ignore the request; callers flip the status row
// regardless.
func (c *Client) CancelRun(handleID string) error {
	if !c.Configured() {
		return fmt.Errorf("task runner is not configured")
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/api/v1/runs/" + handleID + "/cancel"
	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to cancel run: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
