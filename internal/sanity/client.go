// Package sanity is a read-side client for the hosted CMS dataset that
// drives navigation, footer, and landing-page content.
package sanity

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GROQ queries for the singleton content documents.
const (
	QueryNavigation  = `*[_type == "navigation"][0]`
	QueryFooter      = `*[_type == "footer"][0]`
	QueryAuthPage    = `*[_type == "authPage"][0]`
	QueryLandingPage = `*[_type == "landingPage"][0]`
)

type Client struct {
	baseURL    string
	dataset    string
	apiVersion string
	token      string
	httpClient *http.Client
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

func NewClient(apiURL, dataset, apiVersion, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(apiURL, "/"),
		dataset:    dataset,
		apiVersion: apiVersion,
		token:      token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Query runs a GROQ query against the dataset and returns the raw result.
func (c *Client) Query(groq string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("sanity client is not configured")
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?query=%s",
		c.baseURL, c.apiVersion, c.dataset, url.QueryEscape(groq))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Result, nil
}
