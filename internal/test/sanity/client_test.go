package sanity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/sanity"
)

func TestClient_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, sanity.QueryNavigation, r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": {"title": "Main navigation"}}`))
	}))
	defer server.Close()

	client := sanity.NewClient(server.URL, "production", "2024-01-01", "")
	result, err := client.Query(sanity.QueryNavigation)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"title": "Main navigation"}`, string(result))
}

func TestClient_Query_SendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cms-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"result": null}`))
	}))
	defer server.Close()

	client := sanity.NewClient(server.URL, "production", "2024-01-01", "cms-token")
	_, err := client.Query(sanity.QueryFooter)

	assert.NoError(t, err)
}

func TestClient_Query_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad query"}`))
	}))
	defer server.Close()

	client := sanity.NewClient(server.URL, "production", "2024-01-01", "")
	_, err := client.Query(`*[_type == "broken"`)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_NotConfigured(t *testing.T) {
	client := sanity.NewClient("", "production", "2024-01-01", "")

	assert.False(t, client.Configured())
	_, err := client.Query(sanity.QueryLandingPage)
	assert.Error(t, err)
}
