package handlers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/models"
)

func TestToProjectResponse_ImagesSortedBySortOrder(t *testing.T) {
	project := &models.Project{ID: uuid.New(), CreatorID: uuid.New(), Title: "Showreel"}
	images := []models.Image{
		{ID: uuid.New(), ProjectID: project.ID, URL: "https://cdn.test/c.jpg", SortOrder: 2},
		{ID: uuid.New(), ProjectID: project.ID, URL: "https://cdn.test/a.jpg", SortOrder: 0},
		{ID: uuid.New(), ProjectID: project.ID, URL: "https://cdn.test/b.jpg", SortOrder: 1},
	}

	resp := toProjectResponse(project, images, nil)

	if assert.Len(t, resp.Images, 3) {
		assert.Equal(t, "https://cdn.test/a.jpg", resp.Images[0].URL)
		assert.Equal(t, "https://cdn.test/b.jpg", resp.Images[1].URL)
		assert.Equal(t, "https://cdn.test/c.jpg", resp.Images[2].URL)
	}
}

func TestToProjectResponse_EmbeddingNeverSerialized(t *testing.T) {
	project := &models.Project{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
		Title:     "Showreel",
		Embedding: []float64{0.1, 0.2, 0.3},
	}

	resp := toProjectResponse(project, nil, nil)
	raw, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "embedding")
}
