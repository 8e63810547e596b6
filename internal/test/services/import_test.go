package services_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/services"
)

func newImportService() *services.ProjectService {
	return services.NewProjectService(nil, nil, nil, zap.NewNop())
}

func TestImportProjectMedia_RejectsUnsupportedContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not media</html>"))
	}))
	defer server.Close()

	svc := newImportService()
	project := &models.Project{ID: uuid.New(), CreatorID: uuid.New()}

	_, err := svc.ImportProjectMedia(uuid.New(), project, server.URL+"/page.html")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestImportProjectMedia_RejectsNonHTTPURL(t *testing.T) {
	svc := newImportService()
	project := &models.Project{ID: uuid.New(), CreatorID: uuid.New()}

	_, err := svc.ImportProjectMedia(uuid.New(), project, "ftp://example.com/a.jpg")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestImportProjectMedia_RejectsEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
	}))
	defer server.Close()

	svc := newImportService()
	project := &models.Project{ID: uuid.New(), CreatorID: uuid.New()}

	_, err := svc.ImportProjectMedia(uuid.New(), project, server.URL+"/empty.jpg")
	assert.Error(t, err)
}
