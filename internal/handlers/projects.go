package handlers

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
)

const maxProjectFiles = 20

type ProjectsHandler struct {
	dbClient *supabase.DatabaseClient
	projects *services.ProjectService
	logger   *zap.Logger
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, projects *services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient: dbClient,
		projects: projects,
		logger:   logger,
	}
}

// Create godoc
// @Summary     Create a project
// @Description Creates a project with its media in one transaction. Accepts a
// @Description JSON body, or multipart form data with a "data" JSON field and
// @Description "files" attachments. The thumbnail is resolved server-side.
// @Tags        projects
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       data formData string true "Project JSON"
// @Param       files formData file false "Media files (max 50MB each)"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /projects [post]
func (h *ProjectsHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.GetCreatorByProfileID(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	input, files, err := h.readProjectInput(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Project title is required"))
		return
	}

	project, images, videos, err := h.projects.CreateProject(userID, creator.ID, input, files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, toProjectResponse(project, images, videos), "Project created")
}

// readProjectInput parses either a JSON body or a multipart form with a
// "data" field plus file attachments.
func (h *ProjectsHandler) readProjectInput(c *gin.Context) (models.ProjectInput, []services.UploadedFile, error) {
	var input models.ProjectInput

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&input); err != nil {
			return input, nil, apperr.New(apperr.KindValidation, "Invalid request body")
		}
		return input, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, apperr.New(apperr.KindValidation, "Invalid multipart form")
	}

	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &input); err != nil {
			return input, nil, apperr.New(apperr.KindValidation, "Invalid project data")
		}
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) > maxProjectFiles {
		return input, nil, apperr.Newf(apperr.KindValidation, "At most %d files per request", maxProjectFiles)
	}

	var files []services.UploadedFile
	for _, fh := range fileHeaders {
		contentType := services.ResolveContentType(fh.Filename, fh.Header.Get("Content-Type"))
		if err := services.ValidateMediaFile(fh.Filename, fh.Size, contentType, true, services.MaxMediaFileSize); err != nil {
			return input, nil, err
		}

		f, openErr := fh.Open()
		if openErr != nil {
			return input, nil, apperr.Wrap(apperr.KindUnexpected, "Failed to read uploaded file", openErr)
		}
		data, readErr := io.ReadAll(f)
		f.Close()
		if readErr != nil {
			return input, nil, apperr.Wrap(apperr.KindUnexpected, "Failed to read uploaded file", readErr)
		}

		files = append(files, services.UploadedFile{
			Filename:    fh.Filename,
			Data:        data,
			ContentType: contentType,
		})
	}
	return input, files, nil
}

// List godoc
// @Summary     List own projects
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Router      /projects [get]
func (h *ProjectsHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	creator, err := h.dbClient.GetCreatorByProfileID(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projects, err := h.dbClient.ListProjectsByCreator(creator.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := models.ProjectListResponse{Projects: []models.ProjectResponse{}}
	for i := range projects {
		images, imgErr := h.dbClient.ListImagesByProject(projects[i].ID)
		if imgErr != nil {
			respondError(c, h.logger, imgErr)
			return
		}
		videos, vidErr := h.dbClient.ListVideosByProject(projects[i].ID)
		if vidErr != nil {
			respondError(c, h.logger, vidErr)
			return
		}
		resp.Projects = append(resp.Projects, toProjectResponse(&projects[i], images, videos))
	}
	respondData(c, resp, "")
}

// Get godoc
// @Summary     Get a project
// @Description Public read; images are returned in gallery order.
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) Get(c *gin.Context) {
	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	images, err := h.dbClient.ListImagesByProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	videos, err := h.dbClient.ListVideosByProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, toProjectResponse(project, images, videos), "")
}

// Update godoc
// @Summary     Update a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /projects/{project_id} [put]
func (h *ProjectsHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := requireProjectAccess(h.dbClient, projectID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}

	if err := h.dbClient.UpdateProject(projectID, req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toProjectResponse(project, nil, nil), "Project updated")
}

// Delete godoc
// @Summary     Delete a project
// @Description Removes the project, its media rows and its stored files.
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := requireProjectAccess(h.dbClient, projectID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.projects.DeleteProject(userID, projectID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, nil, "Project deleted")
}

// requireProjectAccess folds missing and foreign projects into one answer
// so the route does not reveal which ids exist.
func requireProjectAccess(db *supabase.DatabaseClient, projectID, userID uuid.UUID) error {
	return foldProjectAccess(db.VerifyOwnership(supabase.ResourceProject, projectID, userID))
}

func foldProjectAccess(err error) error {
	if err == nil {
		return nil
	}
	switch apperr.KindOf(err) {
	case apperr.KindNotFound, apperr.KindAccessDenied:
		return apperr.New(apperr.KindNotFound, "Project not found or access denied")
	default:
		return err
	}
}
