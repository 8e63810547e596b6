package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
)

type MediaHandler struct {
	dbClient *supabase.DatabaseClient
	projects *services.ProjectService
	logger   *zap.Logger
}

func NewMediaHandler(dbClient *supabase.DatabaseClient, projects *services.ProjectService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		dbClient: dbClient,
		projects: projects,
		logger:   logger,
	}
}

// Upload godoc
// @Summary     Upload project media
// @Description Uploads a batch of files to a project. Each file is validated,
// @Description stored and recorded on its own; failures are reported per item
// @Description and never fail the whole batch.
// @Tags        media
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       files formData file true "Media files (max 50MB each)"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /projects/{project_id}/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid multipart form"))
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "At least one file is required"))
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := models.BatchMediaResponse{Results: []models.MediaResult{}}
	var valid []services.UploadedFile
	for _, fh := range fileHeaders {
		contentType := services.ResolveContentType(fh.Filename, fh.Header.Get("Content-Type"))
		if vErr := services.ValidateMediaFile(fh.Filename, fh.Size, contentType, true, services.MaxMediaFileSize); vErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: fh.Filename,
				Error:    apperr.Message(vErr),
				Stage:    "validation",
			})
			resp.FailureCount++
			continue
		}

		f, openErr := fh.Open()
		if openErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: fh.Filename,
				Error:    "Failed to read uploaded file",
				Stage:    "validation",
			})
			resp.FailureCount++
			continue
		}
		data, readErr := io.ReadAll(f)
		f.Close()
		if readErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: fh.Filename,
				Error:    "Failed to read uploaded file",
				Stage:    "validation",
			})
			resp.FailureCount++
			continue
		}

		valid = append(valid, services.UploadedFile{
			Filename:    fh.Filename,
			Data:        data,
			ContentType: contentType,
		})
	}

	stored := h.projects.UploadProjectMedia(userID, project, valid)
	resp.Results = append(resp.Results, stored.Results...)
	resp.Errors = append(resp.Errors, stored.Errors...)
	resp.SuccessCount += stored.SuccessCount
	resp.FailureCount += stored.FailureCount

	respondData(c, resp, "")
}

// Import godoc
// @Summary     Import media from a URL
// @Description Downloads a remote file server-side and stores it as project media.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.ImportMediaRequest true "Remote media URL"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /projects/{project_id}/media/import [post]
func (h *MediaHandler) Import(c *gin.Context) {
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

	var req models.ImportMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "A media URL is required"))
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.projects.ImportProjectMedia(userID, project, req.URL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, result, "Media imported")
}

// AttachVideo godoc
// @Summary     Attach a YouTube or Vimeo video
// @Description Records an external video link on the project without any upload.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.AttachVideoRequest true "Video link"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /projects/{project_id}/videos [post]
func (h *MediaHandler) AttachVideo(c *gin.Context) {
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

	var req models.AttachVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "A video URL is required"))
		return
	}

	youtubeID, vimeoID, err := services.ParseVideoLink(req.URL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	video, err := h.dbClient.CreateVideo(supabase.NewVideo{
		ProjectID:   project.ID,
		CreatorID:   project.CreatorID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		YouTubeID:   youtubeID,
		VimeoID:     vimeoID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toVideoResponse(video), "Video attached")
}

// UpdateMetadata godoc
// @Summary     Update media metadata
// @Description Updates title, description and alt text for an image or video.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       media_id path string true "Media ID (UUID)"
// @Param       request body models.UpdateMediaRequest true "Fields to update"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /media/{media_id} [put]
func (h *MediaHandler) UpdateMetadata(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	mediaID, err := parseUUIDParam(c, "media_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	kind, err := h.dbClient.GetMediaKind(mediaID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "Invalid request body"))
		return
	}

	if kind == supabase.MediaKindVideo {
		if err := h.dbClient.VerifyOwnership(supabase.ResourceVideo, mediaID, userID); err != nil {
			respondError(c, h.logger, err)
			return
		}
		if err := h.dbClient.UpdateVideoMetadata(mediaID, req.Title, req.Description); err != nil {
			respondError(c, h.logger, err)
			return
		}
		video, getErr := h.dbClient.GetVideo(mediaID)
		if getErr != nil {
			respondError(c, h.logger, getErr)
			return
		}
		respondData(c, toVideoResponse(video), "Media updated")
		return
	}

	if err := h.dbClient.VerifyOwnership(supabase.ResourceImage, mediaID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.dbClient.UpdateImageMetadata(mediaID, req.AltText, req.Title, req.Description); err != nil {
		respondError(c, h.logger, err)
		return
	}
	image, err := h.dbClient.GetImage(mediaID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, toImageResponse(image), "Media updated")
}

// Reorder godoc
// @Summary     Reorder project images
// @Description Replaces the gallery order with the given image id sequence.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.ReorderImagesRequest true "Image ids in the new order"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Router      /projects/{project_id}/images/order [put]
func (h *MediaHandler) Reorder(c *gin.Context) {
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

	var req models.ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "image_ids is required"))
		return
	}

	imageIDs := make([]uuid.UUID, 0, len(req.ImageIDs))
	for _, raw := range req.ImageIDs {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			respondError(c, h.logger, apperr.Newf(apperr.KindValidation, "invalid image id %q", raw))
			return
		}
		imageIDs = append(imageIDs, id)
	}

	if err := h.dbClient.ReorderImages(projectID, imageIDs); err != nil {
		respondError(c, h.logger, err)
		return
	}

	images, err := h.dbClient.ListImagesByProject(projectID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	resp := []models.ImageResponse{}
	for i := range images {
		resp = append(resp, toImageResponse(&images[i]))
	}
	respondData(c, gin.H{"images": resp}, "Images reordered")
}

// Delete godoc
// @Summary     Delete media
// @Tags        media
// @Produce     json
// @Security    Bearer
// @Param       media_id path string true "Media ID (UUID)"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /media/{media_id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	mediaID, err := parseUUIDParam(c, "media_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.verifyMediaOwnership(mediaID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.projects.DeleteMedia(mediaID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, nil, "Media deleted")
}

// BatchDelete godoc
// @Summary     Delete several media items
// @Description Deletes each id independently and reports per-item outcomes.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.BatchDeleteRequest true "Media ids"
// @Success     200 {object} models.Envelope
// @Router      /media/batch [delete]
func (h *MediaHandler) BatchDelete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req models.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.New(apperr.KindValidation, "media_ids is required"))
		return
	}

	resp := models.BatchMediaResponse{Results: []models.MediaResult{}}
	for _, raw := range req.MediaIDs {
		mediaID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: raw,
				Error:    "invalid media id",
				Stage:    "validation",
			})
			resp.FailureCount++
			continue
		}

		if ownErr := h.verifyMediaOwnership(mediaID, userID); ownErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: raw,
				Error:    apperr.Message(ownErr),
				Stage:    "authorization",
			})
			resp.FailureCount++
			continue
		}

		if delErr := h.projects.DeleteMedia(mediaID); delErr != nil {
			resp.Errors = append(resp.Errors, models.MediaError{
				Filename: raw,
				Error:    apperr.Message(delErr),
				Stage:    "database",
			})
			resp.FailureCount++
			continue
		}
		resp.Results = append(resp.Results, models.MediaResult{ID: raw, Type: "deleted"})
		resp.SuccessCount++
	}
	respondData(c, resp, "")
}

func (h *MediaHandler) verifyMediaOwnership(mediaID, userID uuid.UUID) error {
	kind, err := h.dbClient.GetMediaKind(mediaID)
	if err != nil {
		return err
	}
	resource := supabase.ResourceImage
	if kind == supabase.MediaKindVideo {
		resource = supabase.ResourceVideo
	}
	return h.dbClient.VerifyOwnership(resource, mediaID, userID)
}
