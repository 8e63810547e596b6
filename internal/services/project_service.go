package services

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentfolio-backend/internal/apperr"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/supabase"
)

// UploadedFile is an in-memory upload handed over by the handler after
// validation.
type UploadedFile struct {
	Filename    string
	Data        []byte
	ContentType string
}

// maxImportSize bounds a single remote media download.
const maxImportSize = 50 << 20

// ProjectService orchestrates project writes that span the database and
// object storage. Creation runs inside one transaction so a failed upload
// never leaves a half-built project behind; storage objects written before
// the failure are removed best-effort.
type ProjectService struct {
	db      *supabase.DatabaseClient
	storage *supabase.StorageClient
	events  *supabase.EventsClient
	logger  *zap.Logger

	httpClient *http.Client
}

func NewProjectService(db *supabase.DatabaseClient, storage *supabase.StorageClient, events *supabase.EventsClient, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		db:      db,
		storage: storage,
		events:  events,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CreateProject creates the project row, stores every uploaded and imported
// file, records the media rows, and resolves the thumbnail, all atomically.
func (s *ProjectService) CreateProject(userID uuid.UUID, creatorID uuid.UUID, in models.ProjectInput, files []UploadedFile) (*models.Project, []models.Image, []models.Video, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, nil, apperr.Wrap(apperr.KindDatabase, "Database operation failed", err)
	}

	var uploadedPaths []string
	cleanup := func() {
		tx.Rollback()
		if len(uploadedPaths) > 0 {
			if delErr := s.storage.DeleteFiles(uploadedPaths); delErr != nil {
				s.logger.Warn("storage cleanup after failed project creation",
					zap.Int("paths", len(uploadedPaths)),
					zap.Error(delErr),
				)
			}
		}
	}

	project, err := s.db.CreateProjectTx(tx, creatorID, in)
	if err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	var (
		images []models.Image
		videos []models.Video
	)
	// Videos produce no image row, so the thumbnail match keys on the
	// source filename rather than the file's position in the batch.
	imageURLByName := make(map[string]string)

	store := func(file UploadedFile) error {
		image, video, storagePath, err := s.storeFileTx(tx, userID, creatorID, project.ID, file, len(images))
		if storagePath != "" {
			uploadedPaths = append(uploadedPaths, storagePath)
		}
		if err != nil {
			return err
		}
		if video != nil {
			videos = append(videos, *video)
			return nil
		}
		images = append(images, *image)
		imageURLByName[file.Filename] = image.URL
		return nil
	}

	for _, file := range files {
		if err := store(file); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
	}

	for _, importURL := range in.ImportURLs {
		fetched, fetchErr := s.fetchRemote(importURL)
		if fetchErr != nil {
			cleanup()
			return nil, nil, nil, fetchErr
		}
		if err := store(*fetched); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
	}

	for _, videoURL := range in.VideoURLs {
		youtubeID, vimeoID, parseErr := ParseVideoLink(videoURL)
		if parseErr != nil {
			cleanup()
			return nil, nil, nil, parseErr
		}

		video, dbErr := s.db.CreateVideoTx(tx, supabase.NewVideo{
			ProjectID: project.ID,
			CreatorID: creatorID,
			URL:       videoURL,
			YouTubeID: youtubeID,
			VimeoID:   vimeoID,
		})
		if dbErr != nil {
			cleanup()
			return nil, nil, nil, dbErr
		}
		videos = append(videos, *video)
	}

	if thumbnail := resolveThumbnail(in.Thumbnail, imageURLByName, images); thumbnail != "" {
		if err := s.db.SetProjectThumbnailTx(tx, project.ID, thumbnail); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		project.ThumbnailURL.String = thumbnail
		project.ThumbnailURL.Valid = true
	}

	if err := tx.Commit(); err != nil {
		cleanup()
		return nil, nil, nil, apperr.Wrap(apperr.KindDatabase, "Database operation failed", err)
	}

	if total := len(images) + len(videos); total > 0 {
		s.events.PublishUserEvent(userID, "upload:completed", supabase.UploadCompletedPayload(project.ID, total))
	}
	return project, images, videos, nil
}

// storeFileTx uploads one file and records its row inside the creation
// transaction. The storage path is returned even when the insert fails so the
// caller can remove the object on rollback.
func (s *ProjectService) storeFileTx(tx *sql.Tx, userID, creatorID, projectID uuid.UUID, file UploadedFile, sortOrder int) (*models.Image, *models.Video, string, error) {
	if strings.HasPrefix(file.ContentType, "video/") {
		storagePath := supabase.MediaPath(userID, projectID, supabase.MediaKindVideo, file.Filename)
		publicURL, err := s.storage.UploadFile(storagePath, file.Data, file.ContentType)
		if err != nil {
			return nil, nil, "", apperr.Wrap(apperr.KindExternal, fmt.Sprintf("Failed to upload %s", file.Filename), err)
		}

		video, dbErr := s.db.CreateVideoTx(tx, supabase.NewVideo{
			ProjectID:   projectID,
			CreatorID:   creatorID,
			URL:         publicURL,
			StoragePath: storagePath,
		})
		if dbErr != nil {
			return nil, nil, storagePath, dbErr
		}
		return nil, video, storagePath, nil
	}

	storagePath := supabase.MediaPath(userID, projectID, supabase.MediaKindImage, file.Filename)
	publicURL, err := s.storage.UploadFile(storagePath, file.Data, file.ContentType)
	if err != nil {
		return nil, nil, "", apperr.Wrap(apperr.KindExternal, fmt.Sprintf("Failed to upload %s", file.Filename), err)
	}

	image, dbErr := s.db.CreateImageTx(tx, supabase.NewImage{
		ProjectID:   projectID,
		CreatorID:   creatorID,
		URL:         publicURL,
		StoragePath: storagePath,
		SortOrder:   sortOrder,
		FileSize:    int64(len(file.Data)),
		MimeType:    file.ContentType,
	})
	if dbErr != nil {
		return nil, nil, storagePath, dbErr
	}
	return image, nil, storagePath, nil
}

// resolveThumbnail picks the thumbnail URL for a freshly created project.
// An explicit thumbnail is matched by source filename against the stored
// images; otherwise the first image wins. Stored object names do not keep the
// original filename, so the lookup goes through the map built during
// creation.
func resolveThumbnail(requested string, imageURLByName map[string]string, images []models.Image) string {
	if requested != "" {
		if url, ok := imageURLByName[requested]; ok {
			return url
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

// UploadProjectMedia stores a batch of files for an existing project. Each
// file succeeds or fails on its own; one bad file never sinks the batch.
func (s *ProjectService) UploadProjectMedia(userID uuid.UUID, project *models.Project, files []UploadedFile) models.BatchMediaResponse {
	existing, err := s.db.ListImagesByProject(project.ID)
	nextOrder := len(existing)
	if err != nil {
		nextOrder = 0
	}

	resp := models.BatchMediaResponse{Results: []models.MediaResult{}}
	for _, file := range files {
		result, itemErr := s.storeProjectFile(userID, project, file, nextOrder)
		if itemErr != nil {
			resp.Errors = append(resp.Errors, *itemErr)
			resp.FailureCount++
			continue
		}
		if result.Type == supabase.MediaKindImage {
			nextOrder++
		}
		resp.Results = append(resp.Results, *result)
		resp.SuccessCount++
	}

	if resp.SuccessCount > 0 {
		s.events.PublishUserEvent(userID, "upload:completed", supabase.UploadCompletedPayload(project.ID, resp.SuccessCount))
	}
	return resp
}

func (s *ProjectService) storeProjectFile(userID uuid.UUID, project *models.Project, file UploadedFile, sortOrder int) (*models.MediaResult, *models.MediaError) {
	kind := supabase.MediaKindImage
	if strings.HasPrefix(file.ContentType, "video/") {
		kind = supabase.MediaKindVideo
	}

	storagePath := supabase.MediaPath(userID, project.ID, kind, file.Filename)
	publicURL, err := s.storage.UploadFile(storagePath, file.Data, file.ContentType)
	if err != nil {
		s.logger.Warn("media upload failed",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return nil, &models.MediaError{Filename: file.Filename, Error: "Failed to upload file", Stage: "storage"}
	}

	if kind == supabase.MediaKindVideo {
		video, dbErr := s.db.CreateVideo(supabase.NewVideo{
			ProjectID:   project.ID,
			CreatorID:   project.CreatorID,
			URL:         publicURL,
			StoragePath: storagePath,
		})
		if dbErr != nil {
			s.storage.DeleteFile(storagePath)
			return nil, &models.MediaError{Filename: file.Filename, Error: apperr.Message(dbErr), Stage: "database"}
		}
		return &models.MediaResult{ID: video.ID.String(), Filename: file.Filename, URL: publicURL, Type: supabase.MediaKindVideo}, nil
	}

	image, dbErr := s.db.CreateImage(supabase.NewImage{
		ProjectID:   project.ID,
		CreatorID:   project.CreatorID,
		URL:         publicURL,
		StoragePath: storagePath,
		SortOrder:   sortOrder,
		FileSize:    int64(len(file.Data)),
		MimeType:    file.ContentType,
	})
	if dbErr != nil {
		s.storage.DeleteFile(storagePath)
		return nil, &models.MediaError{Filename: file.Filename, Error: apperr.Message(dbErr), Stage: "database"}
	}
	return &models.MediaResult{ID: image.ID.String(), Filename: file.Filename, URL: publicURL, Type: supabase.MediaKindImage}, nil
}

// ImportProjectMedia downloads one remote file and stores it as project
// media.
func (s *ProjectService) ImportProjectMedia(userID uuid.UUID, project *models.Project, importURL string) (*models.MediaResult, error) {
	fetched, err := s.fetchRemote(importURL)
	if err != nil {
		return nil, err
	}

	existing, listErr := s.db.ListImagesByProject(project.ID)
	nextOrder := 0
	if listErr == nil {
		nextOrder = len(existing)
	}

	result, itemErr := s.storeProjectFile(userID, project, *fetched, nextOrder)
	if itemErr != nil {
		return nil, apperr.New(apperr.KindExternal, itemErr.Error)
	}
	return result, nil
}

// DeleteProject removes the project row and then its storage objects. Row
// deletion cascades to media; storage removal is best-effort and never
// blocks the delete.
func (s *ProjectService) DeleteProject(userID uuid.UUID, projectID uuid.UUID) error {
	paths, err := s.db.ProjectStoragePaths(projectID)
	if err != nil {
		s.logger.Warn("collecting storage paths before project delete", zap.Error(err))
	}

	if err := s.db.DeleteProject(projectID); err != nil {
		return err
	}

	if len(paths) > 0 {
		if err := s.storage.DeleteFiles(paths); err != nil {
			s.logger.Warn("removing storage objects after project delete",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
	}
	// Prefix sweep catches objects whose rows lost their storage_path.
	if err := s.storage.DeleteProjectFiles(userID, projectID); err != nil {
		s.logger.Warn("storage prefix sweep after project delete", zap.Error(err))
	}
	return nil
}

// DeleteMedia removes one image or video row plus its stored object.
func (s *ProjectService) DeleteMedia(mediaID uuid.UUID) error {
	kind, err := s.db.GetMediaKind(mediaID)
	if err != nil {
		return err
	}

	var storagePath string
	if kind == supabase.MediaKindVideo {
		video, getErr := s.db.GetVideo(mediaID)
		if getErr != nil {
			return getErr
		}
		storagePath = video.StoragePath.String
		if err := s.db.DeleteVideo(mediaID); err != nil {
			return err
		}
	} else {
		image, getErr := s.db.GetImage(mediaID)
		if getErr != nil {
			return getErr
		}
		storagePath = image.StoragePath.String
		if err := s.db.DeleteImage(mediaID); err != nil {
			return err
		}
	}

	if storagePath != "" {
		if err := s.storage.DeleteFile(storagePath); err != nil {
			s.logger.Warn("removing storage object after media delete",
				zap.String("media_id", mediaID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *ProjectService) fetchRemote(rawURL string) (*UploadedFile, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperr.New(apperr.KindValidation, "Invalid media URL")
	}

	resp, err := s.httpClient.Get(rawURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "Failed to download media", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.KindExternal, "Failed to download media (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImportSize+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, "Failed to download media", err)
	}
	if len(data) > maxImportSize {
		return nil, apperr.New(apperr.KindValidation, "Remote file exceeds the maximum file size")
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.KindExternal, "Remote file is empty")
	}

	filename := path.Base(parsed.Path)
	if filename == "" || filename == "." || filename == "/" {
		filename = "import"
	}

	contentType := ResolveContentType(filename, resp.Header.Get("Content-Type"))
	// Imported media passes the same type and size checks as direct uploads.
	if err := ValidateMediaFile(filename, int64(len(data)), contentType, true, maxImportSize); err != nil {
		return nil, err
	}

	return &UploadedFile{Filename: filename, Data: data, ContentType: contentType}, nil
}
