package supabase

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// MediaPath builds the object key for project media:
// {userID}/{projectID}/{type}-{timestamp}.{ext}
func MediaPath(userID, projectID uuid.UUID, mediaType, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%s-%d.%s",
		userID.String(), projectID.String(), mediaType, time.Now().UnixNano(), ext)
}

// ProfileImagePath builds the object key for avatars and banners:
// {userID}/{kind}-{timestamp}.{ext}
func ProfileImagePath(userID uuid.UUID, kind, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%s-%d.%s", userID.String(), kind, time.Now().UnixNano(), ext)
}

func (s *StorageClient) UploadFile(storagePath string, data []byte, contentType string) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

func (s *StorageClient) DeleteFiles(storagePaths []string) error {
	if len(storagePaths) == 0 {
		return nil
	}
	_, err := s.client.RemoveFile(s.bucket, storagePaths)
	return err
}

// DeleteProjectFiles removes every object under the project's prefix.
// Best-effort: callers ignore the error when cascading a project delete.
func (s *StorageClient) DeleteProjectFiles(userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("%s/%s/", userID.String(), projectID.String())

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}
