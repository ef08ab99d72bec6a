package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient uploads captured beer photos to Supabase Storage.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, apiKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", apiKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadBeerImage stores the image under users/{userID}/beers/{beerID}.jpg
// and returns its public URL.
func (s *StorageClient) UploadBeerImage(userID, beerID string, data []byte, contentType string) (string, error) {
	storagePath := fmt.Sprintf("users/%s/beers/%s.jpg", userID, beerID)

	if contentType == "" {
		contentType = "image/jpeg"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.PublicURL(storagePath), nil
}

// PublicURL builds the publicly retrievable URL for a storage path.
func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// DeleteBeerImage removes an uploaded photo. Deletion of the record does not
// call this automatically — orphaned images are accepted.
func (s *StorageClient) DeleteBeerImage(userID, beerID string) error {
	storagePath := fmt.Sprintf("users/%s/beers/%s.jpg", userID, beerID)
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}
