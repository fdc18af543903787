package artifactstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"sharayeh/internal/domain/conversion"
	sharedConfig "sharayeh/internal/shared/config"
	"sharayeh/internal/shared/logger"
)

// SupabaseStore writes finished artifacts to a Supabase storage bucket and
// hands back the public URL clients download from.
type SupabaseStore struct {
	client    *storage_go.Client
	bucket    string
	keyPrefix string
	logger    logger.Interface
}

// NewSupabaseStore creates an artifact store backed by Supabase storage.
func NewSupabaseStore(cfg *sharedConfig.StorageConfig, logger logger.Interface) *SupabaseStore {
	client := storage_go.NewClient(
		strings.TrimRight(cfg.URL, "/")+"/storage/v1",
		cfg.APIKey,
		nil,
	)

	return &SupabaseStore{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
		logger:    logger,
	}
}

// Ensure SupabaseStore implements ArtifactStore
var _ conversion.ArtifactStore = (*SupabaseStore)(nil)

// Put uploads bytes under key and returns the stable public URL.
func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := key
	if s.keyPrefix != "" {
		path = s.keyPrefix + "/" + key
	}

	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	publicURL := s.client.GetPublicUrl(s.bucket, path).SignedURL
	if publicURL == "" {
		return "", fmt.Errorf("storage returned no public url for %s", path)
	}

	s.logger.Infow("artifact persisted",
		"bucket", s.bucket,
		"path", path,
		"size", len(data),
	)

	return publicURL, nil
}
