package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"lexassist-backend/config"

	"github.com/google/uuid"
)

// Storage persists uploaded case documents as blobs.
type Storage interface {
	// Upload stores a document and returns its storage path.
	Upload(ctx context.Context, docID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves a document by storage path.
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a document by storage path.
	Delete(ctx context.Context, storagePath string) error
}

// NewFromConfig selects the storage backend from configuration.
func NewFromConfig(cfg *config.Config) (Storage, error) {
	switch cfg.StorageType {
	case "local", "":
		return NewLocalStorage(cfg.StorageLocalPath)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for s3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}

// documentPath builds a collision-free storage key. Documents are
// sharded by the first two characters of their id.
func documentPath(docID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)

	id := docID.String()
	return fmt.Sprintf("%s/%s_%s%s", id[:2], id, base, ext)
}

// contentType maps a filename to the MIME type stored with the blob.
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
