package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes uploads to a local directory and serves them from a base
// URL. A CDN-backed store can replace it behind the FileStore interface.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ FileStore = (*DiskStore)(nil)

func (s *DiskStore) UploadImage(ctx context.Context, name string, data []byte) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg":
	default:
		return nil, fmt.Errorf("unsupported image extension %q", ext)
	}

	key := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return &UploadResult{URL: s.baseURL + "/" + key, Key: key}, nil
}
