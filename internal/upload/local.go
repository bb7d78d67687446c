package upload

import (
	"context"
	"os"
	"path/filepath"
)

// LocalPrefix is the URL path the server mounts the upload directory on.
const LocalPrefix = "/uploads"

// LocalUploader writes objects below a directory on disk.
type LocalUploader struct {
	root    string
	baseURL string
}

// NewLocalUploader stores files under root. URLs are built from baseURL, or
// from LocalPrefix when baseURL is empty.
func NewLocalUploader(root, baseURL string) *LocalUploader {
	if baseURL == "" {
		baseURL = LocalPrefix
	}
	return &LocalUploader{root: root, baseURL: baseURL}
}

func (l *LocalUploader) Put(_ context.Context, key string, f File) (string, error) {
	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, f.Data, 0o644); err != nil {
		return "", err
	}
	return joinURL(l.baseURL, key), nil
}
