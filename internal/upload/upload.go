// Package upload forwards admin image uploads to an asset store and returns
// the public URL of the stored object.
package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/gumtree-backend/internal/metrics"
)

// DefaultMaxBytes bounds a single uploaded file.
const DefaultMaxBytes = 10 << 20

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrTooLarge     = errors.New("file too large")
	ErrUploadFailed = errors.New("upload failed")
)

// File is an uploaded part held in memory.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Uploader stores an object under key and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, key string, f File) (string, error)
}

// Gateway validates files, names them and hands them to an Uploader.
type Gateway struct {
	backend  Uploader
	folder   string
	maxBytes int64
	now      func() time.Time
	newID    func() string
}

func NewGateway(backend Uploader, folder string, maxBytes int64) *Gateway {
	if folder == "" {
		folder = "gumtree"
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Gateway{
		backend:  backend,
		folder:   strings.Trim(folder, "/"),
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

// Upload stores f and returns its URL. A missing or empty file fails with
// ErrNoFile before the backend is contacted.
func (g *Gateway) Upload(ctx context.Context, f *File) (string, error) {
	if f == nil || len(f.Data) == 0 {
		metrics.Uploads.WithLabelValues("no_file").Inc()
		return "", ErrNoFile
	}
	if int64(len(f.Data)) > g.maxBytes {
		metrics.Uploads.WithLabelValues("too_large").Inc()
		return "", ErrTooLarge
	}

	file := *f
	file.Size = int64(len(file.Data))
	file.ContentType = detectContentType(file)

	url, err := g.backend.Put(ctx, g.objectKey(file.Name), file)
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	return url, nil
}

// objectKey builds <folder>/<yyyy>/<mm>/<uuid><ext>.
func (g *Gateway) objectKey(name string) string {
	d := g.now()
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("%s/%04d/%02d/%s%s", g.folder, d.Year(), int(d.Month()), g.newID(), ext)
}

func detectContentType(f File) string {
	ct := strings.TrimSpace(f.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		return http.DetectContentType(f.Data)
	}
	return ct
}

// joinURL appends key to base with exactly one slash between them.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
