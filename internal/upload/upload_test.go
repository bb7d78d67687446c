package upload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	calls int
	keys  []string
	files []File
	err   error
}

func (r *recordingUploader) Put(_ context.Context, key string, f File) (string, error) {
	r.calls++
	r.keys = append(r.keys, key)
	r.files = append(r.files, f)
	if r.err != nil {
		return "", r.err
	}
	return "https://cdn.example.com/" + key, nil
}

func fixedGateway(backend Uploader) *Gateway {
	g := NewGateway(backend, "", 0)
	g.now = func() time.Time { return time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC) }
	g.newID = func() string { return "abc" }
	return g
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_NoFileSkipsBackend(t *testing.T) {
	backend := &recordingUploader{}
	g := fixedGateway(backend)

	_, err := g.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = g.Upload(context.Background(), &File{Name: "empty.png"})
	assert.ErrorIs(t, err, ErrNoFile)

	assert.Zero(t, backend.calls)
}

func TestUpload_TooLarge(t *testing.T) {
	backend := &recordingUploader{}
	g := NewGateway(backend, "", 4)

	_, err := g.Upload(context.Background(), &File{Name: "a.png", Data: []byte("12345")})
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, backend.calls)
}

func TestUpload_KeyAndContentType(t *testing.T) {
	backend := &recordingUploader{}
	g := fixedGateway(backend)

	url, err := g.Upload(context.Background(), &File{Name: "Board.PNG", Data: pngHeader})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/gumtree/2025/03/abc.png", url)
	require.Len(t, backend.files, 1)
	assert.Equal(t, "image/png", backend.files[0].ContentType)
	assert.EqualValues(t, len(pngHeader), backend.files[0].Size)
}

func TestUpload_KeepsExplicitContentType(t *testing.T) {
	backend := &recordingUploader{}
	g := fixedGateway(backend)

	_, err := g.Upload(context.Background(), &File{Name: "x.webp", ContentType: "image/webp", Data: []byte("RIFF....WEBP")})
	require.NoError(t, err)
	assert.Equal(t, "image/webp", backend.files[0].ContentType)
}

func TestUpload_BackendFailureWrapped(t *testing.T) {
	backend := &recordingUploader{err: errors.New("bucket not found")}
	g := fixedGateway(backend)

	_, err := g.Upload(context.Background(), &File{Name: "a.png", Data: pngHeader})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://h/a/b", joinURL("http://h/", "/a/b"))
	assert.Equal(t, "/uploads/k", joinURL("/uploads", "k"))
}
