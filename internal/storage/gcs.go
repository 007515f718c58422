package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"backend/pkg/apperror"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore accepts attachment uploads keyed by object name and hands back a
// retrievable URL. No versioning or deletion — documents are write-once.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, content io.Reader) (url string, err error)
	ObjectURL(objectName string) string
}

// allowedMimeTypes restricts attachments to the document formats the request
// form accepts.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// GCSStore stores attachments in a Google Cloud Storage bucket.
type GCSStore struct {
	bucket string
}

// NewGCSStore reads GCS_BUCKET from the environment. The client itself is
// created per upload so credential rotation needs no restart.
func NewGCSStore() *GCSStore {
	return &GCSStore{bucket: os.Getenv("GCS_BUCKET")}
}

// newClient prefers ADC (service account / GOOGLE_APPLICATION_CREDENTIALS) and
// falls back to explicit JSON via GCS_CREDENTIALS_JSON for local development.
func newClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}

func (s *GCSStore) Upload(ctx context.Context, objectName string, content io.Reader) (string, error) {
	if s.bucket == "" {
		return "", apperror.Storage(nil, "GCS_BUCKET is not configured")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", apperror.Storage(err, "failed to read attachment content")
	}

	mimeType := http.DetectContentType(data)
	// DOCX is a zip container; DetectContentType cannot see past that.
	if mimeType == "application/zip" && strings.HasSuffix(objectName, ".docx") {
		mimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	if !allowedMimeTypes[mimeType] {
		return "", apperror.Validation("unsupported file type: %s", mimeType)
	}

	client, err := newClient(ctx)
	if err != nil {
		return "", apperror.Storage(err, "failed to create storage client")
	}
	defer client.Close()

	wc := client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(data); err != nil {
		return "", apperror.Storage(err, "failed to upload %s", objectName)
	}
	if err := wc.Close(); err != nil {
		return "", apperror.Storage(err, "failed to finalize upload of %s", objectName)
	}

	return s.ObjectURL(objectName), nil
}

// ObjectURL returns the public URL for a stored object.
func (s *GCSStore) ObjectURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName)
}
