package gcs

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Storage wraps a Google Cloud Storage client bound to one bucket.
type Storage struct {
	client *storage.Client
	bucket string
}

// New connects to Google Cloud Storage and verifies the bucket is
// reachable before returning.
func New(ctx context.Context, bucket, credentialsFile string) (*Storage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to Google Cloud Storage: %w", err)
	}
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("access bucket %s: %w", bucket, err)
	}
	return &Storage{client: client, bucket: bucket}, nil
}

// Upload writes the file under <folder>/<uuid>_<unixnano>.<ext> and
// returns its public URL.
func (s *Storage) Upload(ctx context.Context, r io.Reader, contentType, folder string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extensionFor(contentType))
	log.Printf("Uploading to bucket %s, object %s", s.bucket, objectName)

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("copy file to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

// Delete removes one object from the bucket.
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	return s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
}

// Close releases the underlying client.
func (s *Storage) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// ObjectName recovers the object path from a public URL produced by
// Upload, dropping any query string or fragment suffix. It returns ""
// for URLs that do not point into this bucket.
func (s *Storage) ObjectName(url string) string {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	name := strings.TrimPrefix(url, prefix)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return name
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "video/mp4":
		return "mp4"
	case "video/webm":
		return "webm"
	case "video/quicktime":
		return "mov"
	default:
		log.Printf("Unknown content type %s, defaulting to .bin", contentType)
		return "bin"
	}
}
