// internal/adapters/out/gcs/object_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/storage"

	usecase "nftminter/internal/application/usecase"
)

var ErrNilClient = errors.New("gcs: nil storage client")

// ObjectRepositoryGCS stores images and off-chain metadata JSON in a public bucket.
type ObjectRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	Prefix string // e.g. "nft/"; objects land at <prefix><objectName>
}

var _ usecase.ObjectStorage = (*ObjectRepositoryGCS)(nil)

func NewObjectRepositoryGCS(client *storage.Client, bucket, prefix string) *ObjectRepositoryGCS {
	return &ObjectRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
		Prefix: strings.TrimLeft(strings.TrimSpace(prefix), "/"),
	}
}

func (r *ObjectRepositoryGCS) Upload(ctx context.Context, objectName, contentType string, src io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", ErrNilClient
	}
	if r.Bucket == "" {
		return "", fmt.Errorf("gcs: bucket is empty (set GCS_BUCKET)")
	}
	obj := r.Prefix + strings.TrimLeft(strings.TrimSpace(objectName), "/")
	if obj == "" {
		return "", fmt.Errorf("gcs: objectName is empty")
	}
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		ct = "application/octet-stream"
	}

	w := r.Client.Bucket(r.Bucket).Object(obj).NewWriter(ctx)
	w.ContentType = ct
	w.CacheControl = "public, max-age=31536000, immutable"

	n, err := io.Copy(w, src)
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close %s: %w", obj, err)
	}

	url := PublicURL(r.Bucket, obj)
	log.Printf("[gcs] uploaded object=%s bytes=%d contentType=%s", obj, n, ct)
	return url, nil
}

// PublicURL builds https://storage.googleapis.com/<bucket>/<object>.
func PublicURL(bucket, objectPath string) string {
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", strings.TrimSpace(bucket), obj)
}
