package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/foodshare/pkg/helpers"
)

var ErrNotConfigured = errors.New("image storage not configured")

// ImageStore keeps listing photos in a GCS bucket. The reference it returns is
// the object's public URL; callers treat it as opaque.
type ImageStore struct {
	client *gcs.Client
	bucket string
}

func NewImageStore(client *gcs.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket}
}

func (s *ImageStore) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (string, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return "", ErrNotConfigured
	}
	ref, err := helpers.UploadObject(ctx, s.client, s.bucket, ObjectPath(ownerID, filename), contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return ref, nil
}

// Delete removes the object behind ref. Refs from another bucket are ignored.
func (s *ImageStore) Delete(ctx context.Context, ref string) error {
	if s == nil || s.client == nil || s.bucket == "" {
		return ErrNotConfigured
	}
	obj, ok := objectFromRef(s.bucket, ref)
	if !ok {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, obj)
}

// ObjectPath places images under food/<owner>/<uuid><ext>.
func ObjectPath(ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("food", ownerID, uuid.NewString()+ext)
}

func objectFromRef(bucket, ref string) (string, bool) {
	prefix := helpers.PublicURL(bucket, "")
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	obj := strings.TrimPrefix(ref, prefix)
	return obj, obj != ""
}
