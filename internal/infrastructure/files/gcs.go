package files

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/danuarts/woodshop/pkg/helpers"
)

// GCSStore writes uploads to a Google Cloud Storage bucket under
// images/<uuid><ext> and returns the public URL.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	objectPath := "images/" + uuid.NewString() + ext
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}

var _ ImageStore = (*GCSStore)(nil)
