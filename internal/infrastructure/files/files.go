package files

import (
	"context"
	"io"
)

// ImageStore persists uploaded image bytes under a collision-resistant
// name and returns a path/URL usable by the presentation layer. Stored
// files are never overwritten.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, originalName, contentType string) (string, error)
}
