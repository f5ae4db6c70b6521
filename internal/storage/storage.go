package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shopfront.dev/app/internal/shared/slug"
)

// MaxImageSize bounds admin image uploads.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
)

type PutInput struct {
	Name        string // product name, used to make keys readable
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage keeps product images and returns the public URL the catalog
// stores as image_url.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// CheckImage validates an upload before any bytes are written.
func CheckImage(in PutInput) error {
	if in.Size > MaxImageSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, in.Size)
	}
	if imageExt(in.Filename) == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(in.Filename))
	}
	if ct := in.ContentType; ct != "" && !strings.HasPrefix(ct, "image/") && ct != "application/octet-stream" {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
	return nil
}

func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

// objectName is "<slug>-<8 hex>.<ext>" when a name is known, else a uuid.
func objectName(in PutInput) string {
	id := uuid.NewString()
	if strings.TrimSpace(in.Name) == "" {
		return id + imageExt(in.Filename)
	}
	return slug.FromName(in.Name) + "-" + id[:8] + imageExt(in.Filename)
}
