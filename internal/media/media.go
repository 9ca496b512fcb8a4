// Package media stores uploaded images.
package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"rofl-backend/internal/store"
)

var (
	ErrUnsupportedType = errors.New("unsupported_image_type")
	ErrTooLarge        = errors.New("image_too_large")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Object struct {
	URL         string
	PublicID    string
	ContentType string
	Size        int64
}

// DiskStorage keeps objects as files under Dir and serves them from BaseURL.
type DiskStorage struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewDiskStorage(dir, baseURL string, maxBytes int64) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}, nil
}

func (d *DiskStorage) Dir() string {
	return d.dir
}

// PutImage sniffs r, rejects anything that is not a supported image or is
// larger than the configured limit, and writes it under a new public ID.
func (d *DiskStorage) PutImage(ctx context.Context, prefix string, r io.Reader) (Object, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return Object{}, ErrUnsupportedType
	}

	publicID := path.Join(sanitize(prefix), store.NewID()+ext)
	target := filepath.Join(d.dir, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Object{}, fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("create upload: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(br, d.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err == nil && n > d.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(target)
		if errors.Is(err, ErrTooLarge) {
			return Object{}, err
		}
		return Object{}, fmt.Errorf("write upload: %w", err)
	}
	return Object{
		URL:         d.baseURL + "/" + publicID,
		PublicID:    publicID,
		ContentType: contentType,
		Size:        n,
	}, nil
}

// Delete removes the object; a missing object is not an error.
func (d *DiskStorage) Delete(_ context.Context, publicID string) error {
	clean := path.Clean("/" + publicID)[1:]
	if clean == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func sanitize(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prefix) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "misc"
	}
	return b.String()
}
