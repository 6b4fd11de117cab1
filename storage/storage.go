// Package storage implements the on-disk blob store for uploaded files.
// Files are kept in a flat directory keyed by a generated stored name that
// never collides with another upload.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// allowedExtensions is the upload allow-list. Comparison is
// case-insensitive on the substring after the last dot.
var allowedExtensions = map[string]bool{
	"pdf": true, "docx": true, "doc": true, "ppt": true, "pptx": true,
	"jpg": true, "jpeg": true, "png": true, "txt": true, "zip": true,
}

// Store is a directory-backed blob store.
type Store struct {
	dir string
}

// New creates the backing directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// AllowedExtension reports whether the filename carries an extension from
// the allow-list. A missing extension is not allowed.
func AllowedExtension(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	return allowedExtensions[strings.ToLower(name[idx+1:])]
}

// SanitizeFilename strips path components and replaces filesystem-unsafe
// characters, keeping letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	// Take the final path element for either separator style.
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			return r
		}
		switch r {
		case '.', '-', '_':
			return r
		}
		return '_'
	}, name)
	return strings.Trim(name, "._")
}

// StoredName generates the unique on-disk name for an upload: a timestamp
// prefix, a short random component, and the sanitized original name.
func StoredName(original string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s",
		now.Format("20060102_150405"),
		uuid.NewString()[:8],
		SanitizeFilename(original))
}

// Save writes src to the store under name and returns the byte count.
func (s *Store) Save(name string, src io.Reader) (int64, error) {
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return 0, fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return n, fmt.Errorf("write blob: %w", err)
	}
	return n, nil
}

// Remove deletes a blob. A blob that is already gone is not an error, so
// resource deletion stays idempotent.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// Path returns the absolute-or-relative path of a stored blob.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether a blob is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
