package state

import (
	"os"
	"strconv"
	"strings"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/filesystem"
)

// Scalar is a single-value plain text state file, for modules that keep an
// index, a flag or a last-seen string.
type Scalar struct {
	fs   filesystem.FS
	path string
}

// NewScalar creates a scalar store for path
func NewScalar(fsys filesystem.FS, path string) *Scalar {
	return &Scalar{fs: fsys, path: path}
}

// LoadString returns the trimmed file content, or def when absent or empty
func (s *Scalar) LoadString(def string) string {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return def
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return def
	}
	return v
}

// SaveString replaces the file content atomically
func (s *Scalar) SaveString(v string) error {
	return WriteAtomic(s.fs, s.path, []byte(v), 0644)
}

// LoadInt parses the file as an integer, returning def on any failure
func (s *Scalar) LoadInt(def int) int {
	n, err := strconv.Atoi(s.LoadString(""))
	if err != nil {
		return def
	}
	return n
}

// SaveInt stores n
func (s *Scalar) SaveInt(n int) error {
	return s.SaveString(strconv.Itoa(n))
}

// LoadBool reads "1" as true and "0" as false, def otherwise
func (s *Scalar) LoadBool(def bool) bool {
	switch s.LoadString("") {
	case "1":
		return true
	case "0":
		return false
	}
	return def
}

// SaveBool stores v as "1" or "0"
func (s *Scalar) SaveBool(v bool) error {
	if v {
		return s.SaveString("1")
	}
	return s.SaveString("0")
}

// Clear deletes the file; a missing file is not an error
func (s *Scalar) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to remove %s", s.path)
	}
	return nil
}
