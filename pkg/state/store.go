package state

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
)

// Validator is implemented by state types that can reject a decoded value.
// An invalid value is treated like a missing file.
type Validator interface {
	Valid() bool
}

// Store is a JSON-backed continuation state file
type Store[T any] struct {
	fs       filesystem.FS
	path     string
	defaults func() T
}

// New creates a store for path. defaults may be nil, in which case the
// zero value of T is the default.
func New[T any](fsys filesystem.FS, path string, defaults func() T) *Store[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &Store[T]{fs: fsys, path: path, defaults: defaults}
}

// Path returns the backing file path
func (s *Store[T]) Path() string {
	return s.path
}

// Load returns the persisted value or the default. It never fails.
func (s *Store[T]) Load() T {
	logger := logging.GetLogger("state")

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug().Err(err).Str("path", s.path).Msg("State unreadable, using default")
		}
		return s.defaults()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s.defaults()
	}

	v := s.defaults()
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Debug().Err(err).Str("path", s.path).Msg("State corrupt, using default")
		return s.defaults()
	}
	if val, ok := any(&v).(Validator); ok && !val.Valid() {
		logger.Debug().Str("path", s.path).Msg("State invalid, using default")
		return s.defaults()
	}
	return v
}

// Save replaces the persisted value atomically
func (s *Store[T]) Save(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to encode state for %s", s.path)
	}
	return WriteAtomic(s.fs, s.path, append(data, '\n'), 0644)
}

// Clear deletes the persisted value; a missing file is not an error
func (s *Store[T]) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to remove %s", s.path)
	}
	return nil
}

// Update runs one locked read-modify-write cycle. When fn returns an error
// nothing is written and the error is returned with the unmodified value.
func (s *Store[T]) Update(fn func(*T) error) (T, error) {
	unlock, err := Lock(s.path)
	if err != nil {
		return s.defaults(), err
	}
	defer unlock()

	v := s.Load()
	orig := v
	if err := fn(&v); err != nil {
		return orig, err
	}
	if err := s.Save(v); err != nil {
		return orig, err
	}
	return v, nil
}
