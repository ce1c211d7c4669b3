package state

import (
	"io/fs"
	"path/filepath"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/filesystem"
)

// WriteAtomic writes data to path through a temp file and rename
func WriteAtomic(fsys filesystem.FS, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to create state directory %s", dir)
	}

	tmp, err := fsys.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to create temp file for %s", path)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to write %s", tmpName)
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to chmod %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to close %s", tmpName)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, errors.ErrStateWrite, "failed to replace %s", path)
	}

	success = true
	return nil
}
