package state

import (
	"os"
	"path/filepath"

	"github.com/polka-dots/polka/pkg/errors"
	"golang.org/x/sys/unix"
)

// Lock takes an exclusive advisory lock for the state file at path and
// returns the release function. It blocks until the lock is granted.
func Lock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateWrite, "failed to create lock directory for %s", path)
	}

	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateWrite, "failed to open lock for %s", path)
	}

	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, errors.ErrStateWrite, "failed to lock %s", path)
	}

	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		_ = f.Close()
	}, nil
}
