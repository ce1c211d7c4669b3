package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Faults wraps an FS and fails chosen mutating operations on chosen
// paths. Keys are "op path", for example "rename /etc/tlp.d/99.conf", and
// an op without a path ("remove") fails for every path. Reads always pass
// through.
type Faults struct {
	FS
	Errs map[string]error
}

// WithFaults wraps inner, starting with no faults
func WithFaults(inner FS) *Faults {
	return &Faults{FS: inner, Errs: map[string]error{}}
}

// Fail registers err for op on path. An empty path matches every path.
func (f *Faults) Fail(op, path string, err error) *Faults {
	key := op
	if path != "" {
		key += " " + filepath.Clean(path)
	}
	f.Errs[key] = err
	return f
}

func (f *Faults) check(op, path string) error {
	if err, ok := f.Errs[op+" "+filepath.Clean(path)]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	if err, ok := f.Errs[op]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (f *Faults) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("write", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *Faults) CreateTemp(dir, pattern string) (*os.File, error) {
	if err := f.check("createtemp", dir); err != nil {
		return nil, err
	}
	return f.FS.CreateTemp(dir, pattern)
}

// Rename is keyed by its destination
func (f *Faults) Rename(oldpath, newpath string) error {
	if err := f.check("rename", newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *Faults) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("mkdir", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

// Symlink is keyed by the link being created
func (f *Faults) Symlink(oldname, newname string) error {
	if err := f.check("symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *Faults) Remove(name string) error {
	if err := f.check("remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *Faults) RemoveAll(path string) error {
	if err := f.check("removeall", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
