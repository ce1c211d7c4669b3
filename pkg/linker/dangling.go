package linker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/polka-dots/polka/pkg/errors"
)

// Dangling is a symlink on the target side that points into a source tree
// at something that no longer exists
type Dangling struct {
	Target string
	Source string
}

// FindDangling inspects the target-side mirror of every source directory
// and reports links into the source trees whose destination is gone. Only
// directories that still exist in a source tree are inspected.
func (l *Linker) FindDangling(opts Options) ([]Dangling, error) {
	opts, err := absolute(opts)
	if err != nil {
		return nil, err
	}

	var found []Dangling
	skip := func(rel string) bool { return rel != "." && excluded(rel, opts.Exclude, opts.Directories) }
	if err := l.scanDangling(opts.SourceRoot, opts.SourceRoot, opts.TargetRoot, true, skip, &found); err != nil {
		return found, err
	}
	for _, m := range opts.Individual {
		if info, err := l.fs.Stat(m.Source); err != nil || !info.IsDir() {
			continue
		}
		if err := l.scanDangling(m.Source, m.Source, m.Target, false, nil, &found); err != nil {
			return found, err
		}
	}
	return found, nil
}

// scanDangling checks the links in targetDir, then descends into every
// subdirectory that srcDir still has. dotted applies the dot rule to the
// first level below the source root.
func (l *Linker) scanDangling(root, srcDir, targetDir string, dotted bool, skip func(rel string) bool, found *[]Dangling) error {
	info, err := l.fs.Lstat(targetDir)
	if err != nil || info.Mode()&fs.ModeSymlink != 0 || !info.IsDir() {
		return nil
	}

	entries, err := l.fs.ReadDir(targetDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", targetDir)
	}
	for _, e := range entries {
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		path := filepath.Join(targetDir, e.Name())
		value, err := l.fs.Readlink(path)
		if err != nil {
			continue
		}
		dest := value
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(targetDir, dest)
		}
		dest = filepath.Clean(dest)
		if !within(dest, root) {
			continue
		}
		if _, err := l.fs.Stat(path); err != nil && os.IsNotExist(err) {
			l.logger.Debug().Str("target", path).Str("source", dest).Msg("Dangling link")
			*found = append(*found, Dangling{Target: path, Source: dest})
		}
	}

	children, err := l.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcDir)
	}
	for _, c := range children {
		if !c.IsDir() {
			continue
		}
		src := filepath.Join(srcDir, c.Name())
		if skip != nil {
			rel, err := filepath.Rel(root, src)
			if err != nil || skip(rel) {
				continue
			}
		}
		name := c.Name()
		if dotted {
			name = "." + strings.TrimPrefix(name, ".")
		}
		if err := l.scanDangling(root, src, filepath.Join(targetDir, name), false, skip, found); err != nil {
			return err
		}
	}
	return nil
}

// prune removes dangling links, or only reports them on a dry run
func (l *Linker) prune(opts Options, res *Result) error {
	dangling, err := l.FindDangling(opts)
	if err != nil {
		return err
	}
	for _, d := range dangling {
		if !opts.DryRun {
			if err := l.fs.Remove(d.Target); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove dangling link %s", d.Target)
			}
			l.logger.Info().Str("target", d.Target).Msg("Pruned dangling link")
		}
		res.add(Entry{Source: d.Source, Target: d.Target, Action: ActionPruned})
	}
	return nil
}

func within(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
