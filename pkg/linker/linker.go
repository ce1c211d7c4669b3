package linker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/polka-dots/polka/pkg/logging"
	"github.com/rs/zerolog"
)

// Action is what happened to one target path
type Action string

const (
	ActionLinked  Action = "linked"
	ActionSkipped Action = "skipped"
	ActionMissing Action = "missing"
	ActionPruned  Action = "pruned"
)

// Mapping mirrors the files under Source into Target
type Mapping struct {
	Source string `koanf:"source" toml:"source"`
	Target string `koanf:"target" toml:"target"`
}

// Options describes one reconciliation run
type Options struct {
	SourceRoot string
	TargetRoot string
	// Exclude holds relative path prefixes the generic pass ignores
	Exclude []string
	// Directories are relative paths linked as whole directories
	Directories []string
	Individual  []Mapping
	DryRun      bool
	// Prune removes links into the source trees whose source is gone
	Prune bool
}

// Entry records the outcome for one link
type Entry struct {
	Source string
	Target string
	Action Action
}

// Result summarizes a run
type Result struct {
	Linked  int
	Skipped int
	Pruned  int
	Entries []Entry
}

func (r *Result) add(e Entry) {
	r.Entries = append(r.Entries, e)
	switch e.Action {
	case ActionLinked:
		r.Linked++
	case ActionPruned:
		r.Pruned++
	default:
		r.Skipped++
	}
}

// Linker performs reconciliation runs against a filesystem
type Linker struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates a linker over fsys
func New(fsys filesystem.FS) *Linker {
	return &Linker{fs: fsys, logger: logging.GetLogger("linker")}
}

// Run executes the three link passes and, when asked, the prune pass. A
// missing source root aborts before any change is made.
func (l *Linker) Run(opts Options) (*Result, error) {
	done := logging.LogOperationStart(l.logger, "link")
	defer done()

	opts, err := absolute(opts)
	if err != nil {
		return nil, err
	}
	info, err := l.fs.Stat(opts.SourceRoot)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "source root %s does not exist", opts.SourceRoot).
			WithDetail("path", opts.SourceRoot)
	}

	res := &Result{}
	if err := l.linkTree(opts, res); err != nil {
		return res, err
	}
	if err := l.linkDirectories(opts, res); err != nil {
		return res, err
	}
	if err := l.linkIndividual(opts, res); err != nil {
		return res, err
	}
	if opts.Prune {
		if err := l.prune(opts, res); err != nil {
			return res, err
		}
	}

	l.logger.Info().Int("linked", res.Linked).Int("skipped", res.Skipped).Int("pruned", res.Pruned).Msg("Link run finished")
	return res, nil
}

// absolute resolves every root and mapping against the working
// directory, so link values and prune checks compare like with like.
func absolute(opts Options) (Options, error) {
	abs := func(path *string) error {
		p, err := filepath.Abs(*path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", *path)
		}
		*path = p
		return nil
	}

	if err := abs(&opts.SourceRoot); err != nil {
		return opts, err
	}
	if err := abs(&opts.TargetRoot); err != nil {
		return opts, err
	}
	mappings := make([]Mapping, len(opts.Individual))
	for i, m := range opts.Individual {
		if err := abs(&m.Source); err != nil {
			return opts, err
		}
		if err := abs(&m.Target); err != nil {
			return opts, err
		}
		mappings[i] = m
	}
	opts.Individual = mappings
	return opts, nil
}

func (l *Linker) linkTree(opts Options, res *Result) error {
	return l.walkFiles(opts.SourceRoot, func(src string) error {
		rel, err := filepath.Rel(opts.SourceRoot, src)
		if err != nil {
			return err
		}
		if excluded(rel, opts.Exclude, opts.Directories) {
			l.logger.Trace().Str("path", rel).Msg("Excluded")
			return nil
		}
		return l.link(src, dottedTarget(rel, opts.TargetRoot), opts.DryRun, res)
	})
}

func (l *Linker) linkDirectories(opts Options, res *Result) error {
	for _, dir := range opts.Directories {
		rel := filepath.Clean(dir)
		src := filepath.Join(opts.SourceRoot, rel)
		dst := dottedTarget(rel, opts.TargetRoot)

		info, err := l.fs.Stat(src)
		if err != nil || !info.IsDir() {
			l.logger.Debug().Str("path", src).Msg("Directory missing, skipping")
			res.add(Entry{Source: src, Target: dst, Action: ActionMissing})
			continue
		}
		if err := l.link(src, dst, opts.DryRun, res); err != nil {
			return err
		}
	}
	return nil
}

func (l *Linker) linkIndividual(opts Options, res *Result) error {
	for _, m := range opts.Individual {
		info, err := l.fs.Stat(m.Source)
		if err != nil || !info.IsDir() {
			l.logger.Warn().Str("path", m.Source).Msg("Directory does not exist, skipping")
			res.add(Entry{Source: m.Source, Target: m.Target, Action: ActionMissing})
			continue
		}
		err = l.walkFiles(m.Source, func(src string) error {
			rel, err := filepath.Rel(m.Source, src)
			if err != nil {
				return err
			}
			return l.link(src, filepath.Join(m.Target, rel), opts.DryRun, res)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// link makes dst a symlink to src, expressed relative to dst's parent
func (l *Linker) link(src, dst string, dryRun bool, res *Result) error {
	value, err := filepath.Rel(filepath.Dir(dst), src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot relate %s to %s", src, dst)
	}

	if current, err := l.fs.Readlink(dst); err == nil && current == value {
		res.add(Entry{Source: src, Target: dst, Action: ActionSkipped})
		return nil
	}

	if dryRun {
		res.add(Entry{Source: src, Target: dst, Action: ActionLinked})
		return nil
	}

	if err := l.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", filepath.Dir(dst))
	}
	if err := l.remove(dst); err != nil {
		return err
	}
	if err := l.fs.Symlink(value, dst); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", dst)
	}

	l.logger.Info().Str("target", dst).Str("value", value).Msg("Linked")
	res.add(Entry{Source: src, Target: dst, Action: ActionLinked})
	return nil
}

// remove clears whatever occupies path; real directories go recursively
func (l *Linker) remove(path string) error {
	info, err := l.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
	}

	if info.IsDir() {
		err = l.fs.RemoveAll(path)
	} else {
		err = l.fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
	}
	l.logger.Debug().Str("path", path).Msg("Removed")
	return nil
}

// walkFiles calls fn for every regular file below root, in lexical order.
// Symlinks to files count as files; symlinked directories are not entered.
func (l *Linker) walkFiles(root string, fn func(path string) error) error {
	entries, err := l.fs.ReadDir(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", root)
	}
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		switch {
		case e.IsDir():
			if err := l.walkFiles(path, fn); err != nil {
				return err
			}
		case e.Type()&fs.ModeSymlink != 0:
			if info, err := l.fs.Stat(path); err == nil && info.Mode().IsRegular() {
				if err := fn(path); err != nil {
					return err
				}
			}
		case e.Type().IsRegular():
			if err := fn(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// dottedTarget maps "config/nvim/init.lua" to TargetRoot/.config/nvim/init.lua
func dottedTarget(rel, targetRoot string) string {
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	parts[0] = "." + strings.TrimPrefix(parts[0], ".")
	return filepath.Join(targetRoot, filepath.FromSlash(strings.Join(parts, "/")))
}

func excluded(rel string, prefixes, directories []string) bool {
	slashed := filepath.ToSlash(rel)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(slashed, filepath.ToSlash(p)) {
			return true
		}
	}
	for _, d := range directories {
		d = filepath.ToSlash(filepath.Clean(d))
		if slashed == d || strings.HasPrefix(slashed, d+"/") {
			return true
		}
	}
	return false
}
