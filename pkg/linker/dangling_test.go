package linker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/polka-dots/polka/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDangling(t *testing.T) {
	f := newFixture(t)
	l := New(filesystem.NewOS())
	opts := f.options()

	_, err := l.Run(opts)
	require.NoError(t, err)

	found, err := l.FindDangling(opts)
	require.NoError(t, err)
	assert.Empty(t, found, "fresh links all resolve")

	require.NoError(t, os.Remove(filepath.Join(f.source, "zshrc")))
	require.NoError(t, os.Remove(filepath.Join(f.source, "config", "hypr", "hyprland.conf")))
	require.NoError(t, os.Remove(filepath.Join(f.extra, "fonts", "a", "font.ttf")))

	// a link owned by someone else is never reported
	require.NoError(t, os.Symlink("/nonexistent/elsewhere", filepath.Join(f.home, ".foreign")))

	found, err = l.FindDangling(opts)
	require.NoError(t, err)

	var targets []string
	for _, d := range found {
		targets = append(targets, d.Target)
	}
	assert.ElementsMatch(t, []string{
		filepath.Join(f.home, ".zshrc"),
		filepath.Join(f.home, ".config", "hypr", "hyprland.conf"),
		filepath.Join(f.home, ".local", "share", "fonts", "a", "font.ttf"),
	}, targets)
}

func TestRun_Prune(t *testing.T) {
	f := newFixture(t)
	l := New(filesystem.NewOS())
	opts := f.options()

	_, err := l.Run(opts)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(f.source, "zshrc")))

	opts.Prune = true
	opts.DryRun = true
	res, err := l.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pruned)
	_, err = os.Lstat(filepath.Join(f.home, ".zshrc"))
	assert.NoError(t, err, "dry run keeps the link")

	opts.DryRun = false
	res, err = l.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pruned)
	_, err = os.Lstat(filepath.Join(f.home, ".zshrc"))
	assert.True(t, os.IsNotExist(err))

	res, err = l.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Pruned)
}
