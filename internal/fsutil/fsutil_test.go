package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(good, []byte("héllo ✓\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("ok \xc3\x28 not ok"), 0644))

	text, err := ReadText(good)
	require.NoError(t, err)
	assert.Equal(t, "héllo ✓\n", text)

	_, err = ReadText(bad)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = ReadText(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadText(dir)
	assert.Error(t, err)
}

func TestAtomicWriteKeepsModeAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0755))
	require.NoError(t, os.Chmod(path, 0755))

	require.NoError(t, AtomicWrite(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestAtomicWriteMissingTarget(t *testing.T) {
	err := AtomicWrite(filepath.Join(t.TempDir(), "missing.txt"), []byte("x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer original"), 0600))
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, WriteInPlace(path, []byte("short")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRunLockExcludesSecondRun(t *testing.T) {
	root := t.TempDir()

	first, err := AcquireRunLock(root)
	require.NoError(t, err)

	_, err = AcquireRunLock(root)
	assert.True(t, errors.Is(err, ErrLocked), "expected ErrLocked, got %v", err)

	// A different tree is independent.
	other, err := AcquireRunLock(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, other.Release())

	require.NoError(t, first.Release())

	again, err := AcquireRunLock(root)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestLockPathIsOutsideTree(t *testing.T) {
	root := t.TempDir()
	path, err := LockPath(root)
	require.NoError(t, err)

	rel, err := filepath.Rel(root, path)
	require.NoError(t, err)
	assert.True(t, rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator), "lock file %s is inside %s", path, root)

	same, err := LockPath(root + string(filepath.Separator) + ".")
	require.NoError(t, err)
	assert.Equal(t, path, same)
}
