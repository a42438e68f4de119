package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir(".hoverboard")
	require.NoError(t, err)

	want := filepath.Join(tmp, ".hoverboard")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureDir_Absolute(t *testing.T) {
	want := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureDir("state")
	require.NoError(t, err)

	second, err := EnsureDir("state")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("state", []byte("x"), 0o600))

	_, err := EnsureDir("state")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestReadLimited(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o600))

	b, err := ReadLimited(path, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), b)

	_, err = ReadLimited(path, 4)
	require.ErrorContains(t, err, "limit is 4")

	_, err = ReadLimited(dir, 100)
	require.ErrorContains(t, err, "is a directory")

	_, err = ReadLimited(filepath.Join(dir, "missing"), 100)
	require.ErrorIs(t, err, os.ErrNotExist)
}
