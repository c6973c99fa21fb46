package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	f, err := Read(path, []string{".pdf", ".txt"})
	require.NoError(t, err)
	require.Equal(t, "notes.txt", f.Name())
	require.Equal(t, []byte("hello"), f.Content)
}

func TestRead_RejectsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89}, 0644))

	_, err := Read(path, []string{".pdf"})
	require.True(t, errors.Is(err, ErrUnsupportedExtension))
}

func TestRead_Directory(t *testing.T) {
	_, err := Read(t.TempDir(), nil)
	require.Error(t, err)
}

func TestHasValidExtension(t *testing.T) {
	require.True(t, HasValidExtension("a.PDF", []string{".pdf"}))
	require.True(t, HasValidExtension("a.bin", nil))
	require.False(t, HasValidExtension("a.md", []string{".pdf", ".txt"}))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/docs/a.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "docs/a.txt"), expanded)

	expanded, err = ExpandPath("~")
	require.NoError(t, err)
	require.Equal(t, home, expanded)

	unchanged, err := ExpandPath("/tmp/a.txt")
	require.NoError(t, err)
	require.Equal(t, "/tmp/a.txt", unchanged)
}
