package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedExtension is returned when a file does not match the accepted extensions.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// File represents a document read from disk, ready to be uploaded.
type File struct {
	Path    string
	Content []byte
}

// Name returns the base name of the file, as sent in the upload form.
func (f *File) Name() string {
	return filepath.Base(f.Path)
}

// Read a file from disk, refusing files without one of the given extensions.
// An empty extension list accepts every file.
func Read(path string, extensions []string) (*File, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}
	if !HasValidExtension(path, extensions) {
		return nil, errors.Wrapf(ErrUnsupportedExtension, "%s (accepted: %s)", path, strings.Join(extensions, ", "))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "getting os stats")
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	return &File{Path: path, Content: bytes}, nil
}

// HasValidExtension returns true if the given filename has one of the valid extensions.
func HasValidExtension(filename string, validExtensions []string) bool {
	if len(validExtensions) == 0 {
		return true
	}
	for _, validExtension := range validExtensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(validExtension)) {
			return true
		}
	}
	return false
}

// ExpandPath expands a path to avoid `~`.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
