package refresh

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a local file, using its size and modification time as
// the version so unchanged files are not re-read.
type FileSource struct {
	// Path is the file to read.
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context, version string) ([]byte, string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: stat %s: %w", s.Path, err)
	}

	newVersion := fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano())
	if version != "" && newVersion == version {
		return nil, "", ErrNotModified
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", fmt.Errorf("refresh: read %s: %w", s.Path, err)
	}
	return data, newVersion, nil
}
