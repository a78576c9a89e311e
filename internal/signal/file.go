package signal

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirectionFile is where the plate tracker writes its direction.
const DefaultDirectionFile = "direction.txt"

// FileSink overwrites a file with the latest payload. The file holds exactly
// the payload, without a trailing newline.
type FileSink struct {
	path string
}

// NewFileSink creates a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the target file path.
func (s *FileSink) Path() string {
	return s.path
}

// Emit replaces the file contents with payload. The new contents are written
// to a temporary file in the same directory and renamed into place, so a
// reader polling the file sees either the old or the new value.
func (s *FileSink) Emit(payload string) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", s.path, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open between emissions.
func (s *FileSink) Close() error {
	return nil
}
