package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/i474232898/space-data-console/internal/space"
)

var (
	// ErrNotFound is returned when an endpoint has no log file yet.
	ErrNotFound = fmt.Errorf("log %w", space.ErrLookup)
	// ErrInvalidName is returned for storage names that would escape the log directory.
	ErrInvalidName = errors.New("invalid log file name")
)

// FileLog keeps one append-only text file per endpoint inside dir.
// Entries are never rewritten or removed.
type FileLog struct {
	dir  string
	perm fs.FileMode
}

// NewFileLog creates a FileLog rooted at dir. The directory is created on
// the first append, not here.
func NewFileLog(dir string) *FileLog {
	return &FileLog{
		dir:  dir,
		perm: 0o644,
	}
}

// Dir returns the directory holding the logs.
func (s *FileLog) Dir() string {
	return s.dir
}

// Append writes text plus a newline at the end of the named log, creating it
// if absent. The file is closed on every return path.
func (s *FileLog) Append(name, text string) (err error) {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", space.ErrPersistence, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, s.perm)
	if err != nil {
		return fmt.Errorf("%w: %v", space.ErrPersistence, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", space.ErrPersistence, cerr)
		}
	}()

	if _, err := f.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("%w: %v", space.ErrPersistence, err)
	}
	return nil
}

// ReadAll returns every entry of the named log in append order.
func (s *FileLog) ReadAll(name string) ([]string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", space.ErrPersistence, err)
	}

	if len(data) == 0 {
		return []string{}, nil
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func (s *FileLog) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %w: %q", space.ErrPersistence, ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
