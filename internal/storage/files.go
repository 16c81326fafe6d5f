package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	Name       string
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// Files reads and writes whole files on an afero filesystem.
// Production code uses the OS filesystem; tests use afero.NewMemMapFs().
type Files struct {
	fs afero.Fs
}

func NewFiles(fs afero.Fs) *Files {
	return &Files{fs: fs}
}

// NewOSFiles returns Files backed by the local filesystem.
func NewOSFiles() *Files {
	return NewFiles(afero.NewOsFs())
}

func (f *Files) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func (f *Files) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(f.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (f *Files) Remove(path string) error {
	if err := f.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func (f *Files) Exists(path string) (bool, error) {
	return afero.Exists(f.fs, path)
}

// List returns the regular files directly inside dir whose name ends with ext.
// An empty ext matches every file.
func (f *Files) List(dir, ext string) ([]FileInfo, error) {
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(entry.Name()) != ext {
			continue
		}
		files = append(files, FileInfo{
			Name:       entry.Name(),
			Path:       filepath.Join(dir, entry.Name()),
			Size:       entry.Size(),
			ModifiedAt: entry.ModTime(),
		})
	}
	return files, nil
}

// IsNotExist reports whether err means the file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
