// Package clipboard provides the text clipboards used by the import/export
// entry points: an in-process clipboard for the HTTP server and a file-backed
// one shared between CLI invocations.
package clipboard

import (
	"context"
	"sync"

	"github.com/mrlokans/envport/internal/services"
	"github.com/mrlokans/envport/internal/storage"
)

var (
	_ services.Clipboard = (*Memory)(nil)
	_ services.Clipboard = (*File)(nil)
)

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.RWMutex
	text string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadText(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text, nil
}

func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// File keeps the clipboard in a single file. A missing file reads as empty.
type File struct {
	files *storage.Files
	path  string
}

func NewFile(files *storage.Files, path string) *File {
	return &File{files: files, path: path}
}

func (f *File) ReadText(_ context.Context) (string, error) {
	data, err := f.files.ReadFile(f.path)
	if storage.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *File) WriteText(_ context.Context, text string) error {
	return f.files.WriteFile(f.path, []byte(text))
}
