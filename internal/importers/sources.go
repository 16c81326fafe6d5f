package importers

import (
	"context"
	"errors"

	"github.com/mrlokans/envport/internal/messages"
	"github.com/mrlokans/envport/internal/services"
)

// ErrEmptyClipboard is returned when there is nothing to import from the clipboard.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// Source produces the raw bytes of an import.
//
// Implementations:
//   - URLSource - remote document fetched over HTTP
//   - FileSource - local file
//   - ClipboardSource - clipboard text
//   - BytesSource - bytes already in memory (HTTP uploads, queued tasks)
type Source interface {
	Acquire(ctx context.Context) ([]byte, error)
	// FailureNotice returns the notification reporting an Acquire error.
	FailureNotice(err error) (messages.Code, messages.Params)
}

type URLSource struct {
	Fetcher services.Fetcher
	URL     string
}

func (s URLSource) Acquire(ctx context.Context) ([]byte, error) {
	body, err := s.Fetcher.Get(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s URLSource) FailureNotice(err error) (messages.Code, messages.Params) {
	return messages.ImportFromURLError, messages.Params{URL: s.URL, Error: err}
}

type FileSource struct {
	Files services.FileStore
	Path  string
}

func (s FileSource) Acquire(_ context.Context) ([]byte, error) {
	return s.Files.ReadFile(s.Path)
}

func (s FileSource) FailureNotice(err error) (messages.Code, messages.Params) {
	return messages.ImportFromFileError, messages.Params{FilePath: s.Path, Error: err}
}

type ClipboardSource struct {
	Clipboard services.Clipboard
}

func (s ClipboardSource) Acquire(ctx context.Context) ([]byte, error) {
	text, err := s.Clipboard.ReadText(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyClipboard
	}
	return []byte(text), nil
}

func (s ClipboardSource) FailureNotice(err error) (messages.Code, messages.Params) {
	return messages.NewEnvironmentClipboardError, messages.Params{Error: err}
}

type BytesSource []byte

func (s BytesSource) Acquire(_ context.Context) ([]byte, error) {
	return s, nil
}

func (s BytesSource) FailureNotice(err error) (messages.Code, messages.Params) {
	return messages.ImportParseError, messages.Params{Error: err}
}
