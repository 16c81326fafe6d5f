package audit

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/envport/internal/storage"
)

// Snapshotter keeps a copy of every raw payload handed to the import
// pipeline, one file per payload, named by a random UUID.
type Snapshotter struct {
	files *storage.Files
	dir   string
}

func NewSnapshotter(files *storage.Files, dir string) *Snapshotter {
	return &Snapshotter{files: files, dir: dir}
}

// Save writes data under the snapshot directory and returns the file name.
func (s *Snapshotter) Save(data []byte) (string, error) {
	filename := uuid.NewString() + ".json"
	if err := s.files.WriteFile(filepath.Join(s.dir, filename), data); err != nil {
		return "", fmt.Errorf("failed to save import snapshot: %w", err)
	}
	return filename, nil
}

// List returns saved snapshots, newest first. A missing directory means none.
func (s *Snapshotter) List() ([]storage.FileInfo, error) {
	exists, err := s.files.Exists(s.dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	snapshots, err := s.files.List(s.dir, ".json")
	if err != nil {
		return nil, err
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ModifiedAt.After(snapshots[j].ModifiedAt)
	})
	return snapshots, nil
}

// Prune removes snapshots last modified before olderThan and returns how many
// were removed.
func (s *Snapshotter) Prune(olderThan time.Time) (int, error) {
	snapshots, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, snapshot := range snapshots {
		if !snapshot.ModifiedAt.Before(olderThan) {
			continue
		}
		if err := s.files.Remove(snapshot.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
