// Package settingsstore resolves runtime settings that can be changed through
// the API. Priority: database > configuration (environment) > default.
package settingsstore

import (
	"context"
	"log/slog"

	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/database/settings"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
)

type SettingsStore struct {
	repo     *settings.Repository
	defaults config.RemoteSync
}

func New(repo *settings.Repository, defaults config.RemoteSync) *SettingsStore {
	return &SettingsStore{repo: repo, defaults: defaults}
}

// lookup returns the database override for key and its source.
func (s *SettingsStore) lookup(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.repo.Lookup(ctx, key)
	if err != nil {
		slog.Warn("failed to read setting", "key", key, "error", err)
		return "", false
	}
	return value, ok && value != ""
}

func sourceOf(overridden bool) string {
	if overridden {
		return SourceDatabase
	}
	return SourceEnvironment
}
