// Package environments persists environment documents and tracks which one is active.
//
// This package implements the EnvironmentStore interface defined in
// internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.EnvironmentStore = (*Repository)(nil)
//
// # Usage
//
//	repo := environments.NewRepository(db)
//	stored, err := repo.AddEnvironment(ctx, env)
package environments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/services"
)

var _ services.EnvironmentStore = (*Repository)(nil)

var ErrEnvironmentNotFound = errors.New("environment not found")

// Repository handles environment documents and the active environment setting.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new environments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the stored environments without their documents, oldest first.
func (r *Repository) List(ctx context.Context) ([]entities.EnvironmentRecord, error) {
	var records []entities.EnvironmentRecord
	err := r.db.WithContext(ctx).Omit("document").Order("id ASC").Find(&records).Error
	return records, err
}

// Count returns the number of stored environments.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.EnvironmentRecord{}).Count(&count).Error
	return count, err
}

// Get loads the environment with the given UUID. Returns ErrEnvironmentNotFound when absent.
func (r *Repository) Get(ctx context.Context, envUUID string) (*entities.Environment, error) {
	record, err := r.getRecord(r.db.WithContext(ctx), envUUID)
	if err != nil {
		return nil, err
	}
	return decodeRecord(record)
}

// GetActiveEnvironment returns the active environment, or nil when none is set
// or the active one no longer exists.
func (r *Repository) GetActiveEnvironment(ctx context.Context) (*entities.Environment, error) {
	activeUUID, err := r.activeUUID(r.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if activeUUID == "" {
		return nil, nil
	}

	env, err := r.Get(ctx, activeUUID)
	if errors.Is(err, ErrEnvironmentNotFound) {
		return nil, nil
	}
	return env, err
}

// SetActive marks an existing environment as active.
func (r *Repository) SetActive(ctx context.Context, envUUID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.getRecord(tx, envUUID); err != nil {
			return err
		}
		return setActive(tx, envUUID)
	})
}

// AddEnvironment stores env and makes it the active environment.
//
// If an environment with the same UUID is already stored, the environment,
// its routes and their responses get fresh UUIDs. The caller's value is not
// modified; the stored copy is returned.
func (r *Repository) AddEnvironment(ctx context.Context, env *entities.Environment) (*entities.Environment, error) {
	if env == nil {
		return nil, errors.New("environment is nil")
	}
	stored, err := clone(env)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := r.exists(tx, stored.UUID)
		if err != nil {
			return err
		}
		if exists || stored.UUID == "" {
			renewEnvironmentUUIDs(stored)
		}

		record, err := encodeRecord(stored)
		if err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to save environment %s: %w", stored.UUID, err)
		}
		return setActive(tx, stored.UUID)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// AddRoute appends route to the environment envUUID. The route and its
// responses always get fresh UUIDs, so the same route can be pasted twice.
func (r *Repository) AddRoute(ctx context.Context, envUUID string, route entities.Route) (*entities.Route, error) {
	added := route
	added.Responses = append([]entities.RouteResponse(nil), route.Responses...)
	renewRouteUUIDs(&added)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := r.getRecord(tx, envUUID)
		if err != nil {
			return err
		}
		env, err := decodeRecord(record)
		if err != nil {
			return err
		}

		env.Routes = append(env.Routes, added)
		updated, err := encodeRecord(env)
		if err != nil {
			return err
		}
		return tx.Model(record).Updates(map[string]any{
			"document": updated.Document,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (r *Repository) getRecord(db *gorm.DB, envUUID string) (*entities.EnvironmentRecord, error) {
	var record entities.EnvironmentRecord
	err := db.Where("uuid = ?", envUUID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEnvironmentNotFound, envUUID)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) exists(db *gorm.DB, envUUID string) (bool, error) {
	var count int64
	err := db.Model(&entities.EnvironmentRecord{}).Where("uuid = ?", envUUID).Count(&count).Error
	return count > 0, err
}

func (r *Repository) activeUUID(db *gorm.DB) (string, error) {
	var setting entities.Setting
	err := db.Where("key = ?", entities.SettingKeyActiveEnvironment).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func setActive(db *gorm.DB, envUUID string) error {
	setting := entities.Setting{Key: entities.SettingKeyActiveEnvironment, Value: envUUID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

func encodeRecord(env *entities.Environment) (*entities.EnvironmentRecord, error) {
	doc, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode environment %s: %w", env.UUID, err)
	}
	return &entities.EnvironmentRecord{
		UUID:          env.UUID,
		Name:          env.Name,
		LastMigration: env.LastMigration,
		Port:          env.Port,
		Document:      string(doc),
	}, nil
}

func decodeRecord(record *entities.EnvironmentRecord) (*entities.Environment, error) {
	var env entities.Environment
	if err := json.Unmarshal([]byte(record.Document), &env); err != nil {
		return nil, fmt.Errorf("failed to decode environment %s: %w", record.UUID, err)
	}
	return &env, nil
}

func clone(env *entities.Environment) (*entities.Environment, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	var copied entities.Environment
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}

func renewEnvironmentUUIDs(env *entities.Environment) {
	env.UUID = uuid.NewString()
	for i := range env.Routes {
		renewRouteUUIDs(&env.Routes[i])
	}
}

func renewRouteUUIDs(route *entities.Route) {
	route.UUID = uuid.NewString()
	for i := range route.Responses {
		route.Responses[i].UUID = uuid.NewString()
	}
}
