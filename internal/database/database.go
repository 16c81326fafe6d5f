package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/envport/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite database at dbPath and migrates every table.
// Pass ":memory:" for a throwaway database.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite allows a single writer; one connection also keeps :memory:
	// databases shared between queries.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entities.EnvironmentRecord{},
		&entities.Setting{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database initialized", "path", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
