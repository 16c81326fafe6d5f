// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── environments/    # Environment documents, active environment
//	├── settings/        # Key/value settings
//	└── audit/           # Import/export operation trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./envport.db")
//
//	settingsRepo := settings.NewRepository(db.DB)
//	envRepo := environments.NewRepository(db.DB, settingsRepo)
//
//	active, err := envRepo.GetActiveEnvironment(ctx)
//
// # Interface Implementations
//
//   - environments.Repository: implements services.EnvironmentStore
//   - audit.Repository: event storage behind audit.Service
package database
