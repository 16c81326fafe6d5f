package config

// Version is stamped on native export documents as "mockoon:<Version>".
const Version = "1.0.0"

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the environments database
	DefaultDatabasePath = "./envport.db"

	// DefaultTasksDatabasePath is the default path for the task queue database
	DefaultTasksDatabasePath = "./envport-tasks.db"

	// DefaultClipboardPath is the clipboard file used by the CLI
	DefaultClipboardPath = "./envport-clipboard.txt"
)
