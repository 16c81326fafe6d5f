// Package cli implements the command line subcommands. Each command parses
// its own flag set and runs one import/export entry point against the local
// database, printing toasts to stdout.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mrlokans/envport/internal/audit"
	"github.com/mrlokans/envport/internal/clipboard"
	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/database"
	auditrepo "github.com/mrlokans/envport/internal/database/audit"
	"github.com/mrlokans/envport/internal/database/environments"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/fetch"
	"github.com/mrlokans/envport/internal/importexport"
	"github.com/mrlokans/envport/internal/logging"
	"github.com/mrlokans/envport/internal/notify"
	"github.com/mrlokans/envport/internal/openapi"
	"github.com/mrlokans/envport/internal/storage"
)

// commonFlags are shared by every command.
type commonFlags struct {
	DatabasePath  string
	ClipboardPath string
	Verbose       bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.DatabasePath, "db", config.DefaultDatabasePath, "Path to the environments database")
	fs.StringVar(&f.ClipboardPath, "clipboard", config.DefaultClipboardPath, "Path to the clipboard file")
	fs.BoolVar(&f.Verbose, "verbose", false, "Enable verbose logging")
}

// session holds the collaborators of one command run.
type session struct {
	db      *database.Database
	store   *environments.Repository
	audit   *audit.Service
	service *importexport.Service
}

func openSession(flags commonFlags, out io.Writer) (*session, error) {
	dbPath, err := filepath.Abs(flags.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	level := "warn"
	if flags.Verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, "text", config.Version)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	files := storage.NewOSFiles()
	store := environments.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB), logger)

	service := importexport.NewService(importexport.Deps{
		Store:      store,
		Converter:  openapi.NewConverter(files),
		Files:      files,
		Clipboard:  clipboard.NewFile(files, flags.ClipboardPath),
		Fetcher:    fetch.NewClient(fetch.DefaultTimeout),
		Notifier:   notify.NewDispatcher(logger, notify.NewWriterSink(out)),
		Serializer: exporters.NativeSerializer{Version: config.Version},
		Auditor:    auditService,
		Logger:     logger,
	})

	return &session{
		db:      db,
		store:   store,
		audit:   auditService,
		service: service,
	}, nil
}

// Close waits for pending audit writes and closes the database.
func (s *session) Close() error {
	s.audit.Wait()
	return s.db.Close()
}

// commandContext is cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
