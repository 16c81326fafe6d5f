package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/envport/internal/cli"
	"github.com/mrlokans/envport/internal/config"
	"github.com/mrlokans/envport/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func newCommand(name string) command {
	switch name {
	case "import":
		return cli.NewImportCommand()
	case "import-openapi":
		return cli.NewImportOpenAPICommand()
	case "export":
		return cli.NewExportCommand()
	case "menu":
		return cli.NewMenuCommand()
	case "list":
		return cli.NewListCommand()
	}
	return nil
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return
	}
	if name == "version" {
		fmt.Printf("envport %s (%s)\n", Version, Commit)
		return
	}

	cmd := newCommand(name)
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import          Import environments from an export document file or URL\n")
	fmt.Fprintf(os.Stderr, "  import-openapi  Create an environment from an OpenAPI/Swagger file\n")
	fmt.Fprintf(os.Stderr, "  export          Export the active environment (native or OpenAPI)\n")
	fmt.Fprintf(os.Stderr, "  menu            Run an import/export menu action by identifier\n")
	fmt.Fprintf(os.Stderr, "  list            List stored environments\n")
	fmt.Fprintf(os.Stderr, "  version         Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
