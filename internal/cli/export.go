package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/exporters"
	"github.com/mrlokans/envport/internal/utils"
)

// ExportCommand writes the active environment, or the one selected with -env,
// to a file.
type ExportCommand struct {
	commonFlags
	OutputPath      string
	OutputDir       string
	Format          string
	EnvironmentUUID string

	format exporters.Format
	Out    io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.OutputPath, "out", "", "Output file path (default: <dir>/<environment name>.json)")
	fs.StringVar(&cmd.OutputDir, "dir", ".", "Directory for the default output file")
	fs.StringVar(&cmd.Format, "format", "native", "Export format: native or openapi")
	fs.StringVar(&cmd.EnvironmentUUID, "env", "", "Environment to export; becomes the active environment")
	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the active environment as a native export document or as\n")
		fmt.Fprintf(os.Stderr, "OpenAPI v3 JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -dir ./exports\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -out ./environment.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -out ./openapi.json -format openapi\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	cmd.format = format
	return nil
}

func (cmd *ExportCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	sess, err := openSession(cmd.commonFlags, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := commandContext()
	defer cancel()

	if cmd.EnvironmentUUID != "" {
		if err := sess.store.SetActive(ctx, cmd.EnvironmentUUID); err != nil {
			return err
		}
	}

	outputPath := cmd.OutputPath
	if outputPath == "" {
		active, err := sess.store.GetActiveEnvironment(ctx)
		if err != nil {
			return err
		}
		if active == nil {
			return errors.New("no active environment to export")
		}
		name := utils.ExportFilename(active.Name, cmd.format == exporters.FormatOpenAPIV3)
		outputPath = filepath.Join(cmd.OutputDir, name)
	}

	preset := dialogs.Preset{SavePath: outputPath}
	var outcome exporters.ExportOutcome
	if cmd.format == exporters.FormatOpenAPIV3 {
		outcome, err = sess.service.ExportOpenAPIFile(ctx, preset)
	} else {
		outcome, err = sess.service.ExportFile(ctx, preset)
	}
	if err != nil {
		return err
	}

	if outcome.Status == exporters.StatusNoActive {
		return errors.New("no active environment to export")
	}
	fmt.Fprintf(out, "Exported %s to %s\n", outcome.EnvironmentUUID, outcome.Path)
	return nil
}
