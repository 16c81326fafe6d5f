package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/envport/internal/dialogs"
)

// ImportOpenAPICommand converts an OpenAPI/Swagger specification into an environment.
type ImportOpenAPICommand struct {
	commonFlags
	FilePath string

	Out io.Writer
}

func NewImportOpenAPICommand() *ImportOpenAPICommand {
	return &ImportOpenAPICommand{}
}

func (cmd *ImportOpenAPICommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-openapi", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a Swagger 2.0 or OpenAPI 3.x file, JSON or YAML (required)")
	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-openapi -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an environment from an OpenAPI specification.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportOpenAPICommand) Run() error {
	out := outputOrStdout(cmd.Out)

	sess, err := openSession(cmd.commonFlags, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := commandContext()
	defer cancel()

	env, err := sess.service.ImportOpenAPIFile(ctx, dialogs.Preset{OpenPath: cmd.FilePath})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created environment %q (%s) with %d route(s)\n", env.Name, env.UUID, len(env.Routes))
	return nil
}
