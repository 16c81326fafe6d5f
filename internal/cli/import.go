package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/services"
)

// ImportCommand imports an export document from a file or a URL.
type ImportCommand struct {
	commonFlags
	FilePath string
	URL      string

	Out io.Writer
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to an export document")
	fs.StringVar(&cmd.URL, "url", "", "URL of an export document")
	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import (-file <path> | -url <url>) [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import environments from an export document.\n\n")
		fmt.Fprintf(os.Stderr, "Environments stamped with a newer schema are skipped. The last\n")
		fmt.Fprintf(os.Stderr, "imported environment becomes the active one.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file ./environment.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -url https://example.com/environment.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if (cmd.FilePath == "") == (cmd.URL == "") {
		return fmt.Errorf("exactly one of -file or -url is required")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	sess, err := openSession(cmd.commonFlags, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := commandContext()
	defer cancel()

	var outcomes []services.ItemOutcome
	if cmd.URL != "" {
		fmt.Fprintf(out, "Importing from %s\n", cmd.URL)
		outcomes, err = sess.service.ImportFromURL(ctx, cmd.URL)
	} else {
		fmt.Fprintf(out, "Importing from %s\n", cmd.FilePath)
		outcomes, err = sess.service.ImportFile(ctx, dialogs.Preset{OpenPath: cmd.FilePath})
	}
	if err != nil {
		return err
	}

	printOutcomes(out, outcomes, cmd.Verbose)
	return nil
}

func printOutcomes(out io.Writer, outcomes []services.ItemOutcome, verbose bool) {
	if len(outcomes) == 0 {
		fmt.Fprintln(out, "Nothing to import: the document is not an export document")
		return
	}

	if verbose {
		fmt.Fprintln(out, "\n=== Items ===")
		for _, o := range outcomes {
			name := o.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(out, "%d. %s %q %s [%s]\n", o.Index+1, o.Type, name, o.UUID, o.Status)
		}
	}

	summary := services.Summarize(outcomes)
	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Imported: %d\n", summary.Committed+summary.Repaired)
	if summary.Repaired > 0 {
		fmt.Fprintf(out, "Repaired: %d\n", summary.Repaired)
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(out, "Skipped (newer schema): %d\n", summary.Skipped)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(out, "Failed: %d\n", summary.Failed)
	}
}
