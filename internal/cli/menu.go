package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/mrlokans/envport/internal/dialogs"
	"github.com/mrlokans/envport/internal/importexport"
)

// MenuCommand triggers a menu action by identifier. -open and -save answer
// the dialogs the action opens.
type MenuCommand struct {
	commonFlags
	ID       string
	OpenPath string
	SavePath string

	Out io.Writer
}

func NewMenuCommand() *MenuCommand {
	return &MenuCommand{}
}

func (cmd *MenuCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)

	fs.StringVar(&cmd.ID, "id", "", "Menu action identifier (required)")
	fs.StringVar(&cmd.OpenPath, "open", "", "Answer to an open dialog; empty cancels it")
	fs.StringVar(&cmd.SavePath, "save", "", "Answer to a save dialog; empty cancels it")
	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s menu -id <ID> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run an import/export menu action.\n\n")
		fmt.Fprintf(os.Stderr, "Actions:\n")
		for _, id := range importexport.MenuIDs() {
			fmt.Fprintf(os.Stderr, "  %s\n", id)
		}
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	if !slices.Contains(importexport.MenuIDs(), importexport.MenuID(cmd.ID)) {
		return fmt.Errorf("%w: %q", importexport.ErrUnknownMenuID, cmd.ID)
	}
	return nil
}

func (cmd *MenuCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	sess, err := openSession(cmd.commonFlags, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := commandContext()
	defer cancel()

	return sess.service.Trigger(ctx, importexport.MenuID(cmd.ID), dialogs.Preset{
		OpenPath: cmd.OpenPath,
		SavePath: cmd.SavePath,
	})
}
