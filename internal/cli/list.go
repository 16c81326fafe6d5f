package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// ListCommand prints the stored environments. The active one is starred.
type ListCommand struct {
	commonFlags

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	sess, err := openSession(cmd.commonFlags, out)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := commandContext()
	defer cancel()

	records, err := sess.store.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No environments")
		return nil
	}

	active, err := sess.store.GetActiveEnvironment(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		marker := " "
		if active != nil && active.UUID == r.UUID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s  %-30s port %d  schema %d\n", marker, r.UUID, r.Name, r.Port, r.LastMigration)
	}
	return nil
}
