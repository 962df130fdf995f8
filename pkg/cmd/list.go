package cmd

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/testground/paramcase/pkg/paramcase"
)

// ListCommand is the specification of the `list` command.
var ListCommand = cli.Command{
	Name:      "list",
	Usage:     "list the test case names generated from descriptor files",
	ArgsUsage: "<file or glob>...",
	Flags:     []cli.Flag{nameFlag},
	Action:    listCommand,
}

func listCommand(c *cli.Context) error {
	files, err := resolveFiles(c.Args().Slice(), c.String("name"))
	if err != nil {
		return err
	}
	return writeList(c.App.Writer, files)
}

func writeList(w io.Writer, files []*resolved) error {
	for _, f := range files {
		for i := range f.seq {
			if _, err := fmt.Fprintln(w, paramcase.CaseName(f.name, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
