package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/logrusorgru/aurora"
	"github.com/mitchellh/go-wordwrap"
	"github.com/urfave/cli/v2"

	"github.com/testground/paramcase/pkg/logging"
	"github.com/testground/paramcase/pkg/paramcase"
	"github.com/testground/paramcase/pkg/params"
)

// DescribeCommand is the specification of the `describe` command.
var DescribeCommand = cli.Command{
	Name:        "describe",
	Usage:       "describe the test cases generated from descriptor files",
	ArgsUsage:   "<file or glob>...",
	Description: "This command loads every descriptor file, normalizes its parameters, and explains which test cases a template parametrized with them would generate.",
	Flags: []cli.Flag{
		nameFlag,
		&cli.BoolFlag{
			Name:  "color",
			Usage: "force coloured output even when stdout is not a terminal",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable coloured output",
		},
	},
	Action: describeCommand,
}

func describeCommand(c *cli.Context) error {
	files, err := resolveFiles(c.Args().Slice(), c.String("name"))
	if err != nil {
		return err
	}

	colors := !c.Bool("no-color") && (c.Bool("color") || logging.IsTerminal())
	au := aurora.NewAurora(colors)
	for _, f := range files {
		describe(c.App.Writer, au, f)
	}
	return nil
}

func describe(w io.Writer, au aurora.Aurora, f *resolved) {
	p := func(w io.Writer, f string, a ...interface{}) {
		s := wordwrap.WrapString(fmt.Sprintf(f, a...), 120)
		_, _ = fmt.Fprintln(w, s)
		_, _ = fmt.Fprintln(w)
	}

	p(w, "Descriptor file %s parametrizes template %s.", au.Bold(f.path), au.Cyan(f.name))
	p(w, "It generates %d test cases; %s itself is disabled.", len(f.seq), f.name)

	tw := tabwriter.NewWriter(w, 1, 0, 1, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintf(tw, "    %s\t %s\t %s\n", "NAME", "ARGS", "KWARGS")
	for i, s := range f.seq {
		_, _ = fmt.Fprintf(tw, "    %s\t %s\t %s\n", au.Green(paramcase.CaseName(f.name, i)), positional(s), keywords(s))
	}
	tw.Flush()

	_, _ = fmt.Fprintln(w)
}

func positional(s params.Set) string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = fmt.Sprintf("%#v", a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func keywords(s params.Set) string {
	keys := s.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %#v", k, s.Kwargs[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
