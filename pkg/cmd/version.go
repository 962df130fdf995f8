package cmd

import (
	"fmt"

	"github.com/testground/paramcase/pkg/version"
	"github.com/urfave/cli/v2"
)

var VersionCommand = cli.Command{
	Name:   "version",
	Usage:  "print version numbers",
	Action: versionCommand,
}

func versionCommand(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintln(w, "paramcase")
	if len(version.GitCommit) < 8 {
		fmt.Fprintln(w, "Git commit: dirty")
		return nil
	}
	fmt.Fprintln(w, "Git commit:", version.GitCommit[:8])
	return nil
}
