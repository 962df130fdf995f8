package cmd

import "github.com/urfave/cli/v2"

// RootCommands collects all subcommands of the paramcase CLI.
var RootCommands = cli.Commands{
	&DescribeCommand,
	&ListCommand,
	&VersionCommand,
}

var RootFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "v",
		Usage: "verbose output (equivalent to INFO log level)",
	},
	&cli.BoolFlag{
		Name:  "vv",
		Usage: "super verbose output (equivalent to DEBUG log level)",
	},
}

var nameFlag = &cli.StringFlag{
	Name:  "name",
	Usage: "template name used to derive test case names (overrides the file's name)",
}
