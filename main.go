package main

import (
	"fmt"
	"os"

	"github.com/testground/paramcase/pkg/cmd"
	"github.com/testground/paramcase/pkg/logging"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

func main() {
	app := cli.NewApp()
	app.Name = "paramcase"
	app.Usage = "inspect the test cases generated from parameter descriptor files"
	app.Description = "paramcase normalizes parameter descriptor files and lists the " +
		"test cases a parametrized template generates from them."
	app.Commands = cmd.RootCommands
	app.Flags = cmd.RootFlags
	// Disable the built-in -v flag (version), to avoid collisions with the
	// verbosity flags.
	app.HideVersion = true
	app.Before = configureLogging

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func configureLogging(c *cli.Context) error {
	logging.ConsoleMode()

	// The LOG_LEVEL environment variable takes precedence.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		logging.SetLevel(l)
		return nil
	}

	// Apply verbosity flags.
	switch {
	case c.Bool("vv"):
		logging.SetLevel(zapcore.DebugLevel)
	case c.Bool("v"):
		logging.SetLevel(zapcore.InfoLevel)
	default:
		// Do nothing; level remains at default (WARN).
	}
	return nil
}
