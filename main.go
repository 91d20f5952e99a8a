package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
	colorable "github.com/mattn/go-colorable"

	"github.com/hashicorp/terraform-module-check/internal/command"
	"github.com/hashicorp/terraform-module-check/internal/logging"
	"github.com/hashicorp/terraform-module-check/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	log := logging.NewLogger()
	log.Debug("starting", "version", version.String())

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      colorable.NewColorableStdout(),
		ErrorWriter: colorable.NewColorableStderr(),
	}

	// Commands still accept -no-color individually; NO_COLOR is the blunt
	// instrument for scripts and CI.
	color := os.Getenv("NO_COLOR") == ""

	meta := command.Meta{
		Ui:    ui,
		Color: color,
		Log:   log,
	}

	binName := "terraform-module-check"
	c := &cli.CLI{
		Name:         binName,
		Version:      version.String(),
		Args:         os.Args[1:],
		Commands:     initCommands(meta),
		HelpFunc:     cli.BasicHelpFunc(binName),
		Autocomplete: true,
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err)
		return 1
	}

	return exitStatus
}
