package command

import (
	"fmt"
	"strings"
)

// VersionCommand is a Command implementation that prints the version.
type VersionCommand struct {
	Meta

	Version           string
	VersionPrerelease string
}

func (c *VersionCommand) Run(args []string) int {
	var versionString strings.Builder

	fmt.Fprintf(&versionString, "terraform-module-check v%s", c.Version)
	if c.VersionPrerelease != "" {
		fmt.Fprintf(&versionString, "-%s", c.VersionPrerelease)
	}

	c.Ui.Output(versionString.String())
	return 0
}

func (c *VersionCommand) Help() string {
	return "Usage: terraform-module-check version"
}

func (c *VersionCommand) Synopsis() string {
	return "Print the terraform-module-check version"
}
