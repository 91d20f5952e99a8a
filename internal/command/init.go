package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/posener/complete"

	"github.com/hashicorp/terraform-module-check/internal/genconfig"
)

// InitCommand is a Command implementation that scaffolds a new
// container-registry module into a directory.
type InitCommand struct {
	Meta
}

func (c *InitCommand) Run(args []string) int {
	var resourceType string
	var force, noColor bool

	cmdFlags := c.Meta.defaultFlagSet("init")
	cmdFlags.StringVar(&resourceType, "resource-type", "", "resource-type")
	cmdFlags.BoolVar(&force, "force", false, "force")
	cmdFlags.BoolVar(&noColor, "no-color", false, "no-color")
	cmdFlags.Usage = func() { c.Ui.Error(c.Help()) }
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}
	if noColor {
		c.Meta.Color = false
	}

	dir, err := modulePath(cmdFlags.Args())
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	files := genconfig.ContainerRegistryModule(genconfig.Params{
		ResourceType: resourceType,
	})

	// Refuse to clobber existing work unless asked to.
	if !force {
		for _, file := range files {
			path := filepath.Join(dir, file.Path)
			if _, err := os.Stat(path); err == nil {
				c.Ui.Error(fmt.Sprintf(
					"The file %s already exists. Use -force to overwrite the existing module files.",
					path,
				))
				return 1
			}
		}
	}

	for _, file := range files {
		path := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			c.Ui.Error(fmt.Sprintf("Failed to create directory for %s: %s.", path, err))
			return 1
		}
		if err := os.WriteFile(path, file.Content, 0644); err != nil {
			c.Ui.Error(fmt.Sprintf("Failed to write %s: %s.", path, err))
			return 1
		}
		c.Log.Debug("wrote module file", "path", path)
		c.Ui.Output(fmt.Sprintf("Created %s", path))
	}

	c.Ui.Output(c.Colorize().Color(
		"\n[bold]Module scaffolding complete.[reset] Adjust the generated files to taste,\n" +
			"then run \"terraform-module-check validate\" to confirm the module is sound.",
	))

	return 0
}

func (c *InitCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *InitCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-resource-type": complete.PredictAnything,
		"-force":         complete.PredictNothing,
		"-no-color":      complete.PredictNothing,
	}
}

func (c *InitCommand) Help() string {
	helpText := `
Usage: terraform-module-check init [options] [DIR]

  Scaffolds a new container-registry module in DIR (or the current
  directory): the resource declaration, its input variables and output
  values, an example caller, and a README documenting the interface. The
  generated module passes validation as-is.

Options:

  -resource-type=type   The provider resource type to declare. Defaults to
                        aws_ecr_repository.

  -force                Overwrite files that already exist.

  -no-color             Disable text coloring in the output.

`
	return strings.TrimSpace(helpText)
}

func (c *InitCommand) Synopsis() string {
	return "Scaffold a new container-registry module"
}
