package command

import (
	"fmt"
	"strings"

	"github.com/posener/complete"

	"github.com/hashicorp/terraform-module-check/internal/command/format"
	"github.com/hashicorp/terraform-module-check/internal/configschema"
	"github.com/hashicorp/terraform-module-check/internal/modconfig"
)

// ValidateCommand is a Command implementation that loads a registry module
// from a directory and checks it against its resource schema.
type ValidateCommand struct {
	Meta
}

func (c *ValidateCommand) Run(args []string) int {
	var jsonOutput, noColor bool

	cmdFlags := c.Meta.defaultFlagSet("validate")
	cmdFlags.BoolVar(&jsonOutput, "json", false, "json")
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

	c.Log.Debug("loading module", "dir", dir)

	parser := modconfig.NewParser(nil)
	mod, loadDiags := parser.LoadModule(dir)
	if mod == nil || loadDiags.HasErrors() {
		c.showDiagnostics(parser.Sources(), loadDiags)
		return 1
	}
	if len(loadDiags) > 0 {
		// Parser warnings don't block validation.
		c.showDiagnostics(parser.Sources(), loadDiags)
	}

	schema := configschema.BuiltinResource(mod.ResourceKind)
	if schema == nil {
		// The parser rejects unknown resource types, so this indicates a
		// bug rather than a user error.
		c.Ui.Error(fmt.Sprintf("No schema is available for resource kind %q.", mod.ResourceKind))
		return 1
	}

	c.Log.Debug("validating module",
		"kind", mod.ResourceKind,
		"variables", len(mod.Variables),
		"outputs", len(mod.Outputs),
	)

	diags := mod.Validate(schema)

	if jsonOutput {
		report, err := format.ValidationReportJSON(diags)
		if err != nil {
			c.Ui.Error(fmt.Sprintf("Failed to render report: %s.", err))
			return 1
		}
		c.Ui.Output(string(report))
		if diags.HasErrors() {
			return 1
		}
		return 0
	}

	if !diags.HasErrors() {
		c.Ui.Output("OK")
		return 0
	}

	for _, line := range format.ValidationReport(diags) {
		c.Ui.Error(line)
	}
	return 1
}

func (c *ValidateCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *ValidateCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-json":     complete.PredictNothing,
		"-no-color": complete.PredictNothing,
	}
}

func (c *ValidateCommand) Help() string {
	helpText := `
Usage: terraform-module-check validate [options] [DIR]

  Checks the registry module in DIR (or the current directory) against the
  schema of the resource it provisions: every output must read an attribute
  the resource exposes, defaults must conform to their variables' types, all
  names must be unique, and example usage may only reference declared
  variables.

  All problems found are reported together, one per line, and the command
  exits with status 1 if there are any. On a clean module it prints "OK".

Options:

  -json               Produce the report in JSON format.

  -no-color           Disable text coloring in the output.

`
	return strings.TrimSpace(helpText)
}

func (c *ValidateCommand) Synopsis() string {
	return "Check a registry module against its resource schema"
}

// modulePath interprets the positional arguments shared by the commands
// that operate on a module directory.
func modulePath(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("Too many command line arguments. Expected at most one positional argument, the module directory.")
	}
	if len(args) == 0 {
		return ".", nil
	}
	return args[0], nil
}
