package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/posener/complete"
	"github.com/zclconf/go-cty/cty"

	"github.com/hashicorp/terraform-module-check/internal/modconfig"
)

// ShowCommand is a Command implementation that loads a registry module and
// prints a summary of its interface: the resource it provisions, its input
// variables, and its output values.
type ShowCommand struct {
	Meta
}

func (c *ShowCommand) Run(args []string) int {
	var jsonOutput, noColor bool

	cmdFlags := c.Meta.defaultFlagSet("show")
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

	parser := modconfig.NewParser(nil)
	mod, loadDiags := parser.LoadModule(dir)
	if mod == nil || loadDiags.HasErrors() {
		c.showDiagnostics(parser.Sources(), loadDiags)
		return 1
	}

	if jsonOutput {
		out, err := json.MarshalIndent(jsonModule(mod), "", "  ")
		if err != nil {
			c.Ui.Error(fmt.Sprintf("Failed to render module: %s.", err))
			return 1
		}
		c.Ui.Output(string(out))
		return 0
	}

	c.Ui.Output(c.formatModule(mod))
	return 0
}

func (c *ShowCommand) formatModule(mod *modconfig.Module) string {
	color := c.Colorize()
	var buf strings.Builder

	if mod.ManagedResource != nil {
		fmt.Fprintf(&buf, color.Color("[bold]Resource:[reset] %s (%s)\n"),
			mod.ManagedResource.Addr(), mod.ResourceKind)
	}

	buf.WriteString(color.Color("\n[bold]Inputs:[reset]\n"))
	for _, v := range mod.Variables {
		constraint := "(required)"
		if !v.Required {
			constraint = fmt.Sprintf("(default %s)", compactValue(v.Default))
		}
		fmt.Fprintf(&buf, "  %-22s %-12s %s\n", v.Name, typeName(v.Type), constraint)
		if v.Description != "" {
			fmt.Fprintf(&buf, "      %s\n", v.Description)
		}
	}

	buf.WriteString(color.Color("\n[bold]Outputs:[reset]\n"))
	for _, o := range mod.Outputs {
		source := ""
		if o.SourceAttribute != "" {
			source = fmt.Sprintf("reads %q", o.SourceAttribute)
		}
		fmt.Fprintf(&buf, "  %-22s %s\n", o.Name, source)
		if o.Description != "" {
			fmt.Fprintf(&buf, "      %s\n", o.Description)
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}

// moduleJSON is the wire shape of a module interface in -json output,
// following the shape module registries use to describe a module version.
type moduleJSON struct {
	Resource string       `json:"resource,omitempty"`
	Kind     string       `json:"kind,omitempty"`
	Inputs   []inputJSON  `json:"inputs"`
	Outputs  []outputJSON `json:"outputs"`
}

type inputJSON struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
	Required    bool   `json:"required"`
}

type outputJSON struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	SourceAttribute string `json:"source_attribute,omitempty"`
}

func jsonModule(mod *modconfig.Module) moduleJSON {
	ret := moduleJSON{
		Kind:    mod.ResourceKind,
		Inputs:  []inputJSON{},
		Outputs: []outputJSON{},
	}
	if mod.ManagedResource != nil {
		ret.Resource = mod.ManagedResource.Addr()
	}
	for _, v := range mod.Variables {
		input := inputJSON{
			Name:        v.Name,
			Type:        typeName(v.Type),
			Description: v.Description,
			Required:    v.Required,
		}
		if v.Default != cty.NilVal {
			input.Default = compactValue(v.Default)
		}
		ret.Inputs = append(ret.Inputs, input)
	}
	for _, o := range mod.Outputs {
		ret.Outputs = append(ret.Outputs, outputJSON{
			Name:            o.Name,
			Description:     o.Description,
			SourceAttribute: o.SourceAttribute,
		})
	}
	return ret
}

func typeName(ty cty.Type) string {
	if ty == cty.NilType {
		return ""
	}
	return typeexpr.TypeString(ty)
}

// compactValue gives a single-line rendering of a default value.
func compactValue(val cty.Value) string {
	if val == cty.NilVal {
		return ""
	}
	if val.IsNull() {
		return "null"
	}
	switch val.Type() {
	case cty.String:
		return fmt.Sprintf("%q", val.AsString())
	case cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		if val.CanIterateElements() && val.LengthInt() == 0 {
			return "{}"
		}
		out, err := json.Marshal(ctyToJSON(val))
		if err != nil {
			return val.GoString()
		}
		return string(out)
	}
}

// ctyToJSON converts the small set of value types registry modules use
// into plain Go values for JSON rendering.
func ctyToJSON(val cty.Value) interface{} {
	switch {
	case val.IsNull():
		return nil
	case val.Type() == cty.String:
		return val.AsString()
	case val.Type() == cty.Bool:
		return val.True()
	case val.Type().IsMapType() || val.Type().IsObjectType():
		ret := map[string]interface{}{}
		for k, v := range val.AsValueMap() {
			ret[k] = ctyToJSON(v)
		}
		return ret
	default:
		return val.GoString()
	}
}

func (c *ShowCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictDirs("")
}

func (c *ShowCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-json":     complete.PredictNothing,
		"-no-color": complete.PredictNothing,
	}
}

func (c *ShowCommand) Help() string {
	helpText := `
Usage: terraform-module-check show [options] [DIR]

  Loads the registry module in DIR (or the current directory) and prints a
  summary of its interface: the resource it provisions, its input variables
  with their types and defaults, and its output values.

Options:

  -json               Produce the summary in JSON format.

  -no-color           Disable text coloring in the output.

`
	return strings.TrimSpace(helpText)
}

func (c *ShowCommand) Synopsis() string {
	return "Print the interface of a registry module"
}
