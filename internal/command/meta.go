// Package command contains the CLI commands of terraform-module-check.
package command

import (
	"flag"
	"io"

	"github.com/hashicorp/cli"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/mitchellh/colorstring"

	"github.com/hashicorp/terraform-module-check/internal/command/format"
	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Ui    cli.Ui
	Color bool
	Log   hclog.Logger
}

// outputColumns is the assumed terminal width for wrapping diagnostic
// detail text.
const outputColumns = 78

// Colorize returns the colorization structure for a command.
func (m *Meta) Colorize() *colorstring.Colorize {
	return &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !m.Color,
		Reset:   true,
	}
}

// defaultFlagSet creates a default flag set for commands.
func (m *Meta) defaultFlagSet(n string) *flag.FlagSet {
	f := flag.NewFlagSet(n, flag.ContinueOnError)
	f.SetOutput(io.Discard)

	// Set the default Usage to empty
	f.Usage = func() {}

	return f
}

// showDiagnostics displays error and warning messages in the UI. The
// sources map allows diagnostics that carry source locations to quote the
// offending configuration; pass nil when no sources are available.
//
// This method can be passed either a tfdiags.Diagnostics or a vararg of
// other diagnostic-like values, per tfdiags.Diagnostics.Append.
func (m *Meta) showDiagnostics(sources map[string][]byte, vals ...interface{}) {
	var diags tfdiags.Diagnostics
	diags = diags.Append(vals...)
	diags.Sort()

	for _, diag := range diags {
		msg := format.Diagnostic(diag, sources, m.Colorize(), outputColumns)
		switch diag.Severity() {
		case tfdiags.Error:
			m.Ui.Error(msg)
		case tfdiags.Warning:
			m.Ui.Warn(msg)
		default:
			m.Ui.Output(msg)
		}
	}
}
