// Package format contains helpers for formatting diagnostics and validation
// reports for the terminal.
package format

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/colorstring"
	wordwrap "github.com/mitchellh/go-wordwrap"

	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// Diagnostic formats a single diagnostic message for human consumption,
// with a heading, an excerpt of any relevant source code, and the detail
// text wrapped to the given terminal width.
//
// The designated width may be zero, in which case no wrapping is applied.
func Diagnostic(diag tfdiags.Diagnostic, sources map[string][]byte, color *colorstring.Colorize, width int) string {
	if diag == nil {
		// No good reason to pass a nil diagnostic in here...
		return ""
	}

	var buf bytes.Buffer

	switch diag.Severity() {
	case tfdiags.Error:
		buf.WriteString(color.Color("\n[bold][red]Error: [reset]"))
	case tfdiags.Warning:
		buf.WriteString(color.Color("\n[bold][yellow]Warning: [reset]"))
	default:
		// Clear out any coloring that might be applied by the caller
		buf.WriteString(color.Color("\n[reset]"))
	}

	desc := diag.Description()
	sourceRefs := diag.Source()

	// We don't wrap the summary, since we expect it to be terse, and since
	// this is where we put the text of a native Go error it may not always
	// be pure text that lends itself well to word-wrapping.
	fmt.Fprintf(&buf, color.Color("[bold]%s[reset]\n\n"), desc.Summary)

	if sourceRefs.Subject != nil {
		buf.WriteString(sourceSnippet(sourceRefs.Subject, sources, color))
	}

	if desc.Detail != "" {
		detail := desc.Detail
		if width > 1 {
			detail = wordwrap.WrapString(detail, uint(width-1))
		}
		fmt.Fprintf(&buf, "%s\n", detail)
	}

	return buf.String()
}

// sourceSnippet renders the source line the given range points at, when the
// relevant source buffer is available, or just the position otherwise.
func sourceSnippet(subject *tfdiags.SourceRange, sources map[string][]byte, color *colorstring.Colorize) string {
	var buf bytes.Buffer

	src, ok := sources[subject.Filename]
	if !ok {
		// It would be weird for us to get a diagnostic with a source location
		// whose file wasn't loaded, but we'll handle it gracefully.
		fmt.Fprintf(&buf, "  at %s\n\n", subject.StartString())
		return buf.String()
	}

	fmt.Fprintf(&buf, color.Color("  on %s line %d:\n"), subject.Filename, subject.Start.Line)

	sc := bufio.NewScanner(bytes.NewReader(src))
	line := 1
	for sc.Scan() {
		if line == subject.Start.Line {
			fmt.Fprintf(&buf, "  %4d: %s\n", line, strings.TrimRight(sc.Text(), " \t"))
			break
		}
		line++
	}
	buf.WriteString("\n")

	return buf.String()
}
