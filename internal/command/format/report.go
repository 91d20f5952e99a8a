package format

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/terraform-module-check/internal/modconfig"
	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// ValidationReport renders a set of validation diagnostics in the compact
// report form: one line per problem, each of the shape
//
//	<ErrorKind>: <name> — <detail>
//
// The diagnostics are rendered in the order given, which for
// Module.Validate results is the module's declaration order.
func ValidationReport(diags tfdiags.Diagnostics) []string {
	lines := make([]string, 0, len(diags))
	for _, diag := range diags {
		desc := diag.Description()
		if desc.Detail == "" {
			lines = append(lines, desc.Summary)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s — %s", desc.Summary, desc.Detail))
	}
	return lines
}

// jsonValidationError is the wire shape of one problem in a -json report.
type jsonValidationError struct {
	Kind      string     `json:"kind"`
	Subject   string     `json:"subject,omitempty"`
	Attribute string     `json:"attribute,omitempty"`
	Detail    string     `json:"detail,omitempty"`
	Range     *jsonRange `json:"range,omitempty"`
}

type jsonRange struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type jsonReport struct {
	Valid  bool                  `json:"valid"`
	Errors []jsonValidationError `json:"errors"`
}

// ValidationReportJSON renders a set of validation diagnostics as a JSON
// document for machine consumption.
func ValidationReportJSON(diags tfdiags.Diagnostics) ([]byte, error) {
	report := jsonReport{
		Valid:  !diags.HasErrors(),
		Errors: []jsonValidationError{},
	}

	for _, diag := range diags {
		var jsonErr jsonValidationError

		if ve, ok := diag.(*modconfig.ValidationError); ok {
			jsonErr = jsonValidationError{
				Kind:      string(ve.Kind),
				Subject:   ve.Subject,
				Attribute: ve.Attribute,
				Detail:    ve.Detail,
			}
		} else {
			desc := diag.Description()
			jsonErr = jsonValidationError{
				Kind:   "Error",
				Detail: desc.Detail,
			}
			jsonErr.Subject = desc.Summary
		}

		if subject := diag.Source().Subject; subject != nil {
			jsonErr.Range = &jsonRange{
				Filename: subject.Filename,
				Line:     subject.Start.Line,
				Column:   subject.Start.Column,
			}
		}

		report.Errors = append(report.Errors, jsonErr)
	}

	return json.MarshalIndent(report, "", "  ")
}
