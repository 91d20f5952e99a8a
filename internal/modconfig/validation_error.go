package modconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// ErrorKind distinguishes the schema violations Validate can report.
// The kind names appear verbatim in rendered reports, so they are part of
// the tool's output contract.
type ErrorKind string

const (
	// DuplicateName reports two variables or two outputs sharing a name.
	DuplicateName ErrorKind = "DuplicateNameError"

	// UnknownAttribute reports an output reading a resource attribute the
	// resource schema does not expose.
	UnknownAttribute ErrorKind = "UnknownAttributeError"

	// InvalidDefault reports a default on a required variable, or a default
	// that does not conform to the variable's declared type.
	InvalidDefault ErrorKind = "InvalidDefaultError"

	// UnknownVariable reports a reference to an input variable the module
	// does not declare, in the module's own expressions or its example usage.
	UnknownVariable ErrorKind = "UnknownVariableError"
)

// ValidationError is a Diagnostic describing one violation of the module
// schema rules.
type ValidationError struct {
	Kind ErrorKind

	// Subject is the name of the variable or output at fault.
	Subject string

	// Attribute is the unresolvable resource attribute, for
	// UnknownAttribute errors.
	Attribute string

	// Detail is a complete English sentence elaborating on the problem.
	Detail string

	// DeclRange is the source location of the offending declaration, when
	// the module was loaded from configuration files. The zero range marks
	// a directly-constructed module with no source location to report.
	DeclRange hcl.Range
}

var _ tfdiags.Diagnostic = (*ValidationError)(nil)

func (e *ValidationError) Severity() tfdiags.Severity {
	return tfdiags.Error
}

func (e *ValidationError) Description() tfdiags.Description {
	return tfdiags.Description{
		Summary: fmt.Sprintf("%s: %s", e.Kind, e.Subject),
		Detail:  e.Detail,
	}
}

func (e *ValidationError) Source() tfdiags.Source {
	if e.DeclRange == (hcl.Range{}) {
		return tfdiags.Source{}
	}
	rng := tfdiags.SourceRangeFromHCL(e.DeclRange)
	return tfdiags.Source{
		Subject: &rng,
	}
}
