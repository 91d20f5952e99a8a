package modconfig

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/hashicorp/terraform-module-check/internal/configschema"
	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// Validate checks the module's declarations against the given resource
// schema and returns all of the problems found, in a stable order.
//
// Validate is a pure function of the module and schema: it performs no I/O,
// never mutates the module, and returns identical results on repeated calls,
// so independent validations may run concurrently. It never stops at the
// first problem; every violation is collected so that a single run reports
// everything there is to fix. A nil schema is itself reported as an error
// rather than a reason to panic.
func (m *Module) Validate(schema *configschema.Resource) tfdiags.Diagnostics {
	var diags tfdiags.Diagnostics

	if schema == nil {
		// Without a schema there is nothing to resolve output attributes
		// against, so that check is skipped; the structural checks below
		// still apply.
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"No resource schema available",
			"The module's outputs cannot be checked without a schema for the resource they read from.",
		))
	}

	if len(m.Variables) == 0 {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Module declares no input variables",
			"A registry module must accept at least one input variable so that callers can name the resource they are creating.",
		))
	}
	if len(m.Outputs) == 0 {
		diags = diags.Append(tfdiags.Sourceless(
			tfdiags.Error,
			"Module declares no output values",
			"A registry module must export at least one output value so that callers can read the provisioned resource's attributes.",
		))
	}

	declared := make(map[string]*Variable, len(m.Variables))
	for _, v := range m.Variables {
		if prev, exists := declared[v.Name]; exists {
			diags = diags.Append(&ValidationError{
				Kind:      DuplicateName,
				Subject:   v.Name,
				Detail:    fmt.Sprintf("An input variable named %q was already declared at %s. Variable names must be unique within a module.", v.Name, prev.DeclRange),
				DeclRange: v.DeclRange,
			})
		} else {
			declared[v.Name] = v
		}

		if defErr := checkVariableDefault(v); defErr != nil {
			diags = diags.Append(defErr)
		}
	}

	outputs := make(map[string]*Output, len(m.Outputs))
	for _, o := range m.Outputs {
		if prev, exists := outputs[o.Name]; exists {
			diags = diags.Append(&ValidationError{
				Kind:      DuplicateName,
				Subject:   o.Name,
				Detail:    fmt.Sprintf("An output value named %q was already declared at %s. Output names must be unique within a module.", o.Name, prev.DeclRange),
				DeclRange: o.DeclRange,
			})
		} else {
			outputs[o.Name] = o
		}

		if schema == nil || o.SourceAttribute == "" {
			continue
		}
		if !schema.HasAttribute(o.SourceAttribute) {
			diags = diags.Append(&ValidationError{
				Kind:      UnknownAttribute,
				Subject:   o.Name,
				Attribute: o.SourceAttribute,
				Detail:    fmt.Sprintf("The output %q reads attribute %q, but a %s resource exposes only %s.", o.Name, o.SourceAttribute, schema.Kind, strings.Join(schema.AttributeNames(), ", ")),
				DeclRange: o.DeclRange,
			})
		}
	}

	for _, ref := range m.VariableRefs {
		if _, exists := declared[ref.Name]; exists {
			continue
		}
		diags = diags.Append(&ValidationError{
			Kind:      UnknownVariable,
			Subject:   ref.Name,
			Detail:    fmt.Sprintf("The %s refers to an input variable named %q, which the module does not declare.", ref.Context, ref.Name),
			DeclRange: ref.Range,
		})
	}

	return diags
}

// checkVariableDefault enforces the relationship between a variable's
// required flag, its default, and its type constraint.
func checkVariableDefault(v *Variable) *ValidationError {
	if v.Default == cty.NilVal {
		return nil
	}

	if v.Required {
		return &ValidationError{
			Kind:      InvalidDefault,
			Subject:   v.Name,
			Detail:    fmt.Sprintf("The input variable %q is required, so it must not declare a default value.", v.Name),
			DeclRange: v.DeclRange,
		}
	}

	if v.Type == cty.NilType {
		return nil
	}
	if _, err := convert.Convert(v.Default, v.Type); err != nil {
		return &ValidationError{
			Kind:      InvalidDefault,
			Subject:   v.Name,
			Detail:    fmt.Sprintf("The default value for input variable %q is not valid for its type %s: %s.", v.Name, typeexpr.TypeString(v.Type), err),
			DeclRange: v.DeclRange,
		}
	}

	return nil
}
