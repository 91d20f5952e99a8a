package modconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// A consistent detail message for all "not a valid identifier" diagnostics.
const badIdentifierDetail = "A name must start with a letter or underscore and may contain only letters, digits, underscores, and dashes."

// Variable represents a "variable" block in a module configuration, or an
// input parameter constructed directly by a calling program.
type Variable struct {
	Name        string
	Description string

	// Type is the type constraint a caller-provided value must conform to.
	// Registry modules support only string, bool and map(string).
	Type cty.Type

	// Default is the value used when a caller provides none. cty.NilVal
	// means there is no default at all, which is distinct from a default
	// of null.
	Default cty.Value

	// Required records whether a caller must provide a value. For modules
	// built by the parser this is always derived from the absence of a
	// default, but modules constructed directly may disagree, which
	// Validate reports as an invalid default.
	Required bool

	DeclRange hcl.Range
}

func decodeVariableBlock(block *hcl.Block) (*Variable, hcl.Diagnostics) {
	v := &Variable{
		Name:      block.Labels[0],
		Default:   cty.NilVal,
		DeclRange: block.DefRange,
	}

	var diags hcl.Diagnostics

	if !hclsyntax.ValidIdentifier(v.Name) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid variable name",
			Detail:   badIdentifierDetail,
			Subject:  &block.LabelRanges[0],
		})
	}

	content, contentDiags := block.Body.Content(variableBlockSchema)
	diags = append(diags, contentDiags...)

	if attr, exists := content.Attributes["description"]; exists {
		valDiags := gohcl.DecodeExpression(attr.Expr, nil, &v.Description)
		diags = append(diags, valDiags...)
	}

	if attr, exists := content.Attributes["type"]; exists {
		ty, tyDiags := typeexpr.TypeConstraint(attr.Expr)
		diags = append(diags, tyDiags...)
		v.Type = ty

		if !tyDiags.HasErrors() && !supportedVariableType(ty) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported type for input variable",
				Detail:   fmt.Sprintf("Registry modules support only string, bool and map(string) input variables, so %s cannot be used.", typeexpr.TypeString(ty)),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
	} else {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing type for input variable",
			Detail:   "Each input variable must declare its type so that callers know what values are acceptable.",
			Subject:  &block.DefRange,
		})
		v.Type = cty.DynamicPseudoType
	}

	if attr, exists := content.Attributes["default"]; exists {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)

		// The default is stored as written; whether it conforms to the
		// declared type is Validate's business, so that all schema problems
		// for a module are reported together.
		v.Default = val
	}

	v.Required = v.Default == cty.NilVal

	return v, diags
}

// supportedVariableType reports whether ty is one of the type constraints
// a registry module's input variables may use.
func supportedVariableType(ty cty.Type) bool {
	switch {
	case ty.Equals(cty.String), ty.Equals(cty.Bool), ty.Equals(cty.Map(cty.String)):
		return true
	default:
		return false
	}
}

// Output represents an "output" block in a module configuration, or an
// output value constructed directly by a calling program.
type Output struct {
	Name        string
	Description string

	// SourceAttribute is the attribute of the module's managed resource
	// that this output exposes, or the empty string if the output's value
	// does not read a resource attribute.
	SourceAttribute string

	// Expr is the output's value expression, when the output was loaded
	// from configuration. It is nil for directly-constructed outputs.
	Expr hcl.Expression

	DeclRange hcl.Range
}

func decodeOutputBlock(block *hcl.Block) (*Output, hcl.Diagnostics) {
	o := &Output{
		Name:      block.Labels[0],
		DeclRange: block.DefRange,
	}

	var diags hcl.Diagnostics

	if !hclsyntax.ValidIdentifier(o.Name) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid output name",
			Detail:   badIdentifierDetail,
			Subject:  &block.LabelRanges[0],
		})
	}

	content, contentDiags := block.Body.Content(outputBlockSchema)
	diags = append(diags, contentDiags...)

	if attr, exists := content.Attributes["description"]; exists {
		valDiags := gohcl.DecodeExpression(attr.Expr, nil, &o.Description)
		diags = append(diags, valDiags...)
	}

	if attr, exists := content.Attributes["value"]; exists {
		o.Expr = attr.Expr
	}

	return o, diags
}

var variableBlockSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{
			Name: "description",
		},
		{
			Name: "type",
		},
		{
			Name: "default",
		},
	},
}

var outputBlockSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{
			Name: "description",
		},
		{
			Name:     "value",
			Required: true,
		},
	},
}
