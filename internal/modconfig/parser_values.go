package modconfig

import (
	"github.com/hashicorp/hcl/v2"
)

// LoadValuesFile reads the file at the given path and parses it as a
// "values" file, which is an HCL file whose top-level body is treated as
// a set of key/value assignments, as in a .tfvars file.
//
// Only the assignment names and their source locations are returned; the
// values themselves aren't needed to cross-check which variables a values
// file tries to set.
func (p *Parser) LoadValuesFile(path string) ([]VariableRef, hcl.Diagnostics) {
	body, diags := p.LoadHCLFile(path)
	if body == nil {
		return nil, diags
	}

	attrs, attrDiags := body.JustAttributes()
	diags = append(diags, attrDiags...)
	if attrs == nil {
		return nil, diags
	}

	refs := make([]VariableRef, 0, len(attrs))
	for name, attr := range attrs {
		refs = append(refs, VariableRef{
			Name:    name,
			Range:   attr.NameRange,
			Context: "values file",
		})
	}
	sortVariableRefs(refs)

	return refs, diags
}
