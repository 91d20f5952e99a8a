package modconfig

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Resource represents the "resource" block in a module configuration: the
// single provisioned object the module wraps.
type Resource struct {
	Type string
	Name string

	// Config is the undecoded resource configuration body. The parser
	// does not interpret provider-specific arguments, but it does scan
	// the body for references to input variables.
	Config hcl.Body

	DeclRange hcl.Range
	TypeRange hcl.Range
}

// Addr returns the address of the resource in the usual dotted form,
// such as "aws_ecr_repository.this".
func (r *Resource) Addr() string {
	return r.Type + "." + r.Name
}

func decodeResourceBlock(block *hcl.Block) (*Resource, hcl.Diagnostics) {
	r := &Resource{
		Type:      block.Labels[0],
		Name:      block.Labels[1],
		Config:    block.Body,
		DeclRange: block.DefRange,
		TypeRange: block.LabelRanges[0],
	}

	var diags hcl.Diagnostics

	if !hclsyntax.ValidIdentifier(r.Type) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid resource type name",
			Detail:   badIdentifierDetail,
			Subject:  &block.LabelRanges[0],
		})
	}
	if !hclsyntax.ValidIdentifier(r.Name) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid resource name",
			Detail:   badIdentifierDetail,
			Subject:  &block.LabelRanges[1],
		})
	}

	return r, diags
}

// configExprs returns the value expressions throughout the resource's
// configuration body, in source order, so that they can be scanned for
// references. Only native syntax bodies can be walked this way; for any
// other body implementation the resource config is left unscanned.
func (r *Resource) configExprs() []hcl.Expression {
	body, ok := r.Config.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	return bodyExprs(body)
}

func bodyExprs(body *hclsyntax.Body) []hcl.Expression {
	// body.Attributes is a map, so we sort by source position to keep
	// the result deterministic.
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	var exprs []hcl.Expression
	for _, attr := range attrs {
		exprs = append(exprs, attr.Expr)
	}
	for _, block := range body.Blocks {
		exprs = append(exprs, bodyExprs(block.Body)...)
	}
	return exprs
}
