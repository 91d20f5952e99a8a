package modconfig

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// ModuleCall represents a "module" block in an example configuration: a
// caller of the module under inspection. The arguments a call passes must
// name input variables the module actually declares.
type ModuleCall struct {
	Name   string
	Source string

	// Inputs are the call's arguments in source order, excluding the
	// module meta-arguments (source and version).
	Inputs []ModuleCallInput

	DeclRange hcl.Range
}

// ModuleCallInput is a single argument within a module call.
type ModuleCallInput struct {
	Name      string
	NameRange hcl.Range
}

func decodeModuleCallBlock(block *hcl.Block) (*ModuleCall, hcl.Diagnostics) {
	mc := &ModuleCall{
		Name:      block.Labels[0],
		DeclRange: block.DefRange,
	}

	content, remain, diags := block.Body.PartialContent(moduleCallSchema)

	if attr, exists := content.Attributes["source"]; exists {
		valDiags := gohcl.DecodeExpression(attr.Expr, nil, &mc.Source)
		diags = append(diags, valDiags...)
	}

	// Everything other than the meta-arguments is an input to the called
	// module. We only need the argument names, not their values.
	attrs, attrDiags := remain.JustAttributes()
	diags = append(diags, attrDiags...)

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return attrs[names[i]].Range.Start.Byte < attrs[names[j]].Range.Start.Byte
	})
	for _, name := range names {
		mc.Inputs = append(mc.Inputs, ModuleCallInput{
			Name:      name,
			NameRange: attrs[name].NameRange,
		})
	}

	return mc, diags
}

var moduleCallSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{
			Name:     "source",
			Required: true,
		},
		{
			Name: "version",
		},
	},
}
