package modconfig

import (
	"github.com/hashicorp/hcl/v2"
)

// File describes the contents of a single configuration file within a
// module directory.
type File struct {
	Variables        []*Variable
	Outputs          []*Output
	ManagedResources []*Resource
}

// LoadConfigFile reads the file at the given path and parses it as a
// module configuration file.
//
// If the file cannot be read -- for example, if it does not exist -- then
// a nil *File will be returned along with error diagnostics. If the returned
// diagnostics has errors when a non-nil file is returned then the file may
// be incomplete but is valid enough for careful static analysis.
func (p *Parser) LoadConfigFile(path string) (*File, hcl.Diagnostics) {
	body, diags := p.LoadHCLFile(path)
	if body == nil {
		return nil, diags
	}

	file := &File{}

	content, contentDiags := body.Content(configFileSchema)
	diags = append(diags, contentDiags...)

	for _, block := range content.Blocks {
		switch block.Type {

		case "terraform", "provider":
			// Version constraints and provider configurations are the
			// provisioning tool's concern; the schema checks here don't
			// read them.
			continue

		case "variable":
			cfg, cfgDiags := decodeVariableBlock(block)
			diags = append(diags, cfgDiags...)
			if cfg != nil {
				file.Variables = append(file.Variables, cfg)
			}

		case "output":
			cfg, cfgDiags := decodeOutputBlock(block)
			diags = append(diags, cfgDiags...)
			if cfg != nil {
				file.Outputs = append(file.Outputs, cfg)
			}

		case "resource":
			cfg, cfgDiags := decodeResourceBlock(block)
			diags = append(diags, cfgDiags...)
			if cfg != nil {
				file.ManagedResources = append(file.ManagedResources, cfg)
			}

		default:
			// Should never happen because the above cases should be
			// exhaustive for all block type names in our schema.
			continue

		}
	}

	return file, diags
}

// LoadExampleFile reads the file at the given path and parses it as an
// example configuration file, returning the module calls it contains.
// Example files may contain arbitrary other configuration which is ignored;
// only the "module" blocks matter for cross-checking a module's inputs.
func (p *Parser) LoadExampleFile(path string) ([]*ModuleCall, hcl.Diagnostics) {
	body, diags := p.LoadHCLFile(path)
	if body == nil {
		return nil, diags
	}

	content, _, contentDiags := body.PartialContent(exampleFileSchema)
	diags = append(diags, contentDiags...)

	var calls []*ModuleCall
	for _, block := range content.Blocks {
		call, callDiags := decodeModuleCallBlock(block)
		diags = append(diags, callDiags...)
		if call != nil {
			calls = append(calls, call)
		}
	}

	return calls, diags
}

// configFileSchema is the schema for the top-level of a module configuration
// file. We use the low-level HCL API for this level so we can easily deal
// with each block type separately with its own decoding logic.
var configFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{
			Type: "terraform",
		},
		{
			Type:       "provider",
			LabelNames: []string{"name"},
		},
		{
			Type:       "variable",
			LabelNames: []string{"name"},
		},
		{
			Type:       "output",
			LabelNames: []string{"name"},
		},
		{
			Type:       "resource",
			LabelNames: []string{"type", "name"},
		},
	},
}

// exampleFileSchema matches only the "module" blocks in an example file,
// tolerating anything else the example might contain.
var exampleFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{
			Type:       "module",
			LabelNames: []string{"name"},
		},
	},
}
