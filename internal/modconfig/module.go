package modconfig

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/hashicorp/terraform-module-check/internal/configschema"
)

// Module is the parsed model of a registry module: the single managed
// resource it wraps, its input variables, and its output values, in
// declaration order. A Module is built once, either by the parser or
// directly by a calling program, and is not modified afterwards.
type Module struct {
	// SourceDir is the directory the module was loaded from, or the empty
	// string for a directly-constructed module.
	SourceDir string

	// ResourceKind identifies the schema the module is validated against,
	// such as configschema.ContainerRegistryKind.
	ResourceKind string

	// ManagedResource is the module's resource declaration, when loaded
	// from configuration.
	ManagedResource *Resource

	Variables []*Variable
	Outputs   []*Output

	// ExampleCalls are the "module" blocks found under the module's
	// examples directory.
	ExampleCalls []*ModuleCall

	// VariableRefs are all of the places that name one of the module's
	// input variables: references within the module's own expressions,
	// example call arguments, and values file assignments. Each must
	// resolve to a declared variable.
	VariableRefs []VariableRef
}

// VariableRef records a single use of an input variable by name.
type VariableRef struct {
	Name  string
	Range hcl.Range

	// Context is a short phrase describing where the reference appears,
	// for use in diagnostic messages. Examples: "resource configuration",
	// "module call in examples/complete".
	Context string
}

// LoadModule reads the directory at the given path and parses it as a
// registry module: the module's own .tf files, any .tfvars files alongside
// them, and any example configurations under an "examples" subdirectory.
//
// A nil Module is returned only if the directory cannot be read at all.
// Otherwise the returned module may be incomplete when the diagnostics
// contain errors, but is safe to inspect.
func (p *Parser) LoadModule(dir string) (*Module, hcl.Diagnostics) {
	paths, diags := p.dirFiles(dir)
	if diags.HasErrors() {
		return nil, diags
	}

	mod := &Module{
		SourceDir: dir,
	}

	var resources []*Resource
	for _, path := range paths {
		file, fileDiags := p.LoadConfigFile(path)
		diags = append(diags, fileDiags...)
		if file == nil {
			continue
		}
		mod.Variables = append(mod.Variables, file.Variables...)
		mod.Outputs = append(mod.Outputs, file.Outputs...)
		resources = append(resources, file.ManagedResources...)
	}

	diags = append(diags, mod.setManagedResource(resources)...)
	diags = append(diags, mod.resolveRefs()...)
	diags = append(diags, p.loadValuesFiles(mod, dir)...)
	diags = append(diags, p.loadExamples(mod, filepath.Join(dir, "examples"))...)

	return mod, diags
}

// setManagedResource records the module's single resource declaration and
// resolves its kind against the built-in schemas.
func (m *Module) setManagedResource(resources []*Resource) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if len(resources) == 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing resource declaration",
			Detail:   "A registry module must declare exactly one managed resource for its outputs to read.",
		})
		return diags
	}

	m.ManagedResource = resources[0]
	for _, rsrc := range resources[1:] {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Duplicate resource declaration",
			Detail:   fmt.Sprintf("A registry module wraps a single resource, and %s was already declared at %s.", m.ManagedResource.Addr(), m.ManagedResource.DeclRange),
			Subject:  &rsrc.DeclRange,
		})
	}

	kind, ok := configschema.KindForResourceType(m.ManagedResource.Type)
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported resource type",
			Detail:   fmt.Sprintf("There is no resource schema for %s, so the module cannot be checked.", m.ManagedResource.Type),
			Subject:  &m.ManagedResource.TypeRange,
		})
		return diags
	}
	m.ResourceKind = kind

	return diags
}

// resolveRefs scans the module's own expressions: the resource
// configuration, and each output's value. Variable references are recorded
// for Validate to cross-check, and each output that reads an attribute of
// the managed resource has its SourceAttribute resolved.
func (m *Module) resolveRefs() hcl.Diagnostics {
	var diags hcl.Diagnostics

	if m.ManagedResource != nil {
		for _, expr := range m.ManagedResource.configExprs() {
			refDiags := m.recordRefs(expr, "resource configuration", nil)
			diags = append(diags, refDiags...)
		}
	}

	for _, o := range m.Outputs {
		if o.Expr == nil {
			continue
		}
		refDiags := m.recordRefs(o.Expr, fmt.Sprintf("output %q", o.Name), o)
		diags = append(diags, refDiags...)
	}

	return diags
}

// recordRefs interprets the traversals within one expression. When the
// expression belongs to an output, the first traversal that reads an
// attribute of the managed resource becomes the output's source attribute.
func (m *Module) recordRefs(expr hcl.Expression, context string, out *Output) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, traversal := range expr.Variables() {
		root := traversal.RootName()
		rng := traversal.SourceRange()

		switch {
		case root == "var":
			if len(traversal) < 2 {
				continue
			}
			attr, ok := traversal[1].(hcl.TraverseAttr)
			if !ok {
				continue
			}
			m.VariableRefs = append(m.VariableRefs, VariableRef{
				Name:    attr.Name,
				Range:   rng,
				Context: context,
			})

		case m.ManagedResource != nil && root == m.ManagedResource.Type:
			if len(traversal) < 2 {
				continue
			}
			nameStep, ok := traversal[1].(hcl.TraverseAttr)
			if !ok || nameStep.Name != m.ManagedResource.Name {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Reference to undeclared resource",
					Detail:   fmt.Sprintf("The module's managed resource is %s.", m.ManagedResource.Addr()),
					Subject:  rng.Ptr(),
				})
				continue
			}
			if out == nil || len(traversal) < 3 {
				continue
			}
			attrStep, ok := traversal[2].(hcl.TraverseAttr)
			if !ok {
				continue
			}
			if out.SourceAttribute == "" {
				out.SourceAttribute = attrStep.Name
			}

		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid reference",
				Detail:   fmt.Sprintf("A registry module's expressions may refer only to its input variables and its managed resource, not to %q.", root),
				Subject:  rng.Ptr(),
			})
		}
	}

	return diags
}

// loadValuesFiles parses any .tfvars files directly within dir, recording
// the variables they assign.
func (p *Parser) loadValuesFiles(mod *Module, dir string) hcl.Diagnostics {
	var diags hcl.Diagnostics

	infos, err := p.fs.ReadDir(dir)
	if err != nil {
		// dirFiles already reported unreadable module directories.
		return nil
	}

	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".tfvars") {
			continue
		}
		refs, fileDiags := p.LoadValuesFile(filepath.Join(dir, name))
		diags = append(diags, fileDiags...)
		mod.VariableRefs = append(mod.VariableRefs, refs...)
	}

	return diags
}

// loadExamples walks the module's examples directory, if present, loading
// module calls from each example configuration and variable assignments
// from each example's .tfvars files.
func (p *Parser) loadExamples(mod *Module, dir string) hcl.Diagnostics {
	exists, err := p.fs.DirExists(dir)
	if err != nil || !exists {
		return nil
	}

	infos, err := p.fs.ReadDir(dir)
	if err != nil {
		return hcl.Diagnostics{
			{
				Severity: hcl.DiagError,
				Summary:  "Failed to read examples directory",
				Detail:   fmt.Sprintf("The examples directory %s cannot be read.", dir),
			},
		}
	}

	var diags hcl.Diagnostics
	for _, info := range infos {
		if !info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			continue
		}
		exDir := filepath.Join(dir, info.Name())
		exName := filepath.Join("examples", info.Name())

		paths, dirDiags := p.dirFiles(exDir)
		diags = append(diags, dirDiags...)

		for _, path := range paths {
			calls, callDiags := p.LoadExampleFile(path)
			diags = append(diags, callDiags...)

			for _, call := range calls {
				mod.ExampleCalls = append(mod.ExampleCalls, call)
				for _, input := range call.Inputs {
					mod.VariableRefs = append(mod.VariableRefs, VariableRef{
						Name:    input.Name,
						Range:   input.NameRange,
						Context: fmt.Sprintf("module call in %s", exName),
					})
				}
			}
		}

		diags = append(diags, p.loadValuesFiles(mod, exDir)...)
	}

	return diags
}

func sortVariableRefs(refs []VariableRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Range.Filename != refs[j].Range.Filename {
			return refs[i].Range.Filename < refs[j].Range.Filename
		}
		return refs[i].Range.Start.Byte < refs[j].Range.Start.Byte
	})
}
