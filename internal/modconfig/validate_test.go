package modconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	"github.com/hashicorp/terraform-module-check/internal/configschema"
	"github.com/hashicorp/terraform-module-check/internal/tfdiags"
)

// testSchema matches the attributes a container registry exposes.
func testSchema() *configschema.Resource {
	return &configschema.Resource{
		Kind: configschema.ContainerRegistryKind,
		Attributes: map[string]cty.Type{
			"url":  cty.String,
			"arn":  cty.String,
			"name": cty.String,
		},
	}
}

func validationErrors(t *testing.T, diags tfdiags.Diagnostics) []*ValidationError {
	t.Helper()
	var ret []*ValidationError
	for _, diag := range diags {
		ve, ok := diag.(*ValidationError)
		if !ok {
			t.Fatalf("unexpected diagnostic type %T: %s", diag, diag.Description().Summary)
		}
		ret = append(ret, ve)
	}
	return ret
}

func TestValidate_ok(t *testing.T) {
	mod := &Module{
		Variables: []*Variable{
			{Name: "repository_name", Type: cty.String, Required: true},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
		},
	}

	diags := mod.Validate(testSchema())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
}

func TestValidate_unknownAttribute(t *testing.T) {
	mod := &Module{
		Variables: []*Variable{
			{Name: "repository_name", Type: cty.String, Required: true},
		},
		Outputs: []*Output{
			{Name: "repository_tag", SourceAttribute: "tag"},
		},
	}

	errs := validationErrors(t, mod.Validate(testSchema()))
	if len(errs) != 1 {
		t.Fatalf("got %d errors; want 1", len(errs))
	}
	if errs[0].Kind != UnknownAttribute {
		t.Errorf("wrong kind %s; want %s", errs[0].Kind, UnknownAttribute)
	}
	if errs[0].Subject != "repository_tag" || errs[0].Attribute != "tag" {
		t.Errorf("wrong subject %q / attribute %q", errs[0].Subject, errs[0].Attribute)
	}
}

func TestValidate_invalidDefault(t *testing.T) {
	tests := map[string]*Variable{
		"required with default": {
			Name:     "repository_name",
			Type:     cty.String,
			Required: true,
			Default:  cty.StringVal("x"),
		},
		"default of wrong type": {
			Name:    "repository_name",
			Type:    cty.Bool,
			Default: cty.StringVal("sometimes"),
		},
	}

	for name, variable := range tests {
		t.Run(name, func(t *testing.T) {
			mod := &Module{
				Variables: []*Variable{variable},
				Outputs: []*Output{
					{Name: "repository_url", SourceAttribute: "url"},
				},
			}

			errs := validationErrors(t, mod.Validate(testSchema()))
			if len(errs) != 1 {
				t.Fatalf("got %d errors; want 1", len(errs))
			}
			if errs[0].Kind != InvalidDefault {
				t.Errorf("wrong kind %s; want %s", errs[0].Kind, InvalidDefault)
			}
			if errs[0].Subject != "repository_name" {
				t.Errorf("wrong subject %q; want %q", errs[0].Subject, "repository_name")
			}
		})
	}
}

func TestValidate_convertibleDefault(t *testing.T) {
	// Conversion, not strict equality: a boolean-looking string satisfies
	// a bool type constraint the same way the provisioning tool would
	// accept it.
	mod := &Module{
		Variables: []*Variable{
			{Name: "scan_on_push", Type: cty.Bool, Default: cty.StringVal("true")},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
		},
	}

	if diags := mod.Validate(testSchema()); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %#v", diags)
	}
}

func TestValidate_duplicateNames(t *testing.T) {
	mod := &Module{
		Variables: []*Variable{
			{Name: "tags", Type: cty.Map(cty.String), Default: cty.MapValEmpty(cty.String)},
			{Name: "tags", Type: cty.Map(cty.String), Default: cty.MapValEmpty(cty.String)},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
		},
	}

	errs := validationErrors(t, mod.Validate(testSchema()))
	if len(errs) != 1 {
		t.Fatalf("got %d errors; want 1", len(errs))
	}
	if errs[0].Kind != DuplicateName {
		t.Errorf("wrong kind %s; want %s", errs[0].Kind, DuplicateName)
	}
	if errs[0].Subject != "tags" {
		t.Errorf("wrong subject %q; want %q", errs[0].Subject, "tags")
	}
}

func TestValidate_unknownVariable(t *testing.T) {
	mod := &Module{
		Variables: []*Variable{
			{Name: "repository_name", Type: cty.String, Required: true},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
		},
		VariableRefs: []VariableRef{
			{Name: "mutability", Context: "module call in examples/complete"},
		},
	}

	errs := validationErrors(t, mod.Validate(testSchema()))
	if len(errs) != 1 {
		t.Fatalf("got %d errors; want 1", len(errs))
	}
	if errs[0].Kind != UnknownVariable {
		t.Errorf("wrong kind %s; want %s", errs[0].Kind, UnknownVariable)
	}
	if errs[0].Subject != "mutability" {
		t.Errorf("wrong subject %q; want %q", errs[0].Subject, "mutability")
	}
}

func TestValidate_nilSchema(t *testing.T) {
	mod := &Module{
		Variables: []*Variable{
			{Name: "repository_name", Type: cty.String, Required: true},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
		},
	}

	diags := mod.Validate(nil)
	if got := len(diags); got != 1 {
		t.Fatalf("got %d diagnostics; want 1", got)
	}
	if got, want := diags[0].Description().Summary, "No resource schema available"; got != want {
		t.Errorf("wrong summary %q; want %q", got, want)
	}
	if diags[0].Severity() != tfdiags.Error {
		t.Errorf("diagnostic is not an error")
	}
}

func TestValidate_emptyModule(t *testing.T) {
	mod := &Module{}

	diags := mod.Validate(testSchema())
	if got := len(diags); got != 2 {
		t.Fatalf("got %d diagnostics; want 2", got)
	}
	for _, diag := range diags {
		if diag.Severity() != tfdiags.Error {
			t.Errorf("diagnostic %q is not an error", diag.Description().Summary)
		}
	}
}

func TestValidate_collectsEveryProblem(t *testing.T) {
	// One module, one call, every kind of problem reported at once.
	mod := &Module{
		Variables: []*Variable{
			{Name: "repository_name", Type: cty.String, Required: true, Default: cty.StringVal("x")},
			{Name: "tags", Type: cty.Map(cty.String), Default: cty.MapValEmpty(cty.String)},
			{Name: "tags", Type: cty.Map(cty.String), Default: cty.MapValEmpty(cty.String)},
		},
		Outputs: []*Output{
			{Name: "repository_url", SourceAttribute: "url"},
			{Name: "repository_tag", SourceAttribute: "tag"},
		},
		VariableRefs: []VariableRef{
			{Name: "mutability", Context: "values file"},
		},
	}

	errs := validationErrors(t, mod.Validate(testSchema()))

	var gotKinds []ErrorKind
	for _, err := range errs {
		gotKinds = append(gotKinds, err.Kind)
	}
	wantKinds := []ErrorKind{InvalidDefault, DuplicateName, UnknownAttribute, UnknownVariable}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Errorf("wrong error kinds:\n%s", diff)
	}
}

func TestValidate_idempotent(t *testing.T) {
	parser := NewParser(nil)
	mod, loadDiags := parser.LoadModule("testdata/invalid-bad-default")
	if loadDiags.HasErrors() {
		t.Fatalf("unexpected load errors: %s", loadDiags.Error())
	}

	schema := configschema.BuiltinResource(mod.ResourceKind)
	first := mod.Validate(schema)
	second := mod.Validate(schema)

	if diff := cmp.Diff(validationErrors(t, first), validationErrors(t, second)); diff != "" {
		t.Errorf("repeated validation differs:\n%s", diff)
	}
}

func TestValidate_loadedModules(t *testing.T) {
	tests := map[string]struct {
		dir         string
		wantKind    ErrorKind
		wantSubject string
	}{
		"unknown attribute": {
			dir:         "testdata/invalid-unknown-attribute",
			wantKind:    UnknownAttribute,
			wantSubject: "repository_tag",
		},
		"bad default": {
			dir:         "testdata/invalid-bad-default",
			wantKind:    InvalidDefault,
			wantSubject: "scan_on_push",
		},
		"undeclared variable": {
			dir:         "testdata/invalid-undeclared-variable",
			wantKind:    UnknownVariable,
			wantSubject: "mutability",
		},
		"duplicate names": {
			dir:         "testdata/invalid-duplicate-names",
			wantKind:    DuplicateName,
			wantSubject: "repository_url",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			parser := NewParser(nil)
			mod, loadDiags := parser.LoadModule(test.dir)
			if loadDiags.HasErrors() {
				t.Fatalf("unexpected load errors: %s", loadDiags.Error())
			}

			errs := validationErrors(t, mod.Validate(configschema.BuiltinResource(mod.ResourceKind)))
			if len(errs) != 1 {
				t.Fatalf("got %d errors; want 1", len(errs))
			}
			if errs[0].Kind != test.wantKind {
				t.Errorf("wrong kind %s; want %s", errs[0].Kind, test.wantKind)
			}
			if errs[0].Subject != test.wantSubject {
				t.Errorf("wrong subject %q; want %q", errs[0].Subject, test.wantSubject)
			}
		})
	}

	t.Run("valid module", func(t *testing.T) {
		parser := NewParser(nil)
		mod, loadDiags := parser.LoadModule("testdata/valid-registry-module")
		if loadDiags.HasErrors() {
			t.Fatalf("unexpected load errors: %s", loadDiags.Error())
		}
		if diags := mod.Validate(configschema.BuiltinResource(mod.ResourceKind)); len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %#v", diags)
		}
	})
}
