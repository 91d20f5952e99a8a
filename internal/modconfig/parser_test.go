package modconfig

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"

	"github.com/hashicorp/terraform-module-check/internal/configschema"
)

func TestLoadModule(t *testing.T) {
	parser := NewParser(nil)
	mod, diags := parser.LoadModule("testdata/valid-registry-module")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Error())
	}
	if mod == nil {
		t.Fatal("got nil module")
	}

	if got, want := mod.ManagedResource.Addr(), "aws_ecr_repository.this"; got != want {
		t.Errorf("wrong resource address %q; want %q", got, want)
	}
	if got, want := mod.ResourceKind, configschema.ContainerRegistryKind; got != want {
		t.Errorf("wrong resource kind %q; want %q", got, want)
	}

	var gotVars []string
	for _, v := range mod.Variables {
		gotVars = append(gotVars, v.Name)
	}
	wantVars := []string{"repository_name", "image_tag_mutability", "scan_on_push", "tags"}
	if diff := cmp.Diff(wantVars, gotVars); diff != "" {
		t.Errorf("wrong variables:\n%s", diff)
	}

	gotOutputs := map[string]string{}
	for _, o := range mod.Outputs {
		gotOutputs[o.Name] = o.SourceAttribute
	}
	wantOutputs := map[string]string{
		"repository_url":  "url",
		"repository_arn":  "arn",
		"repository_name": "name",
	}
	if diff := cmp.Diff(wantOutputs, gotOutputs); diff != "" {
		t.Errorf("wrong outputs:\n%s", diff)
	}

	if len(mod.ExampleCalls) != 1 {
		t.Fatalf("got %d example calls; want 1", len(mod.ExampleCalls))
	}
	call := mod.ExampleCalls[0]
	if call.Name != "registry" || call.Source != "../.." {
		t.Errorf("wrong example call %q from %q", call.Name, call.Source)
	}
	var gotInputs []string
	for _, input := range call.Inputs {
		gotInputs = append(gotInputs, input.Name)
	}
	if diff := cmp.Diff([]string{"repository_name", "tags"}, gotInputs); diff != "" {
		t.Errorf("wrong example call inputs:\n%s", diff)
	}
}

func TestLoadModule_variableDetails(t *testing.T) {
	parser := NewParser(nil)
	mod, diags := parser.LoadModule("testdata/valid-registry-module")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Error())
	}

	byName := map[string]*Variable{}
	for _, v := range mod.Variables {
		byName[v.Name] = v
	}

	name := byName["repository_name"]
	if !name.Required {
		t.Error("repository_name should be required")
	}
	if name.Default != cty.NilVal {
		t.Errorf("repository_name should have no default; got %#v", name.Default)
	}
	if !name.Type.Equals(cty.String) {
		t.Errorf("repository_name has type %#v; want string", name.Type)
	}

	scan := byName["scan_on_push"]
	if scan.Required {
		t.Error("scan_on_push should not be required")
	}
	if !scan.Type.Equals(cty.Bool) {
		t.Errorf("scan_on_push has type %#v; want bool", scan.Type)
	}
	if scan.Default != cty.True {
		t.Errorf("scan_on_push default is %#v; want true", scan.Default)
	}

	tags := byName["tags"]
	if !tags.Type.Equals(cty.Map(cty.String)) {
		t.Errorf("tags has type %#v; want map(string)", tags.Type)
	}
}

func TestLoadModule_variableRefs(t *testing.T) {
	parser := NewParser(nil)
	mod, diags := parser.LoadModule("testdata/valid-registry-module")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Error())
	}

	counts := map[string]int{}
	for _, ref := range mod.VariableRefs {
		counts[ref.Name]++
	}

	// One reference from the resource config, one from the tfvars file and
	// one from the example call.
	if got := counts["repository_name"]; got != 3 {
		t.Errorf("repository_name referenced %d times; want 3", got)
	}
	if got := counts["tags"]; got != 2 {
		t.Errorf("tags referenced %d times; want 2", got)
	}
	if got := counts["scan_on_push"]; got != 1 {
		t.Errorf("scan_on_push referenced %d times; want 1", got)
	}
}

func TestLoadModule_errors(t *testing.T) {
	tests := map[string]struct {
		dir         string
		wantSummary string
	}{
		"no resource": {
			dir:         "testdata/invalid-no-resource",
			wantSummary: "Missing resource declaration",
		},
		"unsupported resource type": {
			dir:         "testdata/invalid-unsupported-resource",
			wantSummary: "Unsupported resource type",
		},
		"unsupported variable type": {
			dir:         "testdata/invalid-variable-type",
			wantSummary: "Unsupported type for input variable",
		},
		"nonexistent directory": {
			dir:         "testdata/nonexistent",
			wantSummary: "Failed to read module directory",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			parser := NewParser(nil)
			_, diags := parser.LoadModule(test.dir)
			if !diags.HasErrors() {
				t.Fatal("load succeeded; want errors")
			}
			for _, diag := range diags {
				if strings.Contains(diag.Summary, test.wantSummary) {
					return
				}
			}
			t.Errorf("no diagnostic with summary %q in: %s", test.wantSummary, diags.Error())
		})
	}
}
