package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/cli"
	hclog "github.com/hashicorp/go-hclog"
)

func testMeta(t *testing.T) (Meta, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	return Meta{
		Ui:    ui,
		Color: false,
		Log:   hclog.NewNullLogger(),
	}, ui
}

// scaffoldModule writes a fresh generated module into a temporary
// directory and returns its path.
func scaffoldModule(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	meta, ui := testMeta(t)
	c := &InitCommand{Meta: meta}
	if code := c.Run([]string{dir}); code != 0 {
		t.Fatalf("init exited %d: %s", code, ui.ErrorWriter.String())
	}
	return dir
}

func TestValidate_generatedModule(t *testing.T) {
	dir := scaffoldModule(t)

	meta, ui := testMeta(t)
	c := &ValidateCommand{Meta: meta}
	if code := c.Run([]string{dir}); code != 0 {
		t.Fatalf("validate exited %d: %s", code, ui.ErrorWriter.String())
	}
	if got := strings.TrimSpace(ui.OutputWriter.String()); got != "OK" {
		t.Errorf("wrong output %q; want %q", got, "OK")
	}
}

func TestValidate_invalidModule(t *testing.T) {
	meta, ui := testMeta(t)
	c := &ValidateCommand{Meta: meta}
	if code := c.Run([]string{"testdata/invalid-module"}); code != 1 {
		t.Fatalf("validate exited %d; want 1", code)
	}

	errOut := ui.ErrorWriter.String()
	if !strings.Contains(errOut, "UnknownAttributeError: repository_tag") {
		t.Errorf("missing unknown-attribute report in:\n%s", errOut)
	}
	if strings.Contains(ui.OutputWriter.String(), "OK") {
		t.Error("output claims OK despite errors")
	}
}

func TestValidate_json(t *testing.T) {
	meta, ui := testMeta(t)
	c := &ValidateCommand{Meta: meta}
	if code := c.Run([]string{"-json", "testdata/invalid-module"}); code != 1 {
		t.Fatalf("validate exited %d; want 1", code)
	}

	var report struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Kind string `json:"kind"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(ui.OutputWriter.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %s", err)
	}
	if report.Valid || len(report.Errors) == 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestValidate_tooManyArgs(t *testing.T) {
	meta, ui := testMeta(t)
	c := &ValidateCommand{Meta: meta}
	if code := c.Run([]string{"one", "two"}); code != 1 {
		t.Fatalf("validate exited %d; want 1", code)
	}
	if ui.ErrorWriter.String() == "" {
		t.Error("no usage error shown")
	}
}

func TestInit_refusesOverwrite(t *testing.T) {
	dir := scaffoldModule(t)

	meta, ui := testMeta(t)
	c := &InitCommand{Meta: meta}
	if code := c.Run([]string{dir}); code != 1 {
		t.Fatalf("second init exited %d; want 1", code)
	}
	if !strings.Contains(ui.ErrorWriter.String(), "already exists") {
		t.Errorf("missing overwrite refusal in:\n%s", ui.ErrorWriter.String())
	}

	// With -force the second run must succeed.
	meta, ui = testMeta(t)
	c = &InitCommand{Meta: meta}
	if code := c.Run([]string{"-force", dir}); code != 0 {
		t.Fatalf("forced init exited %d: %s", code, ui.ErrorWriter.String())
	}
}

func TestShow(t *testing.T) {
	dir := scaffoldModule(t)

	meta, ui := testMeta(t)
	c := &ShowCommand{Meta: meta}
	if code := c.Run([]string{dir}); code != 0 {
		t.Fatalf("show exited %d: %s", code, ui.ErrorWriter.String())
	}

	out := ui.OutputWriter.String()
	for _, want := range []string{
		"aws_ecr_repository.this",
		"Inputs:",
		"repository_name",
		"(required)",
		"Outputs:",
		"repository_url",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show output is missing %q:\n%s", want, out)
		}
	}
}

func TestShow_json(t *testing.T) {
	dir := scaffoldModule(t)

	meta, ui := testMeta(t)
	c := &ShowCommand{Meta: meta}
	if code := c.Run([]string{"-json", dir}); code != 0 {
		t.Fatalf("show exited %d: %s", code, ui.ErrorWriter.String())
	}

	var mod struct {
		Resource string `json:"resource"`
		Inputs   []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
		} `json:"inputs"`
		Outputs []struct {
			Name string `json:"name"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(ui.OutputWriter.Bytes(), &mod); err != nil {
		t.Fatalf("output is not valid JSON: %s", err)
	}
	if mod.Resource != "aws_ecr_repository.this" {
		t.Errorf("wrong resource %q", mod.Resource)
	}
	if len(mod.Inputs) == 0 || len(mod.Outputs) == 0 {
		t.Errorf("module interface is empty: %+v", mod)
	}
}
