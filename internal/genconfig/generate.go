// Package genconfig generates the files of a container-registry module:
// the resource declaration, its input variables and output values, an
// example caller, and the README documenting them. A generated module is
// guaranteed to pass modconfig validation against the built-in
// container-registry schema.
package genconfig

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// File is one generated file, with a path relative to the module root.
type File struct {
	Path    string
	Content []byte
}

// Params adjusts what ContainerRegistryModule generates.
type Params struct {
	// ResourceType is the provider resource type to declare. If empty,
	// "aws_ecr_repository" is used.
	ResourceType string
}

// scaffoldVariable describes one input variable of the generated module.
type scaffoldVariable struct {
	Name        string
	Description string
	TypeName    string // rendered type expression: string, bool or map(string)
	Default     cty.Value
}

// scaffoldOutput describes one output value of the generated module.
type scaffoldOutput struct {
	Name            string
	Description     string
	SourceAttribute string
}

const resourceName = "this"

var scaffoldVariables = []scaffoldVariable{
	{
		Name:        "repository_name",
		Description: "Name of the container repository to create.",
		TypeName:    "string",
		Default:     cty.NilVal,
	},
	{
		Name:        "image_tag_mutability",
		Description: "Whether image tags can be overwritten. One of MUTABLE or IMMUTABLE.",
		TypeName:    "string",
		Default:     cty.StringVal("MUTABLE"),
	},
	{
		Name:        "scan_on_push",
		Description: "Scan images for vulnerabilities as they are pushed.",
		TypeName:    "bool",
		Default:     cty.True,
	},
	{
		Name:        "force_delete",
		Description: "Delete the repository even if it still contains images.",
		TypeName:    "bool",
		Default:     cty.False,
	},
	{
		Name:        "tags",
		Description: "Tags to assign to the repository.",
		TypeName:    "map(string)",
		Default:     cty.MapValEmpty(cty.String),
	},
}

var scaffoldOutputs = []scaffoldOutput{
	{
		Name:            "repository_url",
		Description:     "URL of the repository, for docker push and pull.",
		SourceAttribute: "url",
	},
	{
		Name:            "repository_arn",
		Description:     "ARN of the repository.",
		SourceAttribute: "arn",
	},
	{
		Name:            "repository_name",
		Description:     "Name of the repository.",
		SourceAttribute: "name",
	},
	{
		Name:            "registry_id",
		Description:     "ID of the registry the repository was created in.",
		SourceAttribute: "registry_id",
	},
}

// ContainerRegistryModule returns the full set of files for a new
// container-registry module, in the order they should be written.
func ContainerRegistryModule(params Params) []File {
	resourceType := params.ResourceType
	if resourceType == "" {
		resourceType = "aws_ecr_repository"
	}

	return []File{
		{Path: "main.tf", Content: mainFile(resourceType)},
		{Path: "variables.tf", Content: variablesFile()},
		{Path: "outputs.tf", Content: outputsFile(resourceType)},
		{Path: "terraform.tfvars", Content: tfvarsFile()},
		{Path: "examples/complete/main.tf", Content: exampleFile()},
		{Path: "README.md", Content: readmeFile(resourceType)},
	}
}

func mainFile(resourceType string) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	block := body.AppendNewBlock("resource", []string{resourceType, resourceName})
	rb := block.Body()
	rb.SetAttributeTraversal("name", varTraversal("repository_name"))
	rb.SetAttributeTraversal("image_tag_mutability", varTraversal("image_tag_mutability"))
	rb.SetAttributeTraversal("force_delete", varTraversal("force_delete"))
	rb.SetAttributeTraversal("tags", varTraversal("tags"))
	rb.AppendNewline()

	scanBlock := rb.AppendNewBlock("image_scanning_configuration", nil)
	scanBlock.Body().SetAttributeTraversal("scan_on_push", varTraversal("scan_on_push"))

	return f.Bytes()
}

func variablesFile() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, v := range scaffoldVariables {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("variable", []string{v.Name})
		vb := block.Body()
		vb.SetAttributeValue("description", cty.StringVal(v.Description))
		vb.SetAttributeRaw("type", typeTokens(v.TypeName))
		if v.Default != cty.NilVal {
			vb.SetAttributeValue("default", v.Default)
		}
	}

	return f.Bytes()
}

func outputsFile(resourceType string) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, o := range scaffoldOutputs {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("output", []string{o.Name})
		ob := block.Body()
		ob.SetAttributeValue("description", cty.StringVal(o.Description))
		ob.SetAttributeTraversal("value", hcl.Traversal{
			hcl.TraverseRoot{Name: resourceType},
			hcl.TraverseAttr{Name: resourceName},
			hcl.TraverseAttr{Name: o.SourceAttribute},
		})
	}

	return f.Bytes()
}

func tfvarsFile() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("repository_name", cty.StringVal("example"))
	body.SetAttributeValue("scan_on_push", cty.True)
	body.SetAttributeValue("tags", cty.MapVal(map[string]cty.Value{
		"Environment": cty.StringVal("dev"),
	}))

	return f.Bytes()
}

func exampleFile() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	block := body.AppendNewBlock("module", []string{"registry"})
	mb := block.Body()
	mb.SetAttributeValue("source", cty.StringVal("../.."))
	mb.AppendNewline()
	mb.SetAttributeValue("repository_name", cty.StringVal("example"))
	mb.SetAttributeValue("tags", cty.MapVal(map[string]cty.Value{
		"Environment": cty.StringVal("dev"),
	}))

	return f.Bytes()
}

func readmeFile(resourceType string) []byte {
	var buf strings.Builder

	buf.WriteString("# Container Registry Module\n\n")
	fmt.Fprintf(&buf, "Provisions a container registry repository (`%s`).\n\n", resourceType)

	buf.WriteString("## Usage\n\n")
	buf.WriteString("```hcl\n")
	buf.Write(exampleFile())
	buf.WriteString("```\n\n")

	buf.WriteString("## Inputs\n\n")
	buf.WriteString("| Name | Description | Type | Default | Required |\n")
	buf.WriteString("|------|-------------|------|---------|:--------:|\n")
	for _, v := range scaffoldVariables {
		defaultStr := "n/a"
		required := "yes"
		if v.Default != cty.NilVal {
			defaultStr = fmt.Sprintf("`%s`", renderDefault(v.Default))
			required = "no"
		}
		fmt.Fprintf(&buf, "| %s | %s | `%s` | %s | %s |\n",
			v.Name, v.Description, v.TypeName, defaultStr, required)
	}
	buf.WriteString("\n## Outputs\n\n")
	buf.WriteString("| Name | Description |\n")
	buf.WriteString("|------|-------------|\n")
	for _, o := range scaffoldOutputs {
		fmt.Fprintf(&buf, "| %s | %s |\n", o.Name, o.Description)
	}

	return []byte(buf.String())
}

func varTraversal(name string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: "var"},
		hcl.TraverseAttr{Name: name},
	}
}

// typeTokens renders a variable type expression. The three supported type
// names are all valid HCL type constraint expressions as-is.
func typeTokens(typeName string) hclwrite.Tokens {
	if name, ok := strings.CutSuffix(typeName, "(string)"); ok {
		return hclwrite.TokensForFunctionCall(name, hclwrite.TokensForIdentifier("string"))
	}
	return hclwrite.TokensForIdentifier(typeName)
}

// renderDefault gives a compact single-line rendering of a default value
// for the README table.
func renderDefault(val cty.Value) string {
	switch val.Type() {
	case cty.String:
		return fmt.Sprintf("%q", val.AsString())
	case cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		if val.CanIterateElements() && val.LengthInt() == 0 {
			return "{}"
		}
		return strings.TrimSpace(string(hclwrite.TokensForValue(val).Bytes()))
	}
}
