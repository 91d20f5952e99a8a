// Package modconfig contains the model for a registry module configuration
// and the parser that loads it from a directory of configuration files.
//
// A "registry module" here is a small, reusable configuration wrapping a
// single provisioned resource, such as a container registry: one resource
// block, a set of input variables, and a set of output values reading the
// resource's attributes. The parser produces a Module which can then be
// checked against a resource schema using Module.Validate.
package modconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
)

// Parser is the main interface to read configuration files and other related
// files and parse them. It retains the source code of everything it has
// parsed so that diagnostics can later be rendered with source snippets.
type Parser struct {
	fs afero.Afero
	p  *hclparse.Parser
}

// NewParser creates and returns a new Parser that reads files from the given
// filesystem. If a nil filesystem is passed then the system's "real"
// filesystem will be used, via the os package.
func NewParser(fs afero.Fs) *Parser {
	if fs == nil {
		fs = afero.OsFs{}
	}

	return &Parser{
		fs: afero.Afero{Fs: fs},
		p:  hclparse.NewParser(),
	}
}

// LoadHCLFile is a low-level method that reads the file at the given path,
// parses it, and returns the hcl.Body representing its root. In many cases
// it is better to use one of the other Load* methods on this type,
// which additionally decode the root body in some way and return a higher-level
// construct.
func (p *Parser) LoadHCLFile(path string) (hcl.Body, hcl.Diagnostics) {
	src, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, hcl.Diagnostics{
			{
				Severity: hcl.DiagError,
				Summary:  "Failed to read file",
				Detail:   fmt.Sprintf("The file %q could not be read.", path),
			},
		}
	}

	file, diags := p.p.ParseHCL(src, path)
	if file == nil || file.Body == nil {
		return hcl.EmptyBody(), diags
	}

	return file.Body, diags
}

// Sources returns a map of the cached source buffers for all files that
// have been loaded through this parser, with source filenames as the keys.
func (p *Parser) Sources() map[string][]byte {
	return p.p.Sources()
}

// dirFiles lists the configuration files in the given directory: any
// files with the .tf suffix, in lexical order. Dotfiles are ignored, as
// are subdirectories.
func (p *Parser) dirFiles(dir string) ([]string, hcl.Diagnostics) {
	infos, err := p.fs.ReadDir(dir)
	if err != nil {
		return nil, hcl.Diagnostics{
			{
				Severity: hcl.DiagError,
				Summary:  "Failed to read module directory",
				Detail:   fmt.Sprintf("Module directory %s does not exist or cannot be read.", dir),
			},
		}
	}

	var paths []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".tf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}
