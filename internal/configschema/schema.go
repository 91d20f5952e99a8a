// Package configschema contains the static schemas for the provisioned
// resources that registry modules may wrap, described independently of any
// particular provider release.
//
// A schema here records only what module validation needs to know: which
// attributes a provisioned resource exposes after creation, and therefore
// which attributes a module output is allowed to read.
package configschema

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Resource is the schema for a single kind of provisioned resource.
type Resource struct {
	// Kind is a provider-agnostic identifier for what the resource is,
	// such as "container-registry".
	Kind string

	// Attributes are the attributes the resource exposes once provisioned,
	// keyed by attribute name. Module outputs may read only these.
	Attributes map[string]cty.Type
}

// HasAttribute returns true if the resource exposes an attribute of the
// given name.
func (r *Resource) HasAttribute(name string) bool {
	_, ok := r.Attributes[name]
	return ok
}

// AttributeNames returns the names of all of the resource's attributes in
// lexical order, for use in UI messages and generated documentation.
func (r *Resource) AttributeNames() []string {
	if len(r.Attributes) == 0 {
		return nil
	}
	ret := make([]string, 0, len(r.Attributes))
	for name := range r.Attributes {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
