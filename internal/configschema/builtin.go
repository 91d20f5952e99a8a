package configschema

import (
	"github.com/zclconf/go-cty/cty"
)

// ContainerRegistryKind is the resource kind for container image registries,
// currently the only kind with a built-in schema.
const ContainerRegistryKind = "container-registry"

// builtinResources are the resource schemas compiled into this tool.
var builtinResources = map[string]*Resource{
	ContainerRegistryKind: {
		Kind: ContainerRegistryKind,
		Attributes: map[string]cty.Type{
			"arn":         cty.String,
			"name":        cty.String,
			"registry_id": cty.String,
			"url":         cty.String,
		},
	},
}

// resourceTypeKinds maps concrete provider resource types onto the kinds
// they implement, so that a parsed module's resource block can be resolved
// to a schema.
var resourceTypeKinds = map[string]string{
	"aws_ecr_repository":       ContainerRegistryKind,
	"aws_ecrpublic_repository": ContainerRegistryKind,
}

// BuiltinResource returns the built-in schema for the given resource kind,
// or nil if the kind is not known.
func BuiltinResource(kind string) *Resource {
	return builtinResources[kind]
}

// KindForResourceType maps a provider resource type, such as
// "aws_ecr_repository", to the resource kind it implements. The second
// return value is false if the resource type is not one this tool knows
// how to validate.
func KindForResourceType(resourceType string) (string, bool) {
	kind, ok := resourceTypeKinds[resourceType]
	return kind, ok
}
