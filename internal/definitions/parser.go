package definitions

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

const (
	tagBool = "!!bool"
	tagStr  = "!!str"
	tagNull = "!!null"
)

// ParseFile reads a definitions file and returns the validated table.
func ParseFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("module definitions not found: %s", path)).
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.FileSystemError(err, fmt.Sprintf("reading module definitions %s", path)).Build()
	}
	return Parse(data)
}

// Parse decodes a definitions document and validates every entry.
func Parse(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "parsing module definitions").Build()
	}

	if len(doc.Content) == 0 {
		return nil, ferrors.ValidationError("module definitions document is empty").Build()
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ferrors.ValidationError("module definitions must be a mapping with a 'modules' key").Build()
	}

	modules := lookup(root, "modules")
	if modules == nil {
		return nil, ferrors.ValidationError("module definitions missing required 'modules' key").Build()
	}
	if modules.Kind == yaml.ScalarNode && modules.ShortTag() == tagNull {
		return NewTable(nil)
	}
	if modules.Kind != yaml.MappingNode {
		return nil, ferrors.ValidationError("'modules' must be a mapping of module name to entry").
			WithContext("line", modules.Line).
			Build()
	}

	defs := make([]ModuleDefinition, 0, len(modules.Content)/2)
	for i := 0; i+1 < len(modules.Content); i += 2 {
		key := resolve(modules.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, ferrors.ValidationError("module names must be strings").
				WithContext("line", key.Line).
				Build()
		}
		def, err := parseEntry(key.Value, resolve(modules.Content[i+1]))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return NewTable(defs)
}

// parseEntry validates one positional [IsRuntime, Description, Public, Private] entry.
func parseEntry(name string, n *yaml.Node) (ModuleDefinition, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 4 {
		return ModuleDefinition{}, entryError(name, "", n,
			fmt.Sprintf("module '%s' entry must be [IsRuntime, Description, PublicDependencies, PrivateDependencies]", name))
	}

	def := ModuleDefinition{Name: name}

	runtime := resolve(n.Content[0])
	if runtime.Kind != yaml.ScalarNode || runtime.ShortTag() != tagBool {
		return def, entryError(name, FieldIsRuntime, runtime,
			fmt.Sprintf("module '%s' %s must be a bool, got %s", name, FieldIsRuntime, describe(runtime)))
	}
	if err := runtime.Decode(&def.IsRuntime); err != nil {
		return def, entryError(name, FieldIsRuntime, runtime, fmt.Sprintf("module '%s' %s: %v", name, FieldIsRuntime, err))
	}

	desc := resolve(n.Content[1])
	if desc.Kind != yaml.ScalarNode || desc.ShortTag() != tagStr {
		return def, entryError(name, FieldDescription, desc,
			fmt.Sprintf("module '%s' %s must be a string, got %s", name, FieldDescription, describe(desc)))
	}
	def.Description = desc.Value

	var err error
	if def.PublicDependencies, err = stringList(name, FieldPublicDependencies, resolve(n.Content[2])); err != nil {
		return def, err
	}
	if def.PrivateDependencies, err = stringList(name, FieldPrivateDependencies, resolve(n.Content[3])); err != nil {
		return def, err
	}
	return def, nil
}

// stringList accepts a sequence of string scalars; null reads as an empty list.
func stringList(module, field string, n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull {
		return []string{}, nil
	}
	msg := fmt.Sprintf("module '%s' %s must be a list of strings, got %s", module, field, describe(n))
	if n.Kind != yaml.SequenceNode {
		return nil, entryError(module, field, n, msg)
	}

	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode || item.ShortTag() != tagStr {
			return nil, entryError(module, field, item,
				fmt.Sprintf("module '%s' %s must be a list of strings, found %s item", module, field, describe(item)))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func entryError(module, field string, n *yaml.Node, msg string) error {
	b := ferrors.ValidationError(msg).
		WithContext("module", module).
		WithContext("line", n.Line)
	if field != "" {
		b = b.WithContext("field", field)
	}
	return b.Build()
}

// describe names a node's shape for error messages.
func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case tagStr:
			return fmt.Sprintf("string %q", n.Value)
		case tagNull:
			return "null"
		default:
			return fmt.Sprintf("%s %s", strings.TrimPrefix(n.ShortTag(), "!!"), n.Value)
		}
	default:
		return "unsupported value"
	}
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}
