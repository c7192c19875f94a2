package definitions

import (
	"fmt"
	"regexp"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field names used in validation messages, in positional order.
const (
	FieldIsRuntime           = "IsRuntime"
	FieldDescription         = "Description"
	FieldPublicDependencies  = "PublicDependencies"
	FieldPrivateDependencies = "PrivateDependencies"
)

// ModuleDefinition describes one module to scaffold.
type ModuleDefinition struct {
	Name                string
	IsRuntime           bool
	Description         string
	PublicDependencies  []string
	PrivateDependencies []string
}

// Table is a validated, ordered set of module definitions.
type Table struct {
	modules []ModuleDefinition
}

// NewTable validates defs and returns them as a Table in the given order.
func NewTable(defs []ModuleDefinition) (*Table, error) {
	seen := make(map[string]bool, len(defs))
	modules := make([]ModuleDefinition, 0, len(defs))

	for i, def := range defs {
		if err := validateName(def.Name); err != nil {
			return nil, ferrors.ValidationError(err.Error()).
				WithContext("index", i).
				WithContext("module", def.Name).
				Build()
		}
		if seen[def.Name] {
			return nil, ferrors.ValidationError(fmt.Sprintf("module '%s' is defined more than once", def.Name)).
				WithContext("module", def.Name).
				Build()
		}
		seen[def.Name] = true

		def.PublicDependencies = cloneStrings(def.PublicDependencies)
		def.PrivateDependencies = cloneStrings(def.PrivateDependencies)
		modules = append(modules, def)
	}

	return &Table{modules: modules}, nil
}

// Modules returns the definitions in declaration order.
func (t *Table) Modules() []ModuleDefinition {
	out := make([]ModuleDefinition, len(t.modules))
	copy(out, t.modules)
	return out
}

// Len returns the number of modules in the table.
func (t *Table) Len() int { return len(t.modules) }

// Names returns the module names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.modules))
	for i, m := range t.modules {
		names[i] = m.Name
	}
	return names
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("module name must not be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid module name %q: must match pattern [A-Za-z_][A-Za-z0-9_]*", name)
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
