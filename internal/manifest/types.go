package manifest

import "strings"

// ModuleType is the manifest classification of a module.
type ModuleType string

// Module types written by modforge.
const (
	TypeRuntime   ModuleType = "Runtime"
	TypeEditor    ModuleType = "Editor"
	TypeDeveloper ModuleType = "Developer"
)

// LoadingPhaseDefault is the loading phase of every generated entry.
const LoadingPhaseDefault = "Default"

// Manifest keys owned by modforge.
const (
	KeyModules      = "Modules"
	KeyName         = "Name"
	KeyType         = "Type"
	KeyLoadingPhase = "LoadingPhase"
	KeyDescription  = "Description"
	KeyVersion      = "Version"
	KeyVersionName  = "VersionName"
)

// Entry is the descriptor modforge upserts for one module.
type Entry struct {
	Name         string
	Type         ModuleType
	LoadingPhase string
	Description  string
}

// TypeFor derives a module's type: runtime modules are Runtime, modules whose
// name ends in "Editor" are Editor, everything else is Developer.
func TypeFor(name string, isRuntime bool) ModuleType {
	if isRuntime {
		return TypeRuntime
	}
	if strings.HasSuffix(name, "Editor") {
		return TypeEditor
	}
	return TypeDeveloper
}

// NewEntry builds the descriptor for a module with the default loading phase.
func NewEntry(name string, isRuntime bool, description string) Entry {
	return Entry{
		Name:         name,
		Type:         TypeFor(name, isRuntime),
		LoadingPhase: LoadingPhaseDefault,
		Description:  description,
	}
}

// object renders the entry as a manifest object. Description is omitted when empty.
func (e Entry) object() *Object {
	o := NewObject()
	o.mustSet(KeyName, e.Name)
	o.mustSet(KeyType, string(e.Type))
	o.mustSet(KeyLoadingPhase, e.LoadingPhase)
	if e.Description != "" {
		o.mustSet(KeyDescription, e.Description)
	}
	return o
}
