// Package deps merges per-module dependency lists with the project-wide
// defaults. Merging is pure: defaults are passed in by the caller rather than
// read from package state.
package deps

import "github.com/modforge-labs/modforge/internal/definitions"

// Defaults holds the dependency names applied to every module before its own.
type Defaults struct {
	Public  []string `mapstructure:"public" yaml:"public"`
	Private []string `mapstructure:"private" yaml:"private"`
}

// Resolved holds a module's merged dependency lists.
type Resolved struct {
	Public  []string
	Private []string
}

// Merge concatenates defaults and specific, dropping empty names and keeping
// the first occurrence of each name.
func Merge(defaults, specific []string) []string {
	seen := make(map[string]bool, len(defaults)+len(specific))
	out := make([]string, 0, len(defaults)+len(specific))
	for _, list := range [][]string{defaults, specific} {
		for _, name := range list {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Resolve merges a module's public and private lists independently.
func Resolve(def definitions.ModuleDefinition, defaults Defaults) Resolved {
	return Resolved{
		Public:  Merge(defaults.Public, def.PublicDependencies),
		Private: Merge(defaults.Private, def.PrivateDependencies),
	}
}
