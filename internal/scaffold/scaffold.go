package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
	"github.com/modforge-labs/modforge/internal/logfields"
)

// Result holds the outcome of writing one module.
type Result struct {
	ModuleDir string
	Files     []string // paths relative to the source root, slash-separated
}

// Plan renders every file for a module without touching the filesystem.
// The returned map is keyed by path relative to the source root.
func Plan(data *ModuleData) (map[string]string, error) {
	out := make(map[string]string, len(Kinds))
	for _, kind := range Kinds {
		text, err := Render(kind, data)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal,
				fmt.Sprintf("rendering %s for module '%s'", kind, data.Name)).Build()
		}
		out[kind.RelPath(data.Name)] = text
	}
	return out, nil
}

// WriteModule creates <sourceRoot>/<Name>/{Public,Private} and writes the
// build rules, header and implementation files, overwriting existing ones.
// Files already written are left in place if a later write fails.
func WriteModule(sourceRoot string, data *ModuleData) (*Result, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		return nil, ferrors.FileSystemError(err, fmt.Sprintf("source root %s is not accessible", sourceRoot)).
			WithContext("path", sourceRoot).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.FileSystemError(fmt.Errorf("not a directory"), fmt.Sprintf("source root %s", sourceRoot)).
			WithContext("path", sourceRoot).
			Build()
	}

	moduleDir := filepath.Join(sourceRoot, data.Name)
	for _, sub := range []string{"Public", "Private"} {
		dir := filepath.Join(moduleDir, sub)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, ferrors.FileSystemError(err, fmt.Sprintf("creating directory %s", dir)).
				WithContext("module", data.Name).
				WithContext("path", dir).
				Build()
		}
	}

	result := &Result{ModuleDir: moduleDir}
	for _, kind := range Kinds {
		text, err := Render(kind, data)
		if err != nil {
			return result, ferrors.WrapError(err, ferrors.CategoryInternal,
				fmt.Sprintf("rendering %s for module '%s'", kind, data.Name)).Build()
		}

		rel := kind.RelPath(data.Name)
		outPath := filepath.Join(sourceRoot, filepath.FromSlash(rel))
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return result, ferrors.FileSystemError(err, fmt.Sprintf("writing %s", outPath)).
				WithContext("module", data.Name).
				WithContext("path", outPath).
				Build()
		}
		slog.Debug("Wrote module file", logfields.Module(data.Name), logfields.Path(outPath))
		result.Files = append(result.Files, rel)
	}

	return result, nil
}
