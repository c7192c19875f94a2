package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Kind selects one of the three generated files.
type Kind int

const (
	KindBuildConfig Kind = iota
	KindHeader
	KindImplementation
)

// Kinds lists every kind in the order files are written.
var Kinds = []Kind{KindBuildConfig, KindHeader, KindImplementation}

// BuildConfigExt is the extension of the build rules file.
const BuildConfigExt = "Build.cs"

// depIndent is the indentation of one dependency line in the build rules file.
const depIndent = "                "

func (k Kind) String() string {
	switch k {
	case KindBuildConfig:
		return "build-config"
	case KindHeader:
		return "header"
	case KindImplementation:
		return "implementation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// templateName returns the embedded template file for a kind.
func (k Kind) templateName() string {
	switch k {
	case KindBuildConfig:
		return "build.cs.tmpl"
	case KindHeader:
		return "module.h.tmpl"
	case KindImplementation:
		return "module.cpp.tmpl"
	default:
		return ""
	}
}

// RelPath returns the file's path relative to the source root.
func (k Kind) RelPath(moduleName string) string {
	switch k {
	case KindBuildConfig:
		return path.Join(moduleName, moduleName+"."+BuildConfigExt)
	case KindHeader:
		return path.Join(moduleName, "Public", moduleName+".h")
	case KindImplementation:
		return path.Join(moduleName, "Private", moduleName+".cpp")
	default:
		return ""
	}
}

// ModuleData holds all template variables available to module templates.
// Dependency lists are expected to be merged and deduplicated already.
type ModuleData struct {
	Name                string
	PublicDependencies  []string
	PrivateDependencies []string
	Copyright           string // optional first-line notice in the build rules file
}

var funcs = template.FuncMap{
	"csList": csList,
}

// csList renders names as quoted, comma-terminated lines of a C# string array.
func csList(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = depIndent + `"` + n + `",`
	}
	return strings.Join(lines, "\n")
}

// Render fills the template for kind with data.
func Render(kind Kind, data *ModuleData) (string, error) {
	name := kind.templateName()
	if name == "" {
		return "", fmt.Errorf("unknown template kind %v", kind)
	}

	tmplBytes, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
