package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

func TestRenderBuildConfig(t *testing.T) {
	data := &ModuleData{
		Name:                "ISMRuntimeInteraction",
		PublicDependencies:  []string{"Core", "ISMRuntimeSpatial"},
		PrivateDependencies: []string{"UMG"},
	}

	got, err := Render(KindBuildConfig, data)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := `using UnrealBuildTool;

public class ISMRuntimeInteraction : ModuleRules
{
    public ISMRuntimeInteraction(ReadOnlyTargetRules Target) : base(Target)
    {
        PCHUsage = ModuleRules.PCHUsageMode.UseExplicitOrSharedPCHs;

        PublicDependencyModuleNames.AddRange(
            new string[]
            {
                "Core",
                "ISMRuntimeSpatial",
            }
        );

        PrivateDependencyModuleNames.AddRange(
            new string[]
            {
                "UMG",
            }
        );
    }
}
`
	if got != want {
		t.Errorf("build config mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderBuildConfigEmptyLists(t *testing.T) {
	got, err := Render(KindBuildConfig, &ModuleData{Name: "A"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Both call-outs stay, each with an empty body line.
	assertContains(t, got, "PublicDependencyModuleNames.AddRange(\n            new string[]\n            {\n\n            }")
	assertContains(t, got, "PrivateDependencyModuleNames.AddRange(\n            new string[]\n            {\n\n            }")
}

func TestRenderBuildConfigCopyright(t *testing.T) {
	got, err := Render(KindBuildConfig, &ModuleData{Name: "A", Copyright: "Copyright Example Studio"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.HasPrefix(got, "// Copyright Example Studio\n\nusing UnrealBuildTool;\n") {
		t.Errorf("unexpected header:\n%s", got)
	}

	plain, _ := Render(KindBuildConfig, &ModuleData{Name: "A"})
	if !strings.HasPrefix(plain, "using UnrealBuildTool;\n") {
		t.Errorf("build config without copyright should start with using, got:\n%s", plain)
	}
}

func TestRenderHeader(t *testing.T) {
	got, err := Render(KindHeader, &ModuleData{Name: "ISMRuntimePools"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := `#pragma once

#include "Modules/ModuleManager.h"

class FISMRuntimePools : public IModuleInterface
{
public:
    virtual void StartupModule() override;
    virtual void ShutdownModule() override;
};
`
	if got != want {
		t.Errorf("header mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderImplementation(t *testing.T) {
	got, err := Render(KindImplementation, &ModuleData{Name: "ISMRuntimePools"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	assertContains(t, got, "#include \"ISMRuntimePools.h\"\n")
	assertContains(t, got, "#define LOCTEXT_NAMESPACE \"FISMRuntimePoolsModule\"")
	assertContains(t, got, "void FISMRuntimePools::StartupModule()\n{\n}")
	assertContains(t, got, "void FISMRuntimePools::ShutdownModule()\n{\n}")
	if !strings.HasSuffix(got, "IMPLEMENT_MODULE(FISMRuntimePools, ISMRuntimePools)\n") {
		t.Errorf("implementation should end with IMPLEMENT_MODULE, got:\n%s", got)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Render(Kind(42), &ModuleData{Name: "A"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBuildConfig, "A/A.Build.cs"},
		{KindHeader, "A/Public/A.h"},
		{KindImplementation, "A/Private/A.cpp"},
	}
	for _, tt := range tests {
		if got := tt.kind.RelPath("A"); got != tt.want {
			t.Errorf("%v.RelPath(A) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestWriteModule(t *testing.T) {
	root := t.TempDir()
	data := &ModuleData{Name: "A", PublicDependencies: []string{"Core"}}

	result, err := WriteModule(root, data)
	if err != nil {
		t.Fatalf("WriteModule() error: %v", err)
	}

	assertFiles(t, result, []string{"A/A.Build.cs", "A/Public/A.h", "A/Private/A.cpp"})
	assertContains(t, readGenerated(t, root, "A/A.Build.cs"), "                \"Core\",\n")
	assertContains(t, readGenerated(t, root, "A/Public/A.h"), "class FA : public IModuleInterface")
	assertContains(t, readGenerated(t, root, "A/Private/A.cpp"), "IMPLEMENT_MODULE(FA, A)")
}

func TestWriteModuleOverwrites(t *testing.T) {
	root := t.TempDir()
	data := &ModuleData{Name: "A", PublicDependencies: []string{"Core"}}

	if _, err := WriteModule(root, data); err != nil {
		t.Fatalf("first WriteModule() error: %v", err)
	}
	first := readGenerated(t, root, "A/A.Build.cs")

	// Hand edits to generated files are discarded on rerun.
	header := filepath.Join(root, "A", "Public", "A.h")
	if err := os.WriteFile(header, []byte("// edited\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Unrelated files in the module directory survive.
	extra := filepath.Join(root, "A", "Private", "Extra.cpp")
	if err := os.WriteFile(extra, []byte("// mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteModule(root, data); err != nil {
		t.Fatalf("second WriteModule() error: %v", err)
	}

	if got := readGenerated(t, root, "A/A.Build.cs"); got != first {
		t.Errorf("rerun changed build config:\n%s", got)
	}
	assertNotContains(t, readGenerated(t, root, "A/Public/A.h"), "// edited")
	if got := readGenerated(t, root, "A/Private/Extra.cpp"); got != "// mine\n" {
		t.Errorf("unrelated file changed: %q", got)
	}
}

func TestWriteModuleMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	_, err := WriteModule(root, &ModuleData{Name: "A"})
	if err == nil {
		t.Fatal("expected error for missing source root")
	}
	if !ferrors.HasCategory(err, ferrors.CategoryFileSystem) {
		t.Errorf("expected filesystem error, got %v", err)
	}
	if _, statErr := os.Stat(root); !os.IsNotExist(statErr) {
		t.Error("missing source root must not be created")
	}
}

func TestWriteModuleRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteModule(root, &ModuleData{Name: "A"}); err == nil {
		t.Fatal("expected error when source root is a file")
	}
}

func TestPlan(t *testing.T) {
	files, err := Plan(&ModuleData{Name: "B"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Plan() returned %d files, want 3", len(files))
	}
	assertContains(t, files["B/Private/B.cpp"], "IMPLEMENT_MODULE(FB, B)")
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
