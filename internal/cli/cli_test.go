package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	Dir        string
	SourceRoot string
	Manifest   string
	ConfigPath string
}

func newProject(t *testing.T, definitions string) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		Dir:        dir,
		SourceRoot: filepath.Join(dir, "Source"),
		Manifest:   filepath.Join(dir, "Utils.uplugin"),
		ConfigPath: filepath.Join(dir, "modforge.yaml"),
	}
	require.NoError(t, os.MkdirAll(p.SourceRoot, 0755))
	require.NoError(t, os.WriteFile(p.Manifest, []byte(`{"FileVersion":3,"VersionName":"1.0.0","Modules":[]}`), 0644))

	defsPath := filepath.Join(dir, "modules.yaml")
	require.NoError(t, os.WriteFile(defsPath, []byte(definitions), 0644))

	cfg := fmt.Sprintf("source_root: %s\nmanifest: %s\ndefinitions: %s\ndefaults:\n  public: [Core, Engine]\n  private: []\n",
		p.SourceRoot, p.Manifest, defsPath)
	require.NoError(t, os.WriteFile(p.ConfigPath, []byte(cfg), 0644))
	return p
}

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

const twoModules = `modules:
  ISMRuntimePools: [true, "", [], []]
  ISMRuntimeEditor: [false, "Editor tooling", [UnrealEd], [UMG]]
`

func TestGenerate(t *testing.T) {
	p := newProject(t, twoModules)

	code, out, errOut := execute(t, "generate", "--config", p.ConfigPath)
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "Generated 2 module(s)")
	assert.Contains(t, out, "ISMRuntimePools/ISMRuntimePools.Build.cs")
	assert.Contains(t, out, "+ ISMRuntimeEditor")
	assert.Contains(t, out, "Manifest updated: "+p.Manifest)

	build, err := os.ReadFile(filepath.Join(p.SourceRoot, "ISMRuntimeEditor", "ISMRuntimeEditor.Build.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(build), "                \"Core\",\n                \"Engine\",\n                \"UnrealEd\",\n")

	var m struct {
		Modules []map[string]string
	}
	data, err := os.ReadFile(p.Manifest)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))
	require.Len(t, m.Modules, 2)
	assert.Equal(t, "ISMRuntimeEditor", m.Modules[0]["Name"])
	assert.Equal(t, "Editor", m.Modules[0]["Type"])
	assert.Equal(t, "ISMRuntimePools", m.Modules[1]["Name"])
	assert.Equal(t, "Runtime", m.Modules[1]["Type"])

	// A second run changes nothing.
	code, out, _ = execute(t, "generate", "--config", p.ConfigPath)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Manifest unchanged")
	again, err := os.ReadFile(p.Manifest)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestGenerate_FlagsOverrideConfig(t *testing.T) {
	p := newProject(t, twoModules)
	other := filepath.Join(p.Dir, "Other")
	require.NoError(t, os.MkdirAll(other, 0755))

	code, _, errOut := execute(t, "generate", "--config", p.ConfigPath, "--source-root", other)
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.FileExists(t, filepath.Join(other, "ISMRuntimePools", "Public", "ISMRuntimePools.h"))
	assert.NoDirExists(t, filepath.Join(p.SourceRoot, "ISMRuntimePools"))
}

func TestGenerate_DryRun(t *testing.T) {
	p := newProject(t, twoModules)

	code, out, errOut := execute(t, "generate", "--config", p.ConfigPath, "--dry-run")
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "Dry run: would generate 2 module(s)")
	assert.Contains(t, out, "Manifest would be updated")
	assert.NoDirExists(t, filepath.Join(p.SourceRoot, "ISMRuntimePools"))
}

func TestGenerate_BumpVersion(t *testing.T) {
	p := newProject(t, twoModules)

	code, out, errOut := execute(t, "generate", "--config", p.ConfigPath, "--bump-version", "patch")
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "Version: 1.0.1")

	code, _, errOut = execute(t, "generate", "--config", p.ConfigPath, "--bump-version", "huge")
	assert.Equal(t, 7, code)
	assert.Contains(t, errOut, "Error:")
}

func TestGenerate_ExitCodes(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		p := newProject(t, twoModules)
		require.NoError(t, os.Remove(p.Manifest))

		code, _, errOut := execute(t, "generate", "--config", p.ConfigPath)
		assert.Equal(t, 4, code)
		assert.Contains(t, errOut, "plugin manifest not found")
	})

	t.Run("invalid definitions", func(t *testing.T) {
		p := newProject(t, "modules:\n  A: [true, \"\", []]\n")

		code, _, _ := execute(t, "generate", "--config", p.ConfigPath)
		assert.Equal(t, 2, code)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		p := newProject(t, twoModules)
		require.NoError(t, os.WriteFile(p.Manifest, []byte(`{"Modules":{}}`), 0644))

		code, _, _ := execute(t, "generate", "--config", p.ConfigPath)
		assert.Equal(t, 3, code)
		assert.NoDirExists(t, filepath.Join(p.SourceRoot, "ISMRuntimePools"))
	})

	t.Run("missing config file", func(t *testing.T) {
		code, _, _ := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Equal(t, 4, code)
	})

	t.Run("unset source root", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "modforge.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("manifest: x.uplugin\n"), 0644))

		code, _, errOut := execute(t, "generate", "--config", cfg)
		assert.Equal(t, 7, code)
		assert.Contains(t, errOut, "source_root is not set")
	})
}

func TestValidate(t *testing.T) {
	p := newProject(t, twoModules)

	code, out, errOut := execute(t, "validate", "--config", p.ConfigPath)
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "OK: 2 module(s) defined")
	assert.NoDirExists(t, filepath.Join(p.SourceRoot, "ISMRuntimePools"))

	require.NoError(t, os.WriteFile(p.Manifest, []byte(`{"Modules":["ISMRuntimePools"]}`), 0644))
	code, _, _ = execute(t, "validate", "--config", p.ConfigPath)
	assert.Equal(t, 3, code)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	code, out, errOut := execute(t, "init", "--dir", dir, "--copyright", "Copyright Example Studio")
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "Created "+filepath.Join(dir, "modforge.yaml"))

	cfg, err := os.ReadFile(filepath.Join(dir, "modforge.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "source_root: Source")
	assert.Contains(t, string(cfg), "manifest: Plugin.uplugin")
	assert.Contains(t, string(cfg), "copyright: Copyright Example Studio")
	assert.FileExists(t, filepath.Join(dir, "modules.yaml"))

	// Existing files are kept without --force.
	code, _, errOut = execute(t, "init", "--dir", dir)
	assert.Equal(t, 7, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = execute(t, "init", "--dir", dir, "--force")
	assert.Equal(t, 0, code)
}

func TestInit_StarterDefinitionsGenerate(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := execute(t, "init", "--dir", dir,
		"--source-root", filepath.Join(dir, "Source"),
		"--manifest", filepath.Join(dir, "Plugin.uplugin"),
		"--definitions", "modules.yaml")
	require.Equal(t, 0, code)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Source"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Plugin.uplugin"), []byte(`{"Modules":[]}`), 0644))

	// The starter config names the definitions file relative to the working
	// directory, so point at it explicitly.
	code, out, errOut := execute(t, "generate",
		"--config", filepath.Join(dir, "modforge.yaml"),
		"--definitions", filepath.Join(dir, "modules.yaml"))
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "Generated 5 module(s)")
}

func TestVersion(t *testing.T) {
	buildVersion = "1.2.3"
	t.Cleanup(func() { buildVersion = "dev" })

	code, out, _ := execute(t, "version", "--short")
	require.Equal(t, 0, code)
	assert.Equal(t, "1.2.3\n", out)

	code, out, _ = execute(t, "version", "--json")
	require.Equal(t, 0, code)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info["version"])

	code, out, _ = execute(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "modforge version 1.2.3")
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := execute(t, "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown command")
}
