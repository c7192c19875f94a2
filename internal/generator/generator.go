// Package generator drives a modforge run: for every module of a validated
// definition table it merges dependencies, writes the module's files and
// collects a manifest entry, then upserts all entries into the plugin
// manifest in one batch and writes the manifest once.
//
// Runs are not transactional. If writing a module fails, files of earlier
// modules stay on disk and the manifest keeps its pre-run contents.
package generator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/modforge-labs/modforge/internal/definitions"
	"github.com/modforge-labs/modforge/internal/deps"
	ferrors "github.com/modforge-labs/modforge/internal/errors"
	"github.com/modforge-labs/modforge/internal/logfields"
	"github.com/modforge-labs/modforge/internal/manifest"
	"github.com/modforge-labs/modforge/internal/scaffold"
)

// Options configures a run.
type Options struct {
	SourceRoot   string
	ManifestPath string
	Table        *definitions.Table
	Defaults     deps.Defaults
	Copyright    string

	// DryRun renders everything but writes nothing.
	DryRun bool
	// Bump, when set, increments the manifest version after the upsert.
	Bump manifest.BumpPart
}

// Summary reports what a run did (or, for a dry run, would do).
type Summary struct {
	Modules         int
	Files           []string // relative to the source root
	Inserted        []string
	Updated         []string
	Version         string // new VersionName when Bump was set
	ManifestPath    string
	ManifestChanged bool
	DryRun          bool
}

// Run executes one generation pass.
func Run(opts Options) (*Summary, error) {
	if opts.Table == nil {
		return nil, ferrors.NewError(ferrors.CategoryInternal, "no module definition table").Build()
	}
	if err := checkInputs(opts); err != nil {
		return nil, err
	}

	doc, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	summary := &Summary{ManifestPath: opts.ManifestPath, DryRun: opts.DryRun}
	entries := make([]manifest.Entry, 0, opts.Table.Len())

	for _, def := range opts.Table.Modules() {
		resolved := deps.Resolve(def, opts.Defaults)
		data := &scaffold.ModuleData{
			Name:                def.Name,
			PublicDependencies:  resolved.Public,
			PrivateDependencies: resolved.Private,
			Copyright:           opts.Copyright,
		}

		files, err := writeOrPlan(opts, data)
		if err != nil {
			return nil, err
		}
		summary.Files = append(summary.Files, files...)

		entry := manifest.NewEntry(def.Name, def.IsRuntime, def.Description)
		entries = append(entries, entry)
		summary.Modules++

		slog.Info("Module scaffolded",
			logfields.Module(def.Name),
			logfields.Type(string(entry.Type)),
			slog.Bool("dry_run", opts.DryRun))
	}

	result, err := doc.Upsert(entries)
	if err != nil {
		return nil, err
	}
	summary.Inserted = result.Inserted
	summary.Updated = result.Updated

	if opts.Bump != "" {
		version, err := doc.BumpVersion(opts.Bump)
		if err != nil {
			return nil, err
		}
		summary.Version = version
	}

	changed, err := doc.Changed()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "rendering plugin manifest").Build()
	}
	summary.ManifestChanged = changed

	if !opts.DryRun {
		if err := doc.Save(opts.ManifestPath); err != nil {
			return nil, err
		}
	}

	slog.Info("Generation complete",
		logfields.Count(summary.Modules),
		logfields.Path(opts.ManifestPath),
		slog.Int("inserted", len(summary.Inserted)),
		slog.Int("updated", len(summary.Updated)))
	return summary, nil
}

// Check validates the run inputs and the manifest without rendering or
// writing anything.
func Check(opts Options) error {
	if err := checkInputs(opts); err != nil {
		return err
	}
	doc, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return err
	}
	_, err = doc.ModuleNames()
	return err
}

func checkInputs(opts Options) error {
	if _, err := os.Stat(opts.ManifestPath); err != nil {
		return statError(err, "plugin manifest", opts.ManifestPath)
	}
	info, err := os.Stat(opts.SourceRoot)
	if err != nil {
		return statError(err, "source folder", opts.SourceRoot)
	}
	if !info.IsDir() {
		return ferrors.FileSystemError(fmt.Errorf("not a directory"), fmt.Sprintf("source folder %s", opts.SourceRoot)).
			WithContext("path", opts.SourceRoot).
			Build()
	}
	return nil
}

// statError reports a missing path as not_found and any other stat failure
// as a filesystem error.
func statError(err error, what, path string) error {
	if os.IsNotExist(err) {
		return ferrors.NotFoundError(fmt.Sprintf("%s not found: %s", what, path)).
			WithContext("path", path).
			Build()
	}
	return ferrors.FileSystemError(err, fmt.Sprintf("checking %s %s", what, path)).
		WithContext("path", path).
		Build()
}

func writeOrPlan(opts Options, data *scaffold.ModuleData) ([]string, error) {
	if opts.DryRun {
		if _, err := scaffold.Plan(data); err != nil {
			return nil, err
		}
		files := make([]string, 0, len(scaffold.Kinds))
		for _, kind := range scaffold.Kinds {
			files = append(files, kind.RelPath(data.Name))
		}
		return files, nil
	}

	result, err := scaffold.WriteModule(opts.SourceRoot, data)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}
