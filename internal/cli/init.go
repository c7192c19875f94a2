package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/deps"
	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

const (
	starterSourceRoot = "Source"
	starterManifest   = "Plugin.uplugin"
)

// starterDefinitions is the module table written by init. Each entry is
// [is_runtime, description, public_dependencies, private_dependencies].
const starterDefinitions = `# Module definitions. Each entry is:
#   Name: [is_runtime, description, [public deps], [private deps]]
# Runtime modules get Type "Runtime". Non-runtime modules get "Editor" when
# the name ends in "Editor", otherwise "Developer".
modules:
  ISMRuntimePools:       [true,  "", [], []]
  ISMRuntimeSpatial:     [true,  "", [], []]
  ISMRuntimeInteraction: [true,  "", [ISMRuntimeSpatial], [UMG, Slate, SlateCore]]
  ISMRuntimeDebug:       [false, "", [], [ISMRuntimePools, ISMRuntimeSpatial]]
  ISMRuntimeEditor:      [false, "", [UnrealEd, ISMRuntimePools], [UMG, Slate, SlateCore]]
`

func newInitCmd(a *app) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config and module definitions file",
		Long: fmt.Sprintf(`Write a starter %s and definitions file into a directory.

Values given with --source-root, --manifest, --definitions or --copyright are
written into the config; the rest use defaults. Existing files are kept
unless --force is set.`, config.FileName()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Settings{
				SourceRoot:  stringOr(a.v.GetString(config.KeySourceRoot), starterSourceRoot),
				Manifest:    stringOr(a.v.GetString(config.KeyManifest), starterManifest),
				Definitions: a.v.GetString(config.KeyDefinitions),
				Defaults: deps.Defaults{
					Public:  config.DefaultPublicDependencies,
					Private: []string{},
				},
				Copyright: a.v.GetString(config.KeyCopyright),
			}
			cfg, err := config.Starter(settings)
			if err != nil {
				return ferrors.WrapError(err, ferrors.CategoryInternal, "rendering starter config").Build()
			}

			files := []struct {
				path string
				data []byte
			}{
				{filepath.Join(dir, config.FileName()), cfg},
				{filepath.Join(dir, settings.Definitions), []byte(starterDefinitions)},
			}

			if !force {
				for _, f := range files {
					if _, err := os.Stat(f.path); err == nil {
						return ferrors.ConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", f.path)).
							WithContext("path", f.path).
							Build()
					} else if !errors.Is(err, os.ErrNotExist) {
						return ferrors.FileSystemError(err, fmt.Sprintf("checking %s", f.path)).Build()
					}
				}
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return ferrors.FileSystemError(err, fmt.Sprintf("creating %s", dir)).Build()
			}
			for _, f := range files {
				if err := os.WriteFile(f.path, f.data, 0644); err != nil {
					return ferrors.FileSystemError(err, fmt.Sprintf("writing %s", f.path)).
						WithContext("path", f.path).
						Build()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the starter files into")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
