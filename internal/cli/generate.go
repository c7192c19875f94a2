package cli

import (
	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/definitions"
	"github.com/modforge-labs/modforge/internal/generator"
	"github.com/modforge-labs/modforge/internal/manifest"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		bump   string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Scaffold every module and update the plugin manifest",
		Long: `Scaffold every module in the definitions file.

Each module gets <Name>/<Name>.Build.cs, <Name>/Public/<Name>.h and
<Name>/Private/<Name>.cpp under the source root; existing files are
overwritten. The plugin manifest's Modules array is then upserted by name and
sorted. Rerunning with unchanged inputs leaves every file byte-identical.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var part manifest.BumpPart
			if bump != "" {
				p, err := manifest.ParseBumpPart(bump)
				if err != nil {
					return err
				}
				part = p
			}
			opts, err := a.options()
			if err != nil {
				return err
			}
			opts.DryRun = dryRun
			opts.Bump = part

			summary, err := generator.Run(*opts)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render everything but write nothing")
	cmd.Flags().StringVar(&bump, "bump-version", "", "Increment the manifest version (patch, minor or major)")
	return cmd
}

// options resolves configuration and the definitions table into run options.
func (a *app) options() (*generator.Options, error) {
	settings, err := config.Resolve(a.v)
	if err != nil {
		return nil, err
	}
	table, err := definitions.ParseFile(settings.Definitions)
	if err != nil {
		return nil, err
	}
	return &generator.Options{
		SourceRoot:   settings.SourceRoot,
		ManifestPath: settings.Manifest,
		Table:        table,
		Defaults:     settings.Defaults,
		Copyright:    settings.Copyright,
	}, nil
}
