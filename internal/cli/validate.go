package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/generator"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the definitions, source root and manifest without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			if err := generator.Check(*opts); err != nil {
				return err
			}

			st := newStyles(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), st.ok.Render(
				fmt.Sprintf("OK: %d module(s) defined, manifest %s is valid", opts.Table.Len(), opts.ManifestPath)))
			return nil
		},
	}
}
