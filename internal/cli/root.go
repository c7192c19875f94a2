package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/config"
	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// app carries state shared by the command tree of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds plugin modules from a declarative module table.

For every module it merges the shared default dependencies with the module's
own, writes <Name>/<Name>.Build.cs, Public/<Name>.h and Private/<Name>.cpp
under the source root, and upserts the module into the plugin manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), a.verbose)

			// Commands that never read project configuration.
			if cmd.Name() == "version" || cmd.Name() == "init" {
				return nil
			}
			return config.Load(a.v, a.configFile)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", fmt.Sprintf("Config file (default: ./%s)", config.FileName()))
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.String("source-root", "", "Directory that holds the plugin's module folders")
	pf.String("manifest", "", "Path to the plugin manifest (.uplugin)")
	pf.String("definitions", "", "Path to the module definitions file (default: modules.yaml)")
	pf.String("copyright", "", "Copyright notice for the first line of generated build rules")

	for key, flag := range map[string]string{
		config.KeySourceRoot:  "source-root",
		config.KeyManifest:    "manifest",
		config.KeyDefinitions: "definitions",
		config.KeyCopyright:   "copyright",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setupLogging installs a text slog handler as the default logger.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{v: config.New()}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	adapter := ferrors.NewCLIErrorAdapter(a.verbose, slog.Default())
	fmt.Fprintln(stderr, adapter.FormatError(err))
	return adapter.HandleError(err)
}
