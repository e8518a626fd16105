package cli

import (
	"fmt"

	"github.com/agentx-labs/addonctl/internal/branding"
	"github.com/agentx-labs/addonctl/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` finds add-ons (extensions, themes, plugins, dictionaries and locales)
in a local catalog, installs them and manages the installed ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// loadApp builds the add-on services from the loaded configuration.
func loadApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.Current()
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), settings.LogLevel, verbose)
	return newApp(settings, logger)
}
