package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var installForce bool

func init() {
	addonInstallCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Cancel an add-on search that is still running")
	addonCmd.AddCommand(addonListCmd, addonEnableCmd, addonDisableCmd, addonInstallCmd, addonUninstallCmd)
	rootCmd.AddCommand(addonCmd)
}

var addonCmd = &cobra.Command{
	Use:   "addon",
	Short: "Manipulate add-ons",
}

var addonListCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List the installed add-ons",
	Long: `List the installed add-ons of one type: dictionary, extension, locale, plugin or theme.
Without a type, extensions are listed. Enabled add-ons come first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddon("list"),
}

var addonEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable the specified add-on",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddon("enable"),
}

var addonDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable the specified add-on",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddon("disable"),
}

var addonInstallCmd = &cobra.Command{
	Use:   "install <name> [force]",
	Short: "Install the specified add-on from the catalog",
	Long: `Search the catalog for the add-on and install the first result whose name
starts with the given name. Letter case, spaces and punctuation are ignored.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if installForce {
			if len(args) == 2 {
				return fmt.Errorf("--force cannot be combined with the force argument %q", args[1])
			}
			args = append(args, strconv.FormatBool(true))
		}
		return runAddon("install")(cmd, args)
	},
}

var addonUninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Uninstall the specified add-on",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddon("uninstall"),
}

// runAddon dispatches "addon <sub> args..." through the command registry.
func runAddon(sub string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		words := append([]string{"addon", sub}, args...)
		out, err := a.commands.Dispatch(words)
		if err != nil {
			return err
		}
		return awaitOutcome(cmd.Context(), out, cmd.OutOrStdout(), cmd.ErrOrStderr(), a.repo.Close)
	}
}
