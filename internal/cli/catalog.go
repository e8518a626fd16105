package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/config"
	"github.com/agentx-labs/addonctl/internal/manifest"
	"github.com/agentx-labs/addonctl/internal/registry"
	"github.com/spf13/cobra"
)

var (
	searchTypeFilter string
	searchJSON       bool
)

func init() {
	catalogSearchCmd.Flags().StringVar(&searchTypeFilter, "type", string(addon.Extension), "Add-on type (dictionary, extension, locale, plugin, theme)")
	catalogSearchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	catalogCmd.AddCommand(catalogSearchCmd, catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the add-on catalog",
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Search the catalog for add-ons whose name, description or tags contain the
query, or whose name is a near miss for it. Results are ranked the same way
addon install ranks its candidates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogSearch,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <addon.yaml>...",
	Short: "Validate add-on manifests",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogValidate,
}

// searchEntry represents a catalog add-on for display.
type searchEntry struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source"`
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	category, ok := addon.ParseCategory(searchTypeFilter)
	if !ok {
		return fmt.Errorf("unknown add-on type %q", searchTypeFilter)
	}

	settings, err := config.Current()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), settings.LogLevel, verbose)

	discovered, err := registry.DiscoverCached(catalogSources(settings.CatalogDirs), settings.CachePath, logger)
	if err != nil {
		return fmt.Errorf("reading the catalog: %w", err)
	}

	var entries []searchEntry
	for _, e := range registry.Rank(query, discovered, category) {
		entries = append(entries, searchEntry{
			Type:        string(e.Category),
			Name:        e.Name,
			Version:     e.Version,
			Description: e.Description,
			Tags:        e.Tags,
			Source:      e.Source,
		})
	}

	if len(entries) == 0 {
		msg := "No " + category.Plural() + " found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling search results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Source, e.Description)
	}
	return w.Flush()
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			continue
		}
		failed++
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", path)
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", issue)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d manifests are invalid", failed, len(args))
	}
	return nil
}
