package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the retention and refresh policy. Settings are stored in
config.toml inside the data directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Recognised keys:
  history.max_entries       search history entries kept (>= 1)
  popular.refresh_interval  how long a popular snapshot stays fresh (e.g. 24h)
  stats.top_limit           default size of top-N statistics (1-100)
  stats.monthly_window      default months of favorites per month (1-120)

Values starting with "-" must follow "--", e.g. boothcache settings set -- key -1h.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	policy := s.Settings.Policy()
	if outputJSON {
		return printJSON(cmd, settingsView(policy))
	}

	defaults := s.Settings.GetDefaults()
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Current Settings")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)
	printSetting(w, "history.max_entries", policy.HistoryMaxEntries, defaults.HistoryMaxEntries)
	printSetting(w, "popular.refresh_interval", policy.PopularRefreshInterval, defaults.PopularRefreshInterval)
	printSetting(w, "stats.top_limit", policy.StatsTopLimit, defaults.StatsTopLimit)
	printSetting(w, "stats.monthly_window", policy.StatsMonthlyWindow, defaults.StatsMonthlyWindow)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated.\n", args[0])
	return nil
}

func printSetting[T comparable](w io.Writer, key string, value, def T) {
	suffix := ""
	if value == def {
		suffix = " (default)"
	}
	fmt.Fprintf(w, "  %-26s %v%s\n", key, value, suffix)
}

func settingsView(p domain.Policy) map[string]any {
	return map[string]any{
		"history.max_entries":      p.HistoryMaxEntries,
		"popular.refresh_interval": p.PopularRefreshInterval.String(),
		"stats.top_limit":          p.StatsTopLimit,
		"stats.monthly_window":     p.StatsMonthlyWindow,
	}
}
