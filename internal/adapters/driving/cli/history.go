package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and review search history",
}

var historySaveCmd = &cobra.Command{
	Use:   "save <query>",
	Short: "Append a search query to the history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySave,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show search counts and the most frequent queries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (0 = retention limit)")
	historyStatsCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of top queries (0 = configured default)")
	historyCmd.AddCommand(historySaveCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistorySave(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.History.SaveSearchHistory(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved.")
	return nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	entries, err := s.History.GetSearchHistory(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return outputHistory(cmd, entries)
}

func runHistoryStats(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	stats, err := s.Stats.GetSearchHistoryStats(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, stats)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Total searches: %d\n", stats.TotalSearches)
	fmt.Fprintf(w, "Unique queries: %d\n", stats.UniqueQueries)
	if len(stats.TopQueries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top queries:")
		for _, q := range stats.TopQueries {
			fmt.Fprintf(w, "  %4d  %s\n", q.Count, q.Query)
		}
	}
	return nil
}

func outputHistory(cmd *cobra.Command, entries []domain.SearchHistoryEntry) error {
	if outputJSON {
		return printJSON(cmd, entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %s\n", e.SearchedAt.Local().Format(time.DateTime), e.Query)
	}
	return nil
}
