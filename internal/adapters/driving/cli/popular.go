package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

var popularFile string

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Maintain the popular items snapshot",
}

var popularCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the snapshot needs a refresh",
	Long: `Prints "update needed" when no snapshot exists or the last one is older
than popular.refresh_interval, and "up to date" otherwise.`,
	Args: cobra.NoArgs,
	RunE: runPopularCheck,
}

var popularUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the snapshot with a ranked JSON array of items",
	Long: `Reads a JSON array of items from --file or stdin. The first item is ranked
first. Readers see either the previous snapshot or the new one.`,
	Args: cobra.NoArgs,
	RunE: runPopularUpdate,
}

var popularListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the snapshot in rank order",
	Args:  cobra.NoArgs,
	RunE:  runPopularList,
}

func init() {
	popularUpdateCmd.Flags().StringVarP(&popularFile, "file", "f", "", "read items from file instead of stdin")
	popularCmd.AddCommand(popularCheckCmd)
	popularCmd.AddCommand(popularUpdateCmd)
	popularCmd.AddCommand(popularListCmd)
	rootCmd.AddCommand(popularCmd)
}

func runPopularCheck(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	needs, err := s.Popular.CheckAvatarsNeedUpdate(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, map[string]bool{"needs_update": needs})
	}
	if needs {
		fmt.Fprintln(cmd.OutOrStdout(), "update needed")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "up to date")
	}
	return nil
}

func runPopularUpdate(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	items, err := readItems(cmd, popularFile)
	if err != nil {
		return err
	}
	if err := s.Popular.UpdatePopularAvatars(cmd.Context(), items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot replaced with %d items.\n", len(items))
	return nil
}

func runPopularList(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	rows, err := s.Popular.GetPopularAvatars(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		if rows == nil {
			rows = []domain.PopularItem{}
		}
		return printJSON(cmd, rows)
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No snapshot.")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %3d. %s (%s)\n", row.Rank, row.Item.Name, formatPrice(row.Item.Price))
	}
	return nil
}
