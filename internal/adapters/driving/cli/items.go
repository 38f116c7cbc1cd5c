package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

var itemsFile string

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Cache and read catalog items",
}

var itemsCacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Insert or refresh items from a JSON array",
	Long: `Reads a JSON array of items from --file or stdin and writes them to the
cache in one transaction. Either every item is stored or none is.

Example:
  echo '[{"id": 1, "name": "Rusk", "price": 1500}]' | boothcache items cache`,
	Args: cobra.NoArgs,
	RunE: runItemsCache,
}

var itemsGetCmd = &cobra.Command{
	Use:   "get <id> [id...]",
	Short: "Show cached items by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runItemsGet,
}

func init() {
	itemsCacheCmd.Flags().StringVarP(&itemsFile, "file", "f", "", "read items from file instead of stdin")
	itemsCmd.AddCommand(itemsCacheCmd)
	itemsCmd.AddCommand(itemsGetCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsCache(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	items, err := readItems(cmd, itemsFile)
	if err != nil {
		return err
	}

	n, err := s.Items.CacheItems(cmd.Context(), items)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, map[string]int{"count": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cached %d items.\n", n)
	return nil
}

func runItemsGet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	var items []domain.Item
	if len(ids) == 1 {
		item, err := s.Items.GetItem(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		items = []domain.Item{*item}
	} else {
		items, err = s.Items.GetItems(cmd.Context(), ids)
		if err != nil {
			return err
		}
	}

	return outputItems(cmd, items)
}

// readItems decodes a JSON array of items from path, or stdin when path is
// empty or "-".
func readItems(cmd *cobra.Command, path string) ([]domain.Item, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var items []domain.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: reading items: %w", domain.ErrInvalidInput, err)
	}
	return items, nil
}

// parseIDs parses item ids given as arguments.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id %q is not a number", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func outputItems(cmd *cobra.Command, items []domain.Item) error {
	if outputJSON {
		if items == nil {
			items = []domain.Item{}
		}
		return printJSON(cmd, items)
	}

	w := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(w, "No items.")
		return nil
	}
	for i := range items {
		fmt.Fprintf(w, "  %-10d %s\n", items[i].ID, items[i].Name)
		fmt.Fprintf(w, "             %s | %s | %s\n", formatPrice(items[i].Price), orDash(items[i].ShopName), orDash(items[i].Category))
	}
	return nil
}

func formatPrice(price int) string {
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("¥%d", price)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
