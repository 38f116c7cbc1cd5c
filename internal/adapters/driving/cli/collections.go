package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

var collectionColor string

var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"col"},
	Short:   "Manage collections of items",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionsList,
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsCreate,
}

var collectionsRenameCmd = &cobra.Command{
	Use:   "rename <collection-id> <name>",
	Short: "Rename a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsRename,
}

var collectionsColorCmd = &cobra.Command{
	Use:   "color <collection-id> <color>",
	Short: "Change the colour of a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsColor,
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <collection-id>",
	Short: "Delete a collection. Its items stay cached.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsDelete,
}

var collectionsAddCmd = &cobra.Command{
	Use:   "add <collection-id> <item-id>",
	Short: "Add an item to a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsAdd,
}

var collectionsRemoveCmd = &cobra.Command{
	Use:   "remove <collection-id> <item-id>",
	Short: "Remove an item from a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionsRemove,
}

var collectionsItemsCmd = &cobra.Command{
	Use:   "items <collection-id>",
	Short: "List the items of a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsItems,
}

var collectionsOfCmd = &cobra.Command{
	Use:   "of <item-id> [item-id...]",
	Short: "List the collections containing items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollectionsOf,
}

func init() {
	collectionsCreateCmd.Flags().StringVarP(&collectionColor, "color", "c", "#7C3AED", "hex colour")
	collectionsCmd.AddCommand(
		collectionsListCmd,
		collectionsCreateCmd,
		collectionsRenameCmd,
		collectionsColorCmd,
		collectionsDeleteCmd,
		collectionsAddCmd,
		collectionsRemoveCmd,
		collectionsItemsCmd,
		collectionsOfCmd,
	)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	cs, err := s.Collections.GetCollections(cmd.Context())
	if err != nil {
		return err
	}
	return outputCollections(cmd, cs)
}

func runCollectionsCreate(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	c, err := s.Collections.CreateCollection(cmd.Context(), args[0], collectionColor)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, c)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created collection %q (%s).\n", c.Name, c.ID)
	return nil
}

func runCollectionsRename(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.Collections.RenameCollection(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed collection %s.\n", args[0])
	return nil
}

func runCollectionsColor(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.Collections.UpdateCollectionColor(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated colour of collection %s.\n", args[0])
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.Collections.DeleteCollection(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted collection %s.\n", args[0])
	return nil
}

func runCollectionsAdd(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := s.Collections.AddToCollection(cmd.Context(), args[0], id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added item %d to collection %s.\n", id, args[0])
	return nil
}

func runCollectionsRemove(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := s.Collections.RemoveFromCollection(cmd.Context(), args[0], id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d from collection %s.\n", id, args[0])
	return nil
}

func runCollectionsItems(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	items, err := s.Collections.GetCollectionItems(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return outputItems(cmd, items)
}

func runCollectionsOf(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		cs, err := s.Collections.GetItemCollections(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		return outputCollections(cmd, cs)
	}

	batch, err := s.Collections.GetAllItemCollectionsBatch(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, batch)
	}

	w := cmd.OutOrStdout()
	for _, id := range ids {
		fmt.Fprintf(w, "%d:\n", id)
		if len(batch[id]) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, c := range batch[id] {
			fmt.Fprintf(w, "  %s  %s\n", c.ID, c.Name)
		}
	}
	return nil
}

func outputCollections(cmd *cobra.Command, cs []domain.Collection) error {
	if outputJSON {
		if cs == nil {
			cs = []domain.Collection{}
		}
		return printJSON(cmd, cs)
	}

	w := cmd.OutOrStdout()
	if len(cs) == 0 {
		fmt.Fprintln(w, "No collections.")
		return nil
	}
	for _, c := range cs {
		fmt.Fprintf(w, "  %s  %-24s %s  %d items\n", c.ID, c.Name, c.Color, c.ItemCount)
	}
	return nil
}
