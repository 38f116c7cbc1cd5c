package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage item tags",
}

var tagsSetCmd = &cobra.Command{
	Use:   "set <item-id> [tag...]",
	Short: "Replace the tags of an item",
	Long: `Replaces the whole tag set of an item. Tags are trimmed, lower-cased and
de-duplicated. Giving no tags clears the set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTagsSet,
}

var tagsGetCmd = &cobra.Command{
	Use:   "get <item-id> [item-id...]",
	Short: "Show the tags of items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTagsGet,
}

var tagsAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE:  runTagsAll,
}

func init() {
	tagsCmd.AddCommand(tagsSetCmd)
	tagsCmd.AddCommand(tagsGetCmd)
	tagsCmd.AddCommand(tagsAllCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.Tags.SetItemTags(cmd.Context(), id, args[1:]); err != nil {
		return err
	}

	tags, err := s.Tags.GetItemTags(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Item %d tags: %s\n", id, joinTags(tags))
	return nil
}

func runTagsGet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	batch, err := s.Tags.GetAllItemTagsBatch(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, batch)
	}

	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", id, joinTags(batch[id]))
	}
	return nil
}

func runTagsAll(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	tags, err := s.Tags.GetAllUserTags(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		if tags == nil {
			tags = []string{}
		}
		return printJSON(cmd, tags)
	}

	w := cmd.OutOrStdout()
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags.")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintln(w, tag)
	}
	return nil
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}
