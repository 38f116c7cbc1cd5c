package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/boothcache/internal/core/domain"
)

const (
	defaultWidth = 80
	maxBarWidth  = 40
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	Long: `Shows totals, the category and price distributions, top tags and shops,
favorites per month and search history statistics, all read from one
consistent snapshot of the cache.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	all, err := s.Stats.GetAllStatistics(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, all)
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, renderStats(newStatsStyles(w), all, terminalWidth(w)))
	return nil
}

// statsStyles holds the lipgloss styles for the stats report.
type statsStyles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Bar   lipgloss.Style
	Muted lipgloss.Style
}

// newStatsStyles binds styles to w, so colour is only emitted on terminals.
func newStatsStyles(w io.Writer) statsStyles {
	r := lipgloss.NewRenderer(w)
	return statsStyles{
		Title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Label: r.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Value: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Bar:   r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Muted: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// bar is one labelled row of a horizontal bar chart.
type bar struct {
	label string
	count int
}

func renderStats(st statsStyles, all *domain.AllStatistics, width int) string {
	var b strings.Builder

	d := all.Dashboard
	b.WriteString(st.Title.Render("Overview") + "\n")
	for _, row := range []bar{
		{"Items", d.TotalItems},
		{"Favorites", d.TotalFavorites},
		{"Collections", d.TotalCollections},
		{"Searches", d.TotalSearches},
		{"Tags", d.TotalTags},
	} {
		fmt.Fprintf(&b, "  %s %s\n", st.Label.Render(fmt.Sprintf("%-12s", row.label)), st.Value.Render(fmt.Sprint(row.count)))
	}

	categories := make([]bar, len(all.Categories))
	for i, c := range all.Categories {
		categories[i] = bar{c.Category, c.Count}
	}
	renderBars(&b, st, "Categories", categories, width)

	prices := make([]bar, len(all.Prices))
	for i, p := range all.Prices {
		prices[i] = bar{p.Label, p.Count}
	}
	renderBars(&b, st, "Prices", prices, width)

	tags := make([]bar, len(all.TopTags))
	for i, t := range all.TopTags {
		tags[i] = bar{t.Tag, t.Count}
	}
	renderBars(&b, st, "Top tags", tags, width)

	shops := make([]bar, len(all.TopShops))
	for i, s := range all.TopShops {
		shops[i] = bar{s.ShopName, s.Count}
	}
	renderBars(&b, st, "Top shops", shops, width)

	months := make([]bar, len(all.MonthlyFavorites))
	for i, m := range all.MonthlyFavorites {
		months[i] = bar{m.Month, m.Count}
	}
	renderBars(&b, st, "Favorites per month", months, width)

	queries := make([]bar, len(all.SearchHistory.TopQueries))
	for i, q := range all.SearchHistory.TopQueries {
		queries[i] = bar{q.Query, q.Count}
	}
	renderBars(&b, st, "Top searches", queries, width)

	return b.String()
}

func renderBars(b *strings.Builder, st statsStyles, title string, bars []bar, width int) {
	b.WriteString("\n" + st.Title.Render(title) + "\n")
	if len(bars) == 0 {
		b.WriteString("  " + st.Muted.Render("(none)") + "\n")
		return
	}

	labelWidth, maxCount := 0, 0
	for _, row := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(row.label))
		maxCount = max(maxCount, row.count)
	}
	labelWidth = min(labelWidth, 24)
	barWidth := min(maxBarWidth, width-labelWidth-12)

	for _, row := range bars {
		n := 0
		if maxCount > 0 && barWidth > 0 {
			n = row.count * barWidth / maxCount
		}
		label := truncate(row.label, labelWidth)
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		fmt.Fprintf(b, "  %s%s %s %d\n", st.Label.Render(label), pad, st.Bar.Render(strings.Repeat("█", n)), row.count)
	}
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
