package commands

import (
	"fmt"
	"riksvote/internal/tally"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	findFile  string
	findLimit int
)

func init() {
	findCmd.Flags().StringVar(&findFile, "file", "", "The enriched csv, defaults to \"output\" in the config.")
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 10, "The maximum amount of matches shown, 0 shows all of them.")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find <query...>",
	Short: "Searches voting events by name, best matches first.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		events := loadEvents(findFile)
		matches := tally.Search(events, strings.Join(args, " "), findLimit)
		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching voting events.")
			return
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"dok_id", "Date", "Name", "Similarity"})
		for _, m := range matches {
			score := fmt.Sprintf("%.2f", m.Score)
			if m.Score > 1 {
				score = "id"
			}
			t.AppendRow(table.Row{m.Event.ID, m.Event.Date, m.Event.DisplayName(), score})
		}
		t.Render()
	},
}
