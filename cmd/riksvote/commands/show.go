package commands

import (
	"fmt"
	"riksvote/internal/dataset"
	"riksvote/internal/tally"
	"riksvote/lib/serviceutil"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showFile string

func init() {
	showCmd.Flags().StringVar(&showFile, "file", "", "The enriched csv, defaults to \"output\" in the config.")
	rootCmd.AddCommand(showCmd)
}

func choiceRow(label string, c tally.Counts) table.Row {
	row := table.Row{label}
	for _, choice := range dataset.Choices {
		row = append(row, c[choice])
	}
	return append(row, c.Majority().Label())
}

var showCmd = &cobra.Command{
	Use:   "show <dok_id>",
	Short: "Shows how each party voted in a voting event.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		events := loadEvents(showFile)
		event, ok := dataset.Find(events, args[0])
		if !ok {
			serviceutil.Fatal("unknown voting event", fmt.Errorf("no voting event with dok_id %q", args[0]))
		}

		tallies := tally.ByParty(event.Votes)

		header := table.Row{"Party"}
		for _, choice := range dataset.Choices {
			header = append(header, choice.Label())
		}
		header = append(header, "Majority")

		t := newTable(cmd.OutOrStdout())
		t.SetTitle(event.DisplayName())
		t.AppendHeader(header)
		for _, p := range tallies {
			t.AppendRow(choiceRow(p.Party, p.Counts))
		}
		t.AppendFooter(choiceRow("Total", tally.Total(event.Votes)))
		t.Render()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Date:    %s\n", event.Date)
		fmt.Fprintf(out, "Outcome: %s\n", tally.OutcomeOf(event.Votes))
		fmt.Fprintf(out, "For:     %s\n", strings.Join(tally.PartiesFor(tallies), ", "))
		fmt.Fprintf(out, "Against: %s\n", strings.Join(tally.PartiesAgainst(tallies), ", "))
		if event.URL != "" {
			fmt.Fprintf(out, "Source:  %s\n", event.URL)
		}
	},
}
