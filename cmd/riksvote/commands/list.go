package commands

import (
	"riksvote/internal/dataset"
	"riksvote/internal/tally"
	"riksvote/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listFile string

func init() {
	listCmd.Flags().StringVar(&listFile, "file", "", "The enriched csv, defaults to \"output\" in the config.")
	rootCmd.AddCommand(listCmd)
}

func loadEvents(file string) []dataset.VotingEvent {
	path := override(cfg.Output, file)
	events, err := dataset.LoadEvents(path)
	if err != nil {
		serviceutil.Fatal("failed to load voting events", err)
	}
	return events
}

var listCmd = &cobra.Command{
	Use:   "list [--file <enriched.csv>]",
	Short: "Lists the voting events of an enriched csv.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		events := loadEvents(listFile)

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"dok_id", "Date", "Name", "Votes", "Outcome"})
		for _, e := range events {
			t.AppendRow(table.Row{
				e.ID,
				e.Date,
				e.DisplayName(),
				len(e.Votes),
				tally.OutcomeOf(e.Votes),
			})
		}
		t.AppendFooter(table.Row{"", "", "Total", len(events), ""})
		t.Render()
	},
}
