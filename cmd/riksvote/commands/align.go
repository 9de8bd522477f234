package commands

import (
	"fmt"
	"riksvote/internal/tally"
	"riksvote/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	alignFile   string
	alignBallot string
)

func init() {
	alignCmd.Flags().StringVar(&alignFile, "file", "", "The enriched csv, defaults to \"output\" in the config.")
	alignCmd.Flags().StringVar(&alignBallot, "ballot", "", "A json5 file mapping dok_id to your own choice (Ja, Nej or Avstår).")
	alignCmd.MarkFlagRequired("ballot")
	rootCmd.AddCommand(alignCmd)
}

var alignCmd = &cobra.Command{
	Use:   "align --ballot <ballot.json5> [--file <enriched.csv>]",
	Short: "Scores every party by how often its majority voted like you did.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		events := loadEvents(alignFile)
		ballot, err := tally.ReadBallot(alignBallot)
		if err != nil {
			serviceutil.Fatal("failed to read ballot", err)
		}

		voted, notVoted := tally.Progress(events, ballot)
		scores := tally.Alignment(events, ballot)

		t := newTable(cmd.OutOrStdout())
		t.SetTitle("Alignment")
		t.AppendHeader(table.Row{"Party", "Matches", "Of"})
		for _, s := range scores {
			t.AppendRow(table.Row{s.Party, s.Score, len(voted)})
		}
		t.Render()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Voted on %d of %d voting events.\n", len(voted), len(voted)+len(notVoted))
		if party := tally.MostAligned(scores); party != "" {
			fmt.Fprintf(out, "Most aligned party: %s\n", party)
		}
	},
}
