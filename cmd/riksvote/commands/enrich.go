package commands

import (
	"context"
	"fmt"
	"io"
	"riksvote/internal/components/chrono"
	"riksvote/internal/enrich"
	"riksvote/internal/scrapers/riksdagen"
	"riksvote/lib/restyutil"
	"riksvote/lib/serviceutil"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const report_enrich_dump = "cli.enrich.dump"

var enrichFlags EnrichFlags

func init() {
	addEnrichFlags(enrichCmd, &enrichFlags)
	rootCmd.AddCommand(enrichCmd)
}

func addEnrichFlags(cmd *cobra.Command, flags *EnrichFlags) {
	cmd.Flags().StringVar(&flags.In, "in", "", "The voting csv to enrich, overrides \"input\" in the config.")
	cmd.Flags().StringVar(&flags.Out, "out", "", "Where to write the enriched csv, overrides \"output\" in the config.")
	cmd.Flags().StringVar(&flags.Delay, "delay", "", "The wait between two requests (ex. 1s, 500ms), overrides \"delay\" in the config.")
	cmd.Flags().StringVar(&flags.Cache, "cache", "", "A sqlite database caching resolved names across runs, overrides \"cache\" in the config.")
	cmd.Flags().StringVar(&flags.BaseUrl, "base-url", "", "The base url of the riksdag open data api, overrides \"base_url\" in the config.")
}

var enrichCmd = &cobra.Command{
	Use:   "enrich [--in <votes.csv>] [--out <enriched.csv>] [--delay <duration>] [--cache <names.db>]",
	Short: "Resolves the name of every voting event in a csv and writes an enriched copy of it.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := resolveEnrichSettings(cfg, enrichFlags)
		if err != nil {
			serviceutil.Fatal("invalid enrich settings", err)
		}
		report, err := runEnrich(cmd.Context(), settings)
		if err != nil {
			serviceutil.Fatal("failed to enrich voting csv", err)
		}
		printReport(cmd.OutOrStdout(), report)
	},
}

func runEnrich(ctx context.Context, s enrichSettings) (enrich.Report, error) {
	opts := riksdagen.ClientOptions{
		BaseUrl: s.BaseUrl,
		Timeout: s.Timeout,
		MaxRate: s.MaxRate,
	}
	if verbose {
		output, err := restyutil.NewFilesystemOutput("<dev_state>/resty/riksdagen")
		if err != nil {
			tel.ReportWarning(report_enrich_dump, err)
		} else {
			opts.Output = output
		}
	}

	client, err := riksdagen.NewClient(opts, tel)
	if err != nil {
		return enrich.Report{}, err
	}

	pipelineOpts := enrich.Options{
		Fetcher: client,
		Clock:   chrono.NewStandardImpl(),
		Tel:     tel,
		Delay:   s.Delay,
	}
	if s.Cache != "" {
		cache, database, err := openCache(s.Cache)
		if err != nil {
			return enrich.Report{}, fmt.Errorf("open cache: %w", err)
		}
		defer database.Close()
		pipelineOpts.Cache = cache
	}

	pipeline, err := enrich.NewPipeline(pipelineOpts)
	if err != nil {
		return enrich.Report{}, err
	}
	return pipeline.Run(ctx, s.Input, s.Output)
}

func printReport(out io.Writer, report enrich.Report) {
	t := newTable(out)
	t.SetTitle("Enrichment")
	t.AppendRows([]table.Row{
		{"Input", report.Input},
		{"Output", report.Output},
		{"Rows", report.Rows},
		{"Voting events", report.Total},
		{"Fetched", report.Resolved},
		{"From cache", report.Cached},
		{"Unresolved", len(report.Failed)},
		{"Estimated", report.Estimated.Round(time.Second)},
		{"Elapsed", report.Elapsed.Round(time.Millisecond)},
	})
	t.Render()

	if len(report.Failed) == 0 {
		return
	}
	failures := newTable(out)
	failures.SetTitle("Unresolved")
	failures.AppendHeader(table.Row{"dok_id", "Reason"})
	for _, f := range report.Failed {
		failures.AppendRow(table.Row{f.DokID, strings.TrimSpace(f.Err.Error())})
	}
	failures.Render()
}
