package commands

import (
	"log/slog"
	"riksvote/internal/components/chrono"
	"riksvote/lib/serviceutil"
	"sync"

	"github.com/spf13/cobra"
)

const (
	report_watch_run  = "cli.watch.run"
	report_watch_skip = "cli.watch.skip"
)

var (
	watchFlags    EnrichFlags
	watchSchedule string
	watchNow      bool
)

func init() {
	addEnrichFlags(watchCmd, &watchFlags)
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "A cron spec (Europe/Stockholm time), overrides \"schedule\" in the config.")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "Also run once right away.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--schedule <cron spec>] [enrich flags]",
	Short: "Runs enrich on a cron schedule until interrupted.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		settings, err := resolveEnrichSettings(cfg, watchFlags)
		if err != nil {
			serviceutil.Fatal("invalid enrich settings", err)
		}
		schedule := override(cfg.Schedule, watchSchedule)

		run := exclusive(func() {
			report, err := runEnrich(ctx, settings)
			if err != nil {
				tel.ReportBroken(report_watch_run, err)
				return
			}
			printReport(cmd.OutOrStdout(), report)
		})

		cron := chrono.NewStandardCron(tel)
		err = cron.Cron(schedule, run)
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}
		slog.Info("watching", "schedule", schedule, "input", settings.Input, "output", settings.Output)

		if watchNow {
			run()
		}

		<-ctx.Done()
		<-cron.Stop().Done()
	},
}

// exclusive wraps fn so that a call made while another call is still running is skipped,
// whichever goroutine makes it.
func exclusive(fn func()) func() {
	var running sync.Mutex
	return func() {
		if !running.TryLock() {
			tel.ReportWarning(report_watch_skip, "previous run still in progress")
			return
		}
		defer running.Unlock()
		fn()
	}
}
