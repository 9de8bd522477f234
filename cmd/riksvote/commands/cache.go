package commands

import (
	"fmt"
	"riksvote/internal/dataset"
	"riksvote/lib/serviceutil"

	"github.com/spf13/cobra"
)

var cacheDb string

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheDb, "cache", "", "The sqlite name cache, defaults to \"cache\" in the config.")
	cacheCmd.AddCommand(cacheSeedCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the name cache used by enrich.",
}

func cachePath() string {
	path := override(cfg.Cache, cacheDb)
	if path == "" {
		serviceutil.Fatal("no cache configured", fmt.Errorf("set \"cache\" in the config or pass --cache"))
	}
	return path
}

var cacheSeedCmd = &cobra.Command{
	Use:   "seed <enriched.csv...>",
	Short: "Fills the name cache from already enriched csv files.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cache, database, err := openCache(cachePath())
		if err != nil {
			serviceutil.Fatal("failed to open cache", err)
		}
		defer database.Close()

		total := 0
		for _, path := range args {
			ds, err := dataset.LoadFile(path)
			if err != nil {
				serviceutil.Fatal("failed to load csv", err)
			}
			noted, err := cache.Seed(cmd.Context(), ds)
			if err != nil {
				serviceutil.Fatal("failed to seed cache", err)
			}
			total += noted
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d names from %d files.\n", total, len(args))
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints the amount of cached names.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cache, database, err := openCache(cachePath())
		if err != nil {
			serviceutil.Fatal("failed to open cache", err)
		}
		defer database.Close()

		count, err := cache.Count(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to count cached names", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d cached names\n", count)
	},
}
