package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	devenv "riksvote/dev/env"
	"riksvote/internal/components/chrono"
	"riksvote/internal/dataset"
	"riksvote/internal/db"
	"riksvote/internal/enrich"
)

func create(ctx context.Context, recreate bool, seed string) error {
	dir, err := devenv.StateDir()
	if err != nil {
		return err
	}
	if recreate {
		err = os.RemoveAll(dir)
		if err != nil {
			return err
		}
		dir, err = devenv.StateDir()
		if err != nil {
			return err
		}
	}

	cachePath, err := devenv.ResolvePath("<dev_state>/cache.db")
	if err != nil {
		return err
	}
	sqlite, err := db.OpenDB(cachePath)
	if err != nil {
		return err
	}
	defer sqlite.Close()

	if seed != "" {
		ds, err := dataset.LoadFile(seed)
		if err != nil {
			return err
		}
		cache := enrich.NewSqliteCache(sqlite, chrono.NewStandardImpl())
		count, err := cache.Seed(ctx, ds)
		if err != nil {
			return err
		}
		slog.Info("seeded dev cache", "names", count)
	}

	slog.Info("dev environment ready", "state", dir, "cache", cachePath)
	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	seed := flag.String("seed", "", "an already enriched csv used to seed the dev cache")
	flag.Parse()

	err := create(context.Background(), *recreate, *seed)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}
}
