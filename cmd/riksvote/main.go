package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"riksvote/cmd/riksvote/commands"
	"riksvote/lib/serviceutil"
	"riksvote/lib/telemetry"
	"time"
)

func main() {
	ctx := serviceutil.SignalContext(context.Background())

	otel, err := telemetry.SetupFromEnv(ctx, "riksvote")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if shutdownErr := otel.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
