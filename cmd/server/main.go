// Command server runs the emolog HTTP API: emotion log intake, analysis
// retrieval, and reporting endpoints.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables;
// DATABASE_DSN is required. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/emolog-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
