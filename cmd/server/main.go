package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"soulbound/internal/platform/config"
)

// main loads configuration and hands the process lifecycle to run. Wiring
// lives in app.go, routes in router.go.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
