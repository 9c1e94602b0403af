package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wholesale/pkg/app"
)

// main exposes a root-level entry point so operators can simply run `go run bakery.go`.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
