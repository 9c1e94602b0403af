package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wholesale/pkg/app"
)

// main is the cmd/server adapter for process managers.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
