// Package main runs the inkwell operator CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/inkwell/internal/cmd/inkctl"
	"github.com/louisbranch/inkwell/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := inkctl.Execute(ctx, os.Args[1:]); err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}
}
