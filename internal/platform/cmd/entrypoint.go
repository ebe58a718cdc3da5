// Package cmd holds the startup plumbing shared by inkwell commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/inkwell/internal/platform/config"
	"github.com/louisbranch/inkwell/internal/platform/logging"
	"github.com/louisbranch/inkwell/internal/platform/otel"
	"go.uber.org/zap"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers for command startup telemetry and log fields.
const (
	ServiceWeb    = "web"
	ServiceInkctl = "inkctl"
)

// Runtime is the ambient configuration every command carries.
type Runtime struct {
	Log  logging.Config
	OTel otel.Config
}

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry builds the service logger, configures tracing and executes
// a service run loop with both in place.
func RunWithTelemetry(ctx context.Context, service string, rt Runtime, run func(context.Context, *zap.Logger) error) error {
	return RunWithTelemetryAndOptions(ctx, service, rt, RunOptions{}, run)
}

// RunWithTelemetryAndOptions is RunWithTelemetry with explicit options.
func RunWithTelemetryAndOptions(ctx context.Context, service string, rt Runtime, options RunOptions, run func(context.Context, *zap.Logger) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.New(service, rt.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	shutdown, err := otel.Setup(ctx, service, rt.OTel)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := config.DurationOrDefault(options.ShutdownTimeout, defaultOTelShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.Error(err))
		}
	}()
	return run(ctx, logger)
}
