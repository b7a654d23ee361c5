package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	harness "github.com/undo-lang/bc-acceptor"
	"github.com/undo-lang/bc-acceptor/exitcodes"
	"github.com/undo-lang/bc-acceptor/flags"
	"github.com/undo-lang/bc-acceptor/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "bc-acceptor"
	app.Usage = "Acceptance-test harness for the undo bytecode tool"
	app.Description = "bc-acceptor runs a declarative suite of bytecode test cases against an external tool"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if harness.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if harness.IsTestFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Ship traces when an OTLP endpoint is configured in the environment.
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		// The exit handler above already mapped the error to an exit code.
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(cliCtx *cli.Context) error {
	logger := newLogger(cliCtx.String(flags.LogLevel.Name))
	log.SetDefault(logger)

	cfg, err := harness.NewConfig(cliCtx, logger, cliCtx.String(flags.Suite.Name))
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	h, err := harness.New(cfg, Version)
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	// healthz and metrics only matter when we stay up between runs.
	if !cfg.RunOnce {
		svc := service.New()
		svc.Start(cliCtx.Context)
		defer svc.Shutdown()
	}

	return h.Run(cliCtx.Context)
}

func newLogger(level string) log.Logger {
	lvl := log.LevelInfo
	switch level {
	case "trace":
		lvl = log.LevelTrace
	case "debug":
		lvl = log.LevelDebug
	case "info":
		lvl = log.LevelInfo
	case "warn":
		lvl = log.LevelWarn
	case "error":
		lvl = log.LevelError
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false))
}
