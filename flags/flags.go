package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "BC_ACCEPTOR"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Suite = &cli.StringFlag{
		Name:     "suite",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("SUITE"),
		Usage:    "Path to the suite descriptor file (eg. 'test/run/suite.yaml')",
	}
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   "",
		EnvVars: prefixEnvVars("TESTDIR"),
		Usage:   "Directory holding case artifacts and expected outputs (defaults to the suite file's directory)",
	}
	ToolBinary = &cli.StringFlag{
		Name:    "tool",
		Value:   "undo",
		EnvVars: prefixEnvVars("TOOL"),
		Usage:   "Path to the bytecode tool binary invoked once per case",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   0,
		EnvVars: prefixEnvVars("TIMEOUT"),
		Usage:   "Per-invocation timeout (e.g. '30s'). Set to 0 or omit to disable.",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogDir = &cli.StringFlag{
		Name:    "logdir",
		Value:   "logs",
		EnvVars: prefixEnvVars("LOGDIR"),
		Usage:   "Directory to store per-run case logs",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Lowest log level that will be output (trace, debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	Suite,
}

var optionalFlags = []cli.Flag{
	TestDir,
	ToolBinary,
	Timeout,
	RunInterval,
	LogDir,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
