package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/quarryhq/quarry/internal"
)

// Represents the root command for the quarry CLI.
var RootCmd struct {
	Quiet    bool        `short:"q" help:"Suppress informational output."`
	Debug    bool        `short:"d" help:"Enable debug output."`
	Build    BuildCmd    `cmd:"" help:"Fetch, build, install, and describe a package."`
	Fetch    FetchCmd    `cmd:"" help:"Fetch and extract a package's upstream source."`
	Describe DescribeCmd `cmd:"" help:"List the library artifacts in a staging location."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds native library packages from recipes.\n\nA recipe describes how to acquire, build, and stage one upstream package."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Reconfigures the global logger based on CLI flags.
func configureLogger() {
	level := slog.LevelInfo
	if RootCmd.Debug || internal.IsDebug() {
		level = slog.LevelDebug
	} else if RootCmd.Quiet || internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
