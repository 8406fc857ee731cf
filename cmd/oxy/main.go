// cmd/oxy/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SEPLEMBER/Oxy-test/internal/config"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit codes besides 0.
const (
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

// errDifferent makes a command exit 1 without printing an error, the way
// diff(1) reports differences.
var errDifferent = errors.New("inputs differ")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer, fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(w, "Usage: %s [flags] <command> [args]\n\nCommands:\n", config.AppName)
		for _, c := range commands {
			fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
		}
		fmt.Fprintf(w, "\nFlags:\n")
		fs.SetOutput(w)
		fs.PrintDefaults()
	}
}

// run parses args, sets up configuration and logging, and executes one
// command. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags config.Flags
	flags.DefineFlags(fs)
	fs.Usage = usage(stderr, fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return exitUsage
	}
	if *flags.Version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, version)
		return 0
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	// --- Configuration ---
	cfg, warnings, err := config.Load(*flags.ConfigFilePath, &flags)
	if err != nil {
		// The defaults are still usable
		stlog.Printf("Warning: %v", err)
	}

	// --- Logger Initialization ---
	logOut, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Printf("Warning: %v, logging disabled", err)
		logOut, closeLog = io.Discard, func() error { return nil }
	}
	defer closeLog()
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, logOut)
	for _, w := range warnings {
		logger.Warnf("Config: %s", w)
	}
	logger.Debugf("Log level set to: %s", cfg.Logger.LogLevel)

	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "%s: unknown command %q\n", config.AppName, name)
		fs.Usage()
		return exitUsage
	}

	a := newApp(cfg, stdout, stderr)
	defer a.Close()

	logger.Infof("Running %s %v", name, cmdArgs)
	err = cmd.run(ctx, a, cmdArgs)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, errDifferent), errors.Is(err, errNoMatch):
		return exitFailure
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(stderr, "%s: cancelled\n", name)
		return exitCancelled
	default:
		logger.Errorf("%s failed: %v", name, err)
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitFailure
	}
}
