package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eplus-at/eplus-resources/internal/platform/cli"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

const usage = `usage: worker <command> [options]

Commands:
  zones   generate IDF zones (single room, YAML layout or sample house)
  plots   render charts and daily statistics from eplusout.csv
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(cli.Code(err))
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(out, usage)
		return cli.Usage("missing command")
	}

	switch args[0] {
	case "zones":
		return runZones(out, args[1:])
	case "plots":
		return runPlots(ctx, out, args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return cli.Usage("unknown command: %s", args[0])
	}
}

func newLogger(level string) (*logger.Logger, error) {
	log, err := logger.New(os.Getenv("APP_ENV"), level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}
