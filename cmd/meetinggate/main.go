// Command meetinggate is the welcome page of a video conference: `join`
// gates entry to a room, `serve` runs the event API it consults and
// `adduser` creates the logins that API accepts.
//
// @title Meeting Gate API
// @version 1.0
// @description Event lookup, login and meeting details for the welcome page.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"sort"
	"syscall"

	"meetinggate/config"
	"meetinggate/internal/delivery/cli"
)

// entryPoint is one runnable mode of the binary.
type entryPoint struct {
	usage string
	run   func(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error
}

var entryPoints = map[string]entryPoint{
	"adduser": {usage: "adduser <username> [name] [email]  create a login, password on stdin", run: runAddUser},
	"join":    {usage: "join [room]  gate entry to a conference room", run: runJoin},
	"serve":   {usage: "serve        run the event API", run: runServe},
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	name := "join"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	ep, ok := entryPoints[name]
	if !ok {
		usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	logger := config.NewLoggerTo(os.Stderr).With("entry_point", name)
	slog.SetDefault(logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("UnhandledError", "panic", r, "stack", string(debug.Stack()))
			code = 1
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ep.run(ctx, cfg, logger, args); err != nil {
		if errors.Is(err, cli.ErrAborted) || errors.Is(err, context.Canceled) {
			return 130
		}
		logger.Error("exited with error", "err", err)
		return 1
	}
	return 0
}

func usage() {
	names := make([]string, 0, len(entryPoints))
	for name := range entryPoints {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "usage: meetinggate <command>")
	for _, name := range names {
		fmt.Fprintln(os.Stderr, "  "+entryPoints[name].usage)
	}
}
