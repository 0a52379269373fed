// Newuser is the new-user entry form.
//
// Usage:
//
//	newuser [-config file] [-v]
//	newuser -replay script [-config file] [-v]
//
// Interactively it shows the form in the terminal: tab moves between
// the fields, buttons and on-screen keyboard, esc closes. With -replay
// it reads action lines from script ("-" for stdin) instead, then
// prints the users that were created and every notice shown.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/elizafairlady/creditform/internal/config"
	"github.com/elizafairlady/creditform/internal/user"
	"github.com/elizafairlady/creditform/ui"
	"github.com/elizafairlady/creditform/ui/control"
	"github.com/elizafairlady/creditform/ui/form"
	"github.com/elizafairlady/creditform/ui/keyboard"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "newuser: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("newuser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "config `file` (default $XDG_CONFIG_HOME/creditform/config.yaml)")
	replay := fs.String("replay", "", "replay action lines from `script` instead of running interactively")
	verbose := fs.Bool("v", false, "log every action")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if *verbose {
		level = slog.LevelDebug
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := user.NewStore()
	inbox := &control.Inbox{}
	f := form.New(store, inbox, keyboard.New(cfg.KeyboardRows()))

	if *replay != "" {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		c := control.New(f, inbox, logger)
		return runReplay(ctx, c, store, *replay, stdin, stdout)
	}

	logOut := io.Discard
	if cfg.LogFile != "" {
		lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer lf.Close()
		logOut = lf
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	c := control.New(f, inbox, logger)
	if err := ui.Run(ctx, cfg.Title, c, ui.Options{
		AltScreen: cfg.AltScreen,
		Theme:     cfg.NewTheme(),
		Logger:    logger,
	}); err != nil {
		return err
	}
	for _, u := range store.List() {
		fmt.Fprintln(stdout, u)
	}
	return nil
}

func runReplay(ctx context.Context, c *control.Control, store *user.Store, path string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if path != "-" {
		sf, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		defer sf.Close()
		in = sf
	}
	err := c.Replay(ctx, in)
	for _, u := range store.List() {
		fmt.Fprintln(stdout, u)
	}
	for _, n := range c.Inbox().History() {
		fmt.Fprintf(stdout, "%s: %s\n", n.Title, n.Message)
	}
	return err
}
