// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// blazingjj is a terminal UI for the Jujutsu version control system.
// It shows the revision log, bookmarks, and operation log of the
// enclosing jj workspace, renders diffs in a details panel, and drives
// the usual mutations (new, edit, describe, squash, abandon, bookmark
// management, fetch and push) through the jj CLI. The repository
// itself stays the single source of truth: every mutation is a jj
// invocation followed by a reload, and an inotify watch on the
// operation heads picks up changes made by other jj processes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/blazingjj/blazingjj/lib/cli"
	"github.com/blazingjj/blazingjj/lib/config"
	"github.com/blazingjj/blazingjj/lib/jj"
	"github.com/blazingjj/blazingjj/lib/logui"
	"github.com/blazingjj/blazingjj/lib/state"
	"github.com/blazingjj/blazingjj/lib/tui"
	"github.com/blazingjj/blazingjj/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var workspacePath string
	var revset string
	var jjBinary string
	var configPath string
	var logOutput string

	flagSet := pflag.NewFlagSet("blazingjj", pflag.ContinueOnError)
	flagSet.StringVar(&workspacePath, "path", ".", "directory inside the jj workspace to open")
	flagSet.StringVarP(&revset, "revisions", "r", "", "revset for the log view (default: jj's configured default)")
	flagSet.StringVar(&jjBinary, "jj-bin", "", "jj executable to run (default: from config, or \"jj\")")
	flagSet.StringVar(&configPath, "config", "", "path to the blazingjj config file (default: $BLAZINGJJ_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write gzip-compressed JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other arguments.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("blazingjj")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument: %s\n", args[0])
		return &cli.ExitError{Code: 2}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "error: blazingjj needs an interactive terminal")
		return &cli.ExitError{Code: 1}
	}

	configuration, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if jjBinary == "" {
		jjBinary = configuration.JJBinary
	}
	if revset == "" {
		revset = configuration.DefaultRevset
	}

	env, err := jj.NewEnv(context.Background(), workspacePath, revset, jjBinary)
	if err != nil {
		return err
	}

	theme := tui.DefaultTheme
	if configuration.ThemeFile != "" {
		theme, err = tui.LoadTheme(configuration.ThemeFile)
		if err != nil {
			return err
		}
	}
	theme = theme.WithHighlight(env.Config.HighlightColor())

	// Log routing: warnings and errors always reach the TUI status
	// bar; --log-output (or the config's log.file) adds a compressed
	// JSONL sink with the configured level.
	tuiHandler := logui.NewTUILogHandler(slog.LevelWarn)
	handler := slog.Handler(tuiHandler)

	logFile := logOutput
	if logFile == "" {
		logFile = configuration.Log.File
	}
	var closeLogSink func() error
	if logFile != "" {
		fileHandler, closeSink, err := newFileLogHandler(logFile, configuration.Log.Level)
		if err != nil {
			return err
		}
		closeLogSink = closeSink
		handler = newFanoutHandler(tuiHandler, fileHandler)
	}
	logger := slog.New(handler)

	watcher, err := jj.WatchOpHeads(env.Root, logger)
	if err != nil {
		// Live refresh is a convenience; the R key still reloads.
		logger.Warn("repository watch unavailable", "error", err)
		watcher = nil
	}

	model := logui.NewModel(logui.Options{
		Env:            env,
		Source:         logui.NewSource(env, logger),
		Watcher:        watcher,
		Theme:          theme,
		Logger:         logger,
		Restored:       state.Load(env.Root),
		LayoutOverride: configuration.Layout,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	if closeLogSink != nil {
		if closeErr := closeLogSink(); err == nil {
			err = closeErr
		}
	}
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `blazingjj — interactive terminal UI for Jujutsu.

Opens the jj workspace containing the current directory (or --path)
and shows its revision log. Press ? inside the UI for key bindings.

Configuration comes from two places: the [blazingjj] table in jj's own
config (diff format, highlight color, keybinds, layout) and an
optional application config file named by $BLAZINGJJ_CONFIG or
--config (jj binary, default revset, theme file, log sink).

Usage:
  blazingjj [flags]

Flags:
%s`, flagSet.FlagUsages())
}
