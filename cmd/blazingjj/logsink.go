// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/klauspost/compress/gzip"
)

// newFileLogHandler opens a gzip-compressed JSONL log sink. The
// returned close function flushes the gzip stream and must be called
// before exit or the tail of the log is lost.
func newFileLogHandler(path, level string) (slog.Handler, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	compressor := gzip.NewWriter(file)

	handler := slog.NewJSONHandler(compressor, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})
	closeSink := func() error {
		if err := compressor.Close(); err != nil {
			file.Close()
			return fmt.Errorf("flush log file: %w", err)
		}
		return file.Close()
	}
	return handler, closeSink, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanoutHandler delivers each record to every child handler that wants
// its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	return &fanoutHandler{handlers: handlers}
}

func (fanout *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range fanout.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (fanout *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range fanout.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (fanout *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make([]slog.Handler, len(fanout.handlers))
	for index, handler := range fanout.handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: derived}
}

func (fanout *fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make([]slog.Handler, len(fanout.handlers))
	for index, handler := range fanout.handlers {
		derived[index] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: derived}
}
