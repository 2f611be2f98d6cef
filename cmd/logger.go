package main

import (
	"log/slog"
	"os"
)

// NewLogger возвращает JSON-логгер с заданным уровнем. Пишет в stderr,
// stdout остаётся за отчётом.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
