package testutil

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/dtroode/ride2gather-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// MakeBufferLogger returns a debug-level logger writing to buf, for asserting on log output.
func MakeBufferLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}
