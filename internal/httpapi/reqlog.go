package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// slogFormatter routes chi's request log through slog.Default so access lines
// follow the configured handler (JSON, log file, level).
type slogFormatter struct{}

func (slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{ctx: r.Context(), method: r.Method, path: r.URL.Path}
}

type slogEntry struct {
	ctx    context.Context
	method string
	path   string
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Default().Log(e.ctx, level, "http request",
		"method", e.method,
		"path", e.path,
		"status", status,
		"bytes", bytes,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

func (e *slogEntry) Panic(v any, stack []byte) {
	slog.Default().ErrorContext(e.ctx, "http handler panic",
		"method", e.method,
		"path", e.path,
		"panic", v,
		"stack", string(stack),
	)
}
