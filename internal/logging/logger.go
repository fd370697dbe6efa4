// Package logging defines the structured logging interface shared by the
// server and the CLI. Both sides back it with log/slog; the interface keeps
// the gateway and services testable with a discard logger.
package logging

import "context"

// Logger is a context-aware structured logger. Variadic args are key-value
// pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
