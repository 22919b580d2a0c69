package logging

import (
	"log/slog"

	"sixlatch/pkg/primitives"
)

// WithPage creates a logger with page context. Useful for latch table
// and traversal diagnostics.
func WithPage(pid primitives.PageID) *slog.Logger {
	return GetLogger().With("page", pid.String())
}

// WithLatch creates a logger carrying a page plus the latch mode being
// worked with.
//
// Example:
//
//	log := logging.WithLatch(pid, "intent")
//	log.Debug("upgrade failed, falling back to full acquisition")
func WithLatch(pid primitives.PageID, mode string) *slog.Logger {
	return GetLogger().With("page", pid.String(), "mode", mode)
}

// WithComponent creates a logger with component/subsystem context.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}
