// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of the save step without
// adding hard dependencies on specific observability backends. Consumers
// register hooks at startup to receive an event for every file written,
// every format skipped, and every filename collision.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSaveHooks(&mySaveHooks{})
//	    // ... run application
//	}
//
// The teeplot package calls hooks as it saves:
//
//	observability.Save().OnSave(ctx, path, ".png", size, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Save Hooks
// =============================================================================

// SaveHooks receives events from the save step of a tee call.
type SaveHooks interface {
	// OnSave records a file written for one output format.
	OnSave(ctx context.Context, path, format string, size int64, duration time.Duration)

	// OnSkip records a format left out of a call, with a short reason
	// such as "disabled" or "draft".
	OnSkip(ctx context.Context, format, reason string)

	// OnCollision records a write to a path that was already written in
	// this process. count is the number of prior writes.
	OnCollision(ctx context.Context, path, policy string, count int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSaveHooks is a no-op implementation of SaveHooks.
type NoopSaveHooks struct{}

func (NoopSaveHooks) OnSave(context.Context, string, string, int64, time.Duration) {}
func (NoopSaveHooks) OnSkip(context.Context, string, string)                       {}
func (NoopSaveHooks) OnCollision(context.Context, string, string, int)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	saveHooks SaveHooks = NoopSaveHooks{}
	hooksMu   sync.RWMutex
)

// SetSaveHooks registers custom save hooks.
// This should be called once at application startup before any tee calls.
func SetSaveHooks(h SaveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		saveHooks = h
	}
}

// Save returns the registered save hooks.
func Save() SaveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return saveHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	saveHooks = NoopSaveHooks{}
}
