// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about frame tree edits, settle passes and layout file I/O.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the frame tree itself
// never imports a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetFileHooks(&myFileHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	n := tree.Flush()
//	observability.Layout().OnSettle(ctx, n, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from workspace edits.
type LayoutHooks interface {
	// OnEdit records a structural edit such as "append" or "detach".
	// err is nil when the edit was applied.
	OnEdit(ctx context.Context, op string, err error)

	// OnSettle records a flush of pending settle requests and the number of
	// rectangles it assigned.
	OnSettle(ctx context.Context, frames int, duration time.Duration)
}

// =============================================================================
// File Hooks
// =============================================================================

// FileHooks receives events from layout file loading and export.
type FileHooks interface {
	// OnLoad records a layout description or snapshot being read.
	OnLoad(ctx context.Context, path string, frames int, duration time.Duration, err error)

	// OnExport records an artifact being written in the given format.
	OnExport(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnEdit(context.Context, string, error)        {}
func (NoopLayoutHooks) OnSettle(context.Context, int, time.Duration) {}

// NoopFileHooks is a no-op implementation of FileHooks.
type NoopFileHooks struct{}

func (NoopFileHooks) OnLoad(context.Context, string, int, time.Duration, error)   {}
func (NoopFileHooks) OnExport(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	fileHooks   FileHooks   = NoopFileHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any edits.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetFileHooks registers custom file hooks.
func SetFileHooks(h FileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fileHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// File returns the registered file hooks.
func File() FileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fileHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	fileHooks = NoopFileHooks{}
}
