// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for pipeline events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, devices)
//	// ... synthesize devices ...
//	observability.Pipeline().OnBuildComplete(ctx, devices, cells, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the mask generation pipeline.
type PipelineHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, devices int)
	OnBuildComplete(ctx context.Context, devices, cells int, duration time.Duration, err error)

	// Compose events
	OnComposeStart(ctx context.Context, negatives int)
	OnComposeComplete(ctx context.Context, negatives int, duration time.Duration, err error)

	// Write events
	OnWriteStart(ctx context.Context, formats []string)
	OnWriteComplete(ctx context.Context, formats []string, bytes int, duration time.Duration, err error)
}

// NoopPipelineHooks is a PipelineHooks implementation that does nothing.
// It is the default when no hooks are registered.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnComposeStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnComposeComplete(context.Context, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnWriteStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, []string, int, time.Duration, error) {
}

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
)

// SetPipelineHooks registers the pipeline hooks implementation.
// Passing nil restores the no-op default. Safe for concurrent use, but
// intended to be called once at startup.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopPipelineHooks{}
	}
	pipelineHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}
