// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; main decides where
// they go. The defaults are no-ops, and [LogHooks] forwards everything to a
// charm logger at debug level.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    h := observability.NewLogHooks(logger)
//	    observability.SetPipelineHooks(h)
//	    observability.SetCacheHooks(h)
//	    observability.SetHTTPHooks(h)
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, "sankey", nodeCount)
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, "sankey", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the visualization pipeline.
type PipelineHooks interface {
	// Parse events; source is a file path or "request".
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, nodeCount, linkCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, vizType string, nodeCount int)
	OnLayoutComplete(ctx context.Context, vizType string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
	OnCacheError(ctx context.Context, keyType string, err error)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route, requestID string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string) {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)               {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
