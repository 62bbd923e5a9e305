package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines to a
// charm logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, nodes, links int, d time.Duration, err error) {
	h.logger.Debug("parse done", "source", source, "nodes", nodes, "links", links, "took", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, vizType string, nodes int) {
	h.logger.Debug("layout start", "viz", vizType, "nodes", nodes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	h.logger.Debug("layout done", "viz", vizType, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache error", "type", keyType, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route, requestID string) {
	h.logger.Debug("request", "method", method, "route", route, "id", requestID)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
