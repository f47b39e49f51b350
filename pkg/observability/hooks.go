// Package observability lets the pipeline report parse, layout, render,
// cache and converter events without depending on a logging or metrics
// backend.
//
// Every hook set defaults to a no-op. A binary installs its own at startup:
//
//	observability.SetPipelineHooks(&debugHooks{logger})
//	observability.SetCacheHooks(&debugHooks{logger})
//
// and library code emits through the accessors:
//
//	observability.Pipeline().OnParseStart(ctx, doc.Name)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives one start and one completion event per stage.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, document string)
	OnParseComplete(ctx context.Context, document string, nodeCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, vizType string, nodeCount int)
	OnLayoutComplete(ctx context.Context, vizType string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives the outcome of cache lookups made by the pipeline.
// keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ConverterHooks receives one event per call into an external renderer
// (rsvg-convert, Graphviz).
type ConverterHooks interface {
	OnConvert(ctx context.Context, tool, format string, size int, duration time.Duration, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopConverterHooks ignores every converter event.
type NoopConverterHooks struct{}

func (NoopConverterHooks) OnConvert(context.Context, string, string, int, time.Duration, error) {}

// slot holds one registered hook set, falling back to def.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
	set bool
}

func (s *slot[T]) store(v T) {
	s.mu.Lock()
	s.cur, s.set = v, true
	s.mu.Unlock()
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return s.def
	}
	return s.cur
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	var zero T
	s.cur, s.set = zero, false
	s.mu.Unlock()
}

var (
	pipelineSlot  = &slot[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheSlot     = &slot[CacheHooks]{def: NoopCacheHooks{}}
	converterSlot = &slot[ConverterHooks]{def: NoopConverterHooks{}}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetConverterHooks installs h. A nil h is ignored.
func SetConverterHooks(h ConverterHooks) {
	if h != nil {
		converterSlot.store(h)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// Converter returns the installed converter hooks.
func Converter() ConverterHooks { return converterSlot.load() }

// Reset restores the no-op defaults. Tests call it to isolate runs.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	converterSlot.reset()
}
