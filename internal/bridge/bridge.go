// Package bridge exposes whisper inference contexts behind integer handles.
//
// The boundary methods never return errors: a failed load yields NullHandle
// and every failed transcription yields the empty string, with the cause
// logged. TranscribeResult keeps the detail for in-process callers.
//
// One Transcribe or FreeContext call per handle at a time is the contract.
// Distinct handles may be used from different goroutines concurrently.
package bridge

import (
	"sync"

	"github.com/fmueller/dictator/internal/whisper"
	"go.uber.org/zap"
)

// Bridge owns every context it hands out a handle for.
type Bridge struct {
	lib     whisper.Library
	logger  *zap.Logger
	handles *handleTable

	mu   sync.RWMutex
	opts Options
}

// New returns a Bridge that loads models through lib. A nil logger discards
// output.
func New(lib whisper.Library, logger *zap.Logger, opts Options) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		lib:     lib,
		logger:  logger,
		handles: newHandleTable(),
		opts:    opts,
	}
}

// Configure replaces the options used by contexts initialized afterwards.
// Live contexts keep the options they were opened with.
func (b *Bridge) Configure(opts Options) {
	b.mu.Lock()
	b.opts = opts
	b.mu.Unlock()
}

// Options returns the options new contexts are opened with.
func (b *Bridge) Options() Options {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opts
}

// InitContext loads the model at modelPath and returns a handle to it, or
// NullHandle if the model could not be loaded.
func (b *Bridge) InitContext(modelPath string) Handle {
	b.logger.Info("loading model", zap.String("path", modelPath))

	ctx, err := Open(b.lib, modelPath, b.Options(), b.logger)
	if err != nil {
		b.logger.Error("failed to load model", zap.String("path", modelPath), zap.Error(err))
		return NullHandle
	}

	h := b.handles.add(ctx)
	b.logger.Info("model loaded", zap.String("path", modelPath), zap.Int64("handle", int64(h)))
	return h
}

// Transcribe returns the recognized text for samples, or "" when the handle is
// null or unknown, the engine fails, or nothing was recognized.
func (b *Bridge) Transcribe(h Handle, samples []float32) string {
	return b.TranscribeResult(h, samples).Text
}

// TranscribeResult is Transcribe with the outcome spelled out.
func (b *Bridge) TranscribeResult(h Handle, samples []float32) Result {
	if h == NullHandle {
		return Result{Status: StatusNoContext, Samples: len(samples)}
	}

	ctx, ok := b.handles.get(h)
	if !ok {
		b.logger.Warn("transcribe on unknown handle", zap.Int64("handle", int64(h)))
		return Result{Status: StatusNoContext, Samples: len(samples)}
	}

	return ctx.Transcribe(samples)
}

// FreeContext releases the context behind h. Null and already freed handles
// are ignored.
func (b *Bridge) FreeContext(h Handle) {
	if h == NullHandle {
		return
	}

	ctx, ok := b.handles.remove(h)
	if !ok {
		b.logger.Debug("free on unknown handle", zap.Int64("handle", int64(h)))
		return
	}
	_ = ctx.Close()
}

// Live reports the number of handles not yet freed.
func (b *Bridge) Live() int {
	return b.handles.len()
}

// Close frees every live context.
func (b *Bridge) Close() error {
	for h, ctx := range b.handles.drain() {
		b.logger.Debug("freeing context on shutdown", zap.Int64("handle", int64(h)))
		_ = ctx.Close()
	}
	return nil
}
