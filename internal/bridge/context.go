package bridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/fmueller/dictator/internal/whisper"
	"go.uber.org/zap"
)

// Options is the fixed configuration a context is opened with.
type Options struct {
	Context whisper.ContextParams
	Decode  whisper.FullParams
}

// DefaultOptions opens contexts with engine defaults and decodes with
// whisper.TranscribeParams.
func DefaultOptions() Options {
	return Options{
		Context: whisper.DefaultContextParams(),
		Decode:  whisper.TranscribeParams(),
	}
}

// Context owns one engine context. The engine context is freed exactly once,
// by the first Close; later calls to any method see a released context.
type Context struct {
	mu       sync.Mutex
	engine   whisper.Context
	decode   whisper.FullParams
	logger   *zap.Logger
	released bool
}

// Open loads modelPath through lib.
func Open(lib whisper.Library, modelPath string, opts Options, logger *zap.Logger) (*Context, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lib == nil {
		return nil, fmt.Errorf("%w: no engine library", whisper.ErrNativeUnavailable)
	}

	engine, err := lib.InitFromFile(modelPath, opts.Context)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: %s", whisper.ErrModelLoad, modelPath)
	}

	return &Context{
		engine: engine,
		decode: opts.Decode,
		logger: logger,
	}, nil
}

// Transcribe runs one blocking inference pass over samples. The slice is only
// read during the call.
func (c *Context) Transcribe(samples []float32) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := Result{Samples: len(samples)}
	if c.released || c.engine == nil {
		result.Status = StatusNoContext
		return result
	}

	c.logger.Info("transcribing",
		zap.Int("samples", len(samples)),
		zap.String("duration", fmt.Sprintf("%.1fs", audioSeconds(len(samples)))),
	)

	started := time.Now()
	code := c.engine.Full(c.decode, samples)
	result.Elapsed = time.Since(started)

	if code != 0 {
		c.logger.Error("transcription failed", zap.Int("code", code), zap.Duration("elapsed", result.Elapsed))
		result.Status = StatusEngineError
		result.Code = code
		return result
	}

	result.Text, result.Segments = collectTranscript(c.engine)
	if result.Text == "" {
		result.Status = StatusEmpty
	} else {
		result.Status = StatusOK
	}

	c.logger.Info("transcription result",
		zap.String("text", result.Text),
		zap.Int("segments", result.Segments),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result
}

// Close frees the engine context. It is safe to call more than once.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil
	}
	c.released = true
	if c.engine != nil {
		c.engine.Free()
		c.engine = nil
	}
	c.logger.Info("context freed")
	return nil
}

// Released reports whether Close has run.
func (c *Context) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func audioSeconds(samples int) float64 {
	return float64(samples) / float64(whisper.SampleRate)
}
