// Package whispertest provides an in-memory whisper.Library for tests.
package whispertest

import (
	"fmt"
	"sync"

	"github.com/fmueller/dictator/internal/whisper"
)

// Script describes how a loaded fake model answers inference calls.
type Script struct {
	// Status is returned from every Full call.
	Status int
	// Segments are reported after a successful Full call. A nil entry is a
	// segment without text.
	Segments []*string
}

// Text is a helper for building Script.Segments.
func Text(s string) *string { return &s }

// Segments builds a segment list where every entry has text.
func Segments(texts ...string) []*string {
	out := make([]*string, 0, len(texts))
	for _, text := range texts {
		out = append(out, Text(text))
	}
	return out
}

// Library is a whisper.Library backed by per-path scripts. Paths without a
// script fail to load.
type Library struct {
	mu      sync.Mutex
	scripts map[string]Script

	InitCalls int
	FullCalls int
	FreeCalls int

	LastContextParams whisper.ContextParams
	LastFullParams    whisper.FullParams
	LastSampleCount   int
}

func NewLibrary() *Library {
	return &Library{scripts: make(map[string]Script)}
}

// Register makes path loadable with the given behaviour.
func (l *Library) Register(path string, script Script) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scripts[path] = script
}

func (l *Library) InitFromFile(path string, params whisper.ContextParams) (whisper.Context, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.InitCalls++
	l.LastContextParams = params
	script, ok := l.scripts[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", whisper.ErrModelLoad, path)
	}
	return &Context{lib: l, script: script}, nil
}

func (l *Library) SystemInfo() string {
	return "whispertest"
}

// Counts returns the call counters under the library lock.
func (l *Library) Counts() (inits, fulls, frees int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.InitCalls, l.FullCalls, l.FreeCalls
}

// Params returns the parameters of the most recent calls.
func (l *Library) Params() (whisper.ContextParams, whisper.FullParams, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.LastContextParams, l.LastFullParams, l.LastSampleCount
}

// Context is a fake loaded model.
type Context struct {
	lib    *Library
	script Script
	ran    bool
	freed  bool
}

func (c *Context) Full(params whisper.FullParams, samples []float32) int {
	c.lib.mu.Lock()
	c.lib.FullCalls++
	c.lib.LastFullParams = params
	c.lib.LastSampleCount = len(samples)
	c.lib.mu.Unlock()

	c.ran = c.script.Status == 0
	return c.script.Status
}

func (c *Context) NumSegments() int {
	if !c.ran {
		return 0
	}
	return len(c.script.Segments)
}

func (c *Context) SegmentText(i int) (string, bool) {
	if !c.ran || i < 0 || i >= len(c.script.Segments) {
		return "", false
	}
	text := c.script.Segments[i]
	if text == nil {
		return "", false
	}
	return *text, true
}

func (c *Context) Free() {
	c.lib.mu.Lock()
	defer c.lib.mu.Unlock()
	c.lib.FreeCalls++
	c.freed = true
}

// Freed reports whether Free was called on this context.
func (c *Context) Freed() bool {
	c.lib.mu.Lock()
	defer c.lib.mu.Unlock()
	return c.freed
}
