package bridge

import (
	"sync"
	"sync/atomic"
)

// Handle identifies a Context across the managed boundary.
type Handle int64

// NullHandle is returned when no context could be created. Every operation on
// it is a no-op.
const NullHandle Handle = 0

// lastHandle is shared by every table in the process, so handles stay unique
// across Bridge instances and a stale handle cannot reach a newer context.
var lastHandle atomic.Int64

// handleTable maps live handles to contexts.
type handleTable struct {
	mu   sync.Mutex
	live map[Handle]*Context
}

func newHandleTable() *handleTable {
	return &handleTable{live: make(map[Handle]*Context)}
}

func (t *handleTable) add(c *Context) Handle {
	h := Handle(lastHandle.Add(1))
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live[h] = c
	return h
}

func (t *handleTable) get(h Handle) (*Context, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.live[h]
	return c, ok
}

// remove detaches h and returns its context, if it was live.
func (t *handleTable) remove(h Handle) (*Context, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.live[h]
	if ok {
		delete(t.live, h)
	}
	return c, ok
}

// drain detaches every live handle.
func (t *handleTable) drain() map[Handle]*Context {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.live
	t.live = make(map[Handle]*Context)
	return out
}

func (t *handleTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}
