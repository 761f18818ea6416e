package gsignal

import (
	"sync"

	"github.com/backwards-rat-race/node-gir/gvalue"
)

// MarshalFunc is the marshal entry point of a closure. ret is the
// return slot for the emission, nil when the signal returns void;
// params are the raw native parameter values in declaration order.
type MarshalFunc func(ret *gvalue.Value, params []gvalue.Value)

// Closure is the unit the signal system dispatches to. It owns a
// marshal hook and a list of finalize notifiers that run exactly once
// at invalidation.
type Closure struct {
	mu          sync.Mutex
	marshal     MarshalFunc
	finalizers  []func()
	invalidated bool
}

// NewClosure creates an inert closure.
func NewClosure() *Closure {
	return &Closure{}
}

// SetMarshal installs the marshal hook.
func (c *Closure) SetMarshal(m MarshalFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marshal = m
}

// AddFinalizeNotifier registers a hook to run at invalidation.
// Notifiers run in registration order, exactly once.
func (c *Closure) AddFinalizeNotifier(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finalizers = append(c.finalizers, fn)
}

// Invoke runs the marshal hook for one emission. An invalidated
// closure drops the emission. The hook runs outside the closure's
// lock, so a handler may disconnect its own connection or emit further
// signals; an invalidation landing mid-emission lets the in-flight
// dispatch finish.
func (c *Closure) Invoke(ret *gvalue.Value, params []gvalue.Value) {
	c.mu.Lock()
	marshal := c.marshal
	invalidated := c.invalidated
	c.mu.Unlock()

	if invalidated || marshal == nil {
		return
	}
	marshal(ret, params)
}

// Invalidate tears the closure down: no further emissions reach the
// marshal hook, and the finalize notifiers run. Safe to call more than
// once; notifiers still run exactly once.
func (c *Closure) Invalidate() {
	c.mu.Lock()
	if c.invalidated {
		c.mu.Unlock()
		return
	}
	c.invalidated = true
	finalizers := c.finalizers
	c.finalizers = nil
	c.mu.Unlock()

	for _, fn := range finalizers {
		fn()
	}
}

// Invalidated reports whether the closure has been torn down.
func (c *Closure) Invalidated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}
