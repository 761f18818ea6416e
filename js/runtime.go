package js

import (
	"sync"

	girerrors "github.com/backwards-rat-race/node-gir/errors"
)

// Runtime owns the host-runtime state the bridge touches: the Global
// receiver, persistent function references, handle scopes, and the
// error channel.
//
// A Runtime serializes value-producing operations internally, but the
// bridge's contract still requires that a single closure is never
// dispatched from two threads at once; that invariant belongs to the
// signal system.
type Runtime struct {
	global   *Object
	persist  persistTable
	mu       sync.Mutex
	scopes   []*HandleScope
	thrown   []error
	uncaught func(error)
}

// NewRuntime creates a runtime with an empty global object.
func NewRuntime() *Runtime {
	return &Runtime{global: &Object{name: "global"}}
}

// Global returns the ambient receiver used as "this" for callbacks
// that are invoked without a meaningful receiver. Callbacks should not
// depend on it.
func (rt *Runtime) Global() Value {
	return Value{kind: KindObject, obj: rt.global}
}

// NewPersistent takes a durable reference to a callable. Returns nil
// for a nil function.
func (rt *Runtime) NewPersistent(f *Function) *Persistent {
	if f == nil {
		return nil
	}
	return &Persistent{rt: rt, handle: rt.persist.alloc(f)}
}

// LivePersistents reports how many persistent references are held,
// for leak diagnostics.
func (rt *Runtime) LivePersistents() int {
	return rt.persist.live()
}

// HandleScope tracks values materialized during one dispatch so they
// are reclaimed together at Exit.
type HandleScope struct {
	rt     *Runtime
	locals []Value
	exited bool
}

// EnterScope pushes a new handle scope.
func (rt *Runtime) EnterScope() *HandleScope {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	s := &HandleScope{rt: rt}
	rt.scopes = append(rt.scopes, s)
	return s
}

// Track registers a value with the scope and returns it unchanged.
func (s *HandleScope) Track(v Value) Value {
	if !s.exited {
		s.locals = append(s.locals, v)
	}
	return v
}

// Exit pops the scope and reclaims its tracked values. The scope must
// be the innermost one; scopes are strictly nested.
func (s *HandleScope) Exit() {
	if s.exited {
		return
	}
	s.exited = true
	s.locals = nil

	s.rt.mu.Lock()
	defer s.rt.mu.Unlock()
	if n := len(s.rt.scopes); n == 0 || s.rt.scopes[n-1] != s {
		panic("js: handle scopes exited out of order")
	}
	s.rt.scopes = s.rt.scopes[:len(s.rt.scopes)-1]
}

// ScopeDepth reports the current scope nesting depth.
func (rt *Runtime) ScopeDepth() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.scopes)
}

// LiveLocals reports how many values the open scopes are tracking.
func (rt *Runtime) LiveLocals() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	count := 0
	for _, s := range rt.scopes {
		count += len(s.locals)
	}
	return count
}

// Invoke calls f with the given receiver and arguments. The result is
// tracked in the innermost open scope, if any. Invoking a nil callable
// surfaces an error and yields undefined.
func (rt *Runtime) Invoke(f *Function, this Value, args []Value) Value {
	if f == nil || f.call == nil {
		rt.Throw(girerrors.InvalidInput(girerrors.PhaseRuntime, "invoke of nil callable"))
		return Undefined()
	}
	result := f.call(this, args)
	rt.track(result)
	return result
}

func (rt *Runtime) track(v Value) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if n := len(rt.scopes); n > 0 {
		rt.scopes[n-1].Track(v)
	}
}

// Throw surfaces an error on the runtime's error channel. If an
// uncaught handler is installed it is invoked immediately; otherwise
// the error is queued for TakeThrown.
func (rt *Runtime) Throw(err error) {
	rt.mu.Lock()
	handler := rt.uncaught
	if handler == nil {
		rt.thrown = append(rt.thrown, err)
	}
	rt.mu.Unlock()

	if handler != nil {
		handler(err)
	}
}

// OnUncaught installs a handler that receives thrown errors instead of
// the queue. Pass nil to restore queueing.
func (rt *Runtime) OnUncaught(handler func(error)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.uncaught = handler
}

// TakeThrown drains and returns the queued errors.
func (rt *Runtime) TakeThrown() []error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	out := rt.thrown
	rt.thrown = nil
	return out
}
