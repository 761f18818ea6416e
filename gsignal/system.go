package gsignal

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gvalue"
)

var instanceIDs atomic.Uint64

// Instance is a native object instance that emits signals. Only its
// identity and registered type matter to the bridge.
type Instance struct {
	id    uint64
	gtype gi.GType
	name  string
}

// NewInstance creates an instance of the given registered type.
func NewInstance(name string, gtype gi.GType) *Instance {
	return &Instance{
		id:    instanceIDs.Add(1),
		gtype: gtype,
		name:  name,
	}
}

// GType returns the instance's registered type.
func (i *Instance) GType() gi.GType { return i.gtype }

// Name returns the instance's debug name.
func (i *Instance) Name() string { return i.name }

// HandlerID identifies one signal connection.
type HandlerID uint64

type connection struct {
	inst    *Instance
	signal  string
	closure *Closure
	id      HandlerID
}

// System is the signal connection registry. It dispatches emissions to
// connected closures in connection order and invalidates each closure
// exactly once when its connection is removed.
type System struct {
	mu       sync.Mutex
	next     HandlerID
	handlers map[HandlerID]*connection
	order    []HandlerID
}

// NewSystem creates an empty signal system.
func NewSystem() *System {
	return &System{
		next:     1,
		handlers: make(map[HandlerID]*connection),
	}
}

// Connect registers a closure for (instance, signal) and returns the
// handler ID used to disconnect it.
func (s *System) Connect(inst *Instance, signal string, c *Closure) HandlerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.handlers[id] = &connection{inst: inst, signal: signal, closure: c, id: id}
	s.order = append(s.order, id)

	Logger().Debug("signal connected",
		zap.String("instance", inst.Name()),
		zap.String("signal", signal),
		zap.Uint64("handler", uint64(id)))
	return id
}

// Emit dispatches one emission to every closure connected to
// (instance, signal), in connection order, and reports how many ran.
// All handlers see the same return slot; with several handlers the
// last one to set it wins, as in the native system.
func (s *System) Emit(inst *Instance, signal string, ret *gvalue.Value, params ...gvalue.Value) int {
	s.mu.Lock()
	var targets []*Closure
	for _, id := range s.order {
		conn, ok := s.handlers[id]
		if !ok {
			continue
		}
		if conn.inst == inst && conn.signal == signal {
			targets = append(targets, conn.closure)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		c.Invoke(ret, params)
	}

	Logger().Debug("signal emitted",
		zap.String("instance", inst.Name()),
		zap.String("signal", signal),
		zap.Int("handlers", len(targets)))
	return len(targets)
}

// Disconnect removes a connection and invalidates its closure. Returns
// false for an unknown or already removed handler.
func (s *System) Disconnect(id HandlerID) bool {
	s.mu.Lock()
	conn, ok := s.handlers[id]
	if ok {
		delete(s.handlers, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	conn.closure.Invalidate()

	Logger().Debug("signal disconnected",
		zap.String("instance", conn.inst.Name()),
		zap.String("signal", conn.signal),
		zap.Uint64("handler", uint64(id)))
	return true
}

// DestroyInstance removes every connection of an instance, as when the
// emitting object is destroyed, and reports how many were removed.
func (s *System) DestroyInstance(inst *Instance) int {
	s.mu.Lock()
	var removed []*connection
	for id, conn := range s.handlers {
		if conn.inst == inst {
			delete(s.handlers, id)
			removed = append(removed, conn)
		}
	}
	s.mu.Unlock()

	for _, conn := range removed {
		conn.closure.Invalidate()
	}
	return len(removed)
}

// Connected reports how many handlers an instance currently has.
func (s *System) Connected(inst *Instance) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, conn := range s.handlers {
		if conn.inst == inst {
			count++
		}
	}
	return count
}

// Close removes all remaining connections, invalidating their
// closures.
func (s *System) Close() {
	s.mu.Lock()
	remaining := s.handlers
	s.handlers = make(map[HandlerID]*connection)
	s.order = nil
	s.mu.Unlock()

	for _, conn := range remaining {
		conn.closure.Invalidate()
	}
}
