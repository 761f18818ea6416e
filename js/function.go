package js

import "sync"

// Function is a host-runtime callable.
type Function struct {
	name string
	call func(this Value, args []Value) Value
}

// NewFunction wraps a Go function as a runtime callable.
func NewFunction(name string, call func(this Value, args []Value) Value) *Function {
	return &Function{name: name, call: call}
}

// Name returns the callable's name, possibly empty.
func (f *Function) Name() string { return f.name }

// Persistent is a durable, counted reference to a Function held in a
// Runtime's table. It keeps the callable alive across dispatches until
// Reset releases it.
type Persistent struct {
	rt     *Runtime
	handle uint32
}

// Deref returns the referenced Function, or nil after Reset.
func (p *Persistent) Deref() *Function {
	if p == nil || p.handle == 0 {
		return nil
	}
	return p.rt.persist.get(p.handle)
}

// Reset releases the reference. Further calls are no-ops.
func (p *Persistent) Reset() {
	if p == nil || p.handle == 0 {
		return
	}
	p.rt.persist.release(p.handle)
	p.handle = 0
}

// persistEntry is one slot in the persistent-reference table.
type persistEntry struct {
	fn       *Function
	refCount int32
}

// persistTable maps handles to callables with reference counts.
// Handle 0 is reserved and always invalid; freed slots are reused.
type persistTable struct {
	mu       sync.Mutex
	entries  []persistEntry
	freeList []uint32
}

func (t *persistTable) alloc(fn *Function) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := persistEntry{fn: fn, refCount: 1}

	if n := len(t.freeList); n > 0 {
		idx := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[idx] = entry
		return idx + 1
	}

	t.entries = append(t.entries, entry)
	return uint32(len(t.entries))
}

func (t *persistTable) get(handle uint32) *Function {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if handle == 0 || int(idx) >= len(t.entries) {
		return nil
	}
	e := &t.entries[idx]
	if e.refCount == 0 {
		return nil
	}
	return e.fn
}

func (t *persistTable) release(handle uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if handle == 0 || int(idx) >= len(t.entries) {
		return false
	}
	e := &t.entries[idx]
	if e.refCount == 0 {
		return false
	}
	e.refCount--
	if e.refCount == 0 {
		e.fn = nil
		t.freeList = append(t.freeList, idx)
	}
	return true
}

func (t *persistTable) live() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, e := range t.entries {
		if e.refCount != 0 {
			count++
		}
	}
	return count
}
