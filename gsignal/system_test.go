package gsignal

import (
	"testing"

	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gvalue"
)

func TestClosure_InvokeAndInvalidate(t *testing.T) {
	c := NewClosure()

	var invocations int
	c.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		invocations++
	})

	var finalized int
	c.AddFinalizeNotifier(func() { finalized++ })

	c.Invoke(nil, nil)
	c.Invoke(nil, nil)
	if invocations != 2 {
		t.Fatalf("marshal ran %d times, want 2", invocations)
	}

	c.Invalidate()
	if finalized != 1 {
		t.Fatalf("finalizers ran %d times, want 1", finalized)
	}
	if !c.Invalidated() {
		t.Fatal("closure should report invalidated")
	}

	// Emissions after invalidation are dropped and finalizers never
	// rerun.
	c.Invoke(nil, nil)
	c.Invalidate()
	if invocations != 2 || finalized != 1 {
		t.Fatalf("after teardown: %d invocations, %d finalizations", invocations, finalized)
	}
}

func TestClosure_FinalizerOrder(t *testing.T) {
	c := NewClosure()

	var order []int
	c.AddFinalizeNotifier(func() { order = append(order, 1) })
	c.AddFinalizeNotifier(func() { order = append(order, 2) })

	c.Invalidate()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("finalizers ran in order %v, want [1 2]", order)
	}
}

func TestSystem_EmitInConnectionOrder(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	var order []string
	first := NewClosure()
	first.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		order = append(order, "first")
	})
	second := NewClosure()
	second.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		order = append(order, "second")
	})

	sys.Connect(inst, "resize", first)
	sys.Connect(inst, "resize", second)

	if n := sys.Emit(inst, "resize", nil); n != 2 {
		t.Fatalf("emit reached %d handlers, want 2", n)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("handlers ran in order %v", order)
	}
}

func TestSystem_EmitMatchesInstanceAndSignal(t *testing.T) {
	sys := NewSystem()
	w0 := NewInstance("w0", gi.GType(1))
	w1 := NewInstance("w1", gi.GType(1))

	var hits int
	c := NewClosure()
	c.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) { hits++ })
	sys.Connect(w0, "resize", c)

	sys.Emit(w1, "resize", nil)
	sys.Emit(w0, "clicked", nil)
	if hits != 0 {
		t.Fatalf("closure ran %d times for foreign emissions", hits)
	}

	sys.Emit(w0, "resize", nil)
	if hits != 1 {
		t.Fatalf("closure ran %d times, want 1", hits)
	}
}

func TestSystem_SharedReturnSlotLastWins(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	first := NewClosure()
	first.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		ret.SetInt(1)
	})
	second := NewClosure()
	second.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		ret.SetInt(2)
	})
	sys.Connect(inst, "query", first)
	sys.Connect(inst, "query", second)

	ret := gvalue.New(gi.TagInt32)
	sys.Emit(inst, "query", &ret)
	if !ret.IsSet() || ret.Int() != 2 {
		t.Fatalf("return slot = %v, want 2", ret)
	}
}

func TestSystem_Disconnect(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	var finalized int
	c := NewClosure()
	c.AddFinalizeNotifier(func() { finalized++ })
	id := sys.Connect(inst, "resize", c)

	if !sys.Disconnect(id) {
		t.Fatal("disconnect of live handler failed")
	}
	if finalized != 1 {
		t.Fatalf("finalizers ran %d times, want 1", finalized)
	}
	if sys.Disconnect(id) {
		t.Fatal("second disconnect should report unknown handler")
	}
	if finalized != 1 {
		t.Fatal("second disconnect reran finalizers")
	}
	if n := sys.Emit(inst, "resize", nil); n != 0 {
		t.Fatalf("emit after disconnect reached %d handlers", n)
	}
}

func TestSystem_DisconnectFromHandler(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	var calls, finalized int
	c := NewClosure()
	c.AddFinalizeNotifier(func() { finalized++ })
	var id HandlerID
	c.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		calls++
		if !sys.Disconnect(id) {
			t.Error("disconnect from inside the handler failed")
		}
	})
	id = sys.Connect(inst, "resize", c)

	// The handler removes its own connection mid-dispatch; the emission
	// must complete and tear the closure down.
	if n := sys.Emit(inst, "resize", nil); n != 1 {
		t.Fatalf("emit reached %d handlers, want 1", n)
	}
	if calls != 1 || finalized != 1 {
		t.Fatalf("calls = %d, finalized = %d, want 1 and 1", calls, finalized)
	}
	if n := sys.Emit(inst, "resize", nil); n != 0 {
		t.Fatalf("emit after self-disconnect reached %d handlers", n)
	}
}

func TestSystem_ReentrantEmit(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	var depth, calls int
	c := NewClosure()
	c.SetMarshal(func(ret *gvalue.Value, params []gvalue.Value) {
		calls++
		if depth == 0 {
			depth++
			sys.Emit(inst, "resize", nil)
		}
	})
	sys.Connect(inst, "resize", c)

	sys.Emit(inst, "resize", nil)
	if calls != 2 {
		t.Fatalf("nested emission ran the handler %d times, want 2", calls)
	}
}

func TestSystem_DestroyInstance(t *testing.T) {
	sys := NewSystem()
	w0 := NewInstance("w0", gi.GType(1))
	w1 := NewInstance("w1", gi.GType(1))

	var finalized int
	for _, signal := range []string{"resize", "clicked"} {
		c := NewClosure()
		c.AddFinalizeNotifier(func() { finalized++ })
		sys.Connect(w0, signal, c)
	}
	keep := NewClosure()
	sys.Connect(w1, "resize", keep)

	if n := sys.DestroyInstance(w0); n != 2 {
		t.Fatalf("destroy removed %d handlers, want 2", n)
	}
	if finalized != 2 {
		t.Fatalf("finalizers ran %d times, want 2", finalized)
	}
	if sys.Connected(w0) != 0 || sys.Connected(w1) != 1 {
		t.Fatalf("connected counts = (%d, %d), want (0, 1)", sys.Connected(w0), sys.Connected(w1))
	}
}

func TestSystem_Close(t *testing.T) {
	sys := NewSystem()
	inst := NewInstance("w0", gi.GType(1))

	var finalized int
	c := NewClosure()
	c.AddFinalizeNotifier(func() { finalized++ })
	sys.Connect(inst, "resize", c)

	sys.Close()
	if finalized != 1 {
		t.Fatalf("finalizers ran %d times, want 1", finalized)
	}
	if n := sys.Emit(inst, "resize", nil); n != 0 {
		t.Fatalf("emit after close reached %d handlers", n)
	}
}
