package js

import (
	"errors"
	"testing"
)

func TestPersistent_Lifecycle(t *testing.T) {
	rt := NewRuntime()
	fn := NewFunction("cb", func(this Value, args []Value) Value { return Undefined() })

	p := rt.NewPersistent(fn)
	if p == nil {
		t.Fatal("expected persistent reference")
	}
	if p.Deref() != fn {
		t.Fatal("deref returned a different callable")
	}
	if n := rt.LivePersistents(); n != 1 {
		t.Fatalf("live persistents = %d, want 1", n)
	}

	p.Reset()
	if p.Deref() != nil {
		t.Fatal("deref after reset should be nil")
	}
	if n := rt.LivePersistents(); n != 0 {
		t.Fatalf("live persistents after reset = %d, want 0", n)
	}

	// Reset is idempotent.
	p.Reset()
	if n := rt.LivePersistents(); n != 0 {
		t.Fatalf("double reset changed live count to %d", n)
	}
}

func TestPersistent_SlotReuse(t *testing.T) {
	rt := NewRuntime()
	fn := NewFunction("cb", func(this Value, args []Value) Value { return Undefined() })

	first := rt.NewPersistent(fn)
	first.Reset()

	second := rt.NewPersistent(fn)
	if second.Deref() != fn {
		t.Fatal("reused slot lost the callable")
	}
	if first.Deref() != nil {
		t.Fatal("reset reference came back alive after slot reuse")
	}
	second.Reset()
}

func TestPersistent_NilFunction(t *testing.T) {
	rt := NewRuntime()
	if p := rt.NewPersistent(nil); p != nil {
		t.Fatal("expected nil persistent for nil callable")
	}
}

func TestHandleScope_TrackAndExit(t *testing.T) {
	rt := NewRuntime()

	outer := rt.EnterScope()
	outer.Track(Number(1))
	inner := rt.EnterScope()
	inner.Track(Number(2))
	inner.Track(String("x"))

	if d := rt.ScopeDepth(); d != 2 {
		t.Fatalf("scope depth = %d, want 2", d)
	}
	if n := rt.LiveLocals(); n != 3 {
		t.Fatalf("live locals = %d, want 3", n)
	}

	inner.Exit()
	if n := rt.LiveLocals(); n != 1 {
		t.Fatalf("live locals after inner exit = %d, want 1", n)
	}

	outer.Exit()
	if d := rt.ScopeDepth(); d != 0 {
		t.Fatalf("scope depth after exits = %d, want 0", d)
	}

	// Exit is idempotent.
	outer.Exit()
	if d := rt.ScopeDepth(); d != 0 {
		t.Fatalf("double exit changed depth to %d", d)
	}
}

func TestHandleScope_OutOfOrderExitPanics(t *testing.T) {
	rt := NewRuntime()
	outer := rt.EnterScope()
	rt.EnterScope()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-order scope exit")
		}
	}()
	outer.Exit()
}

func TestInvoke_TracksResult(t *testing.T) {
	rt := NewRuntime()
	fn := NewFunction("cb", func(this Value, args []Value) Value {
		return Number(42)
	})

	scope := rt.EnterScope()
	result := rt.Invoke(fn, rt.Global(), nil)
	if result.Float() != 42 {
		t.Fatalf("result = %v, want 42", result)
	}
	if n := rt.LiveLocals(); n != 1 {
		t.Fatalf("live locals = %d, want 1", n)
	}
	scope.Exit()
}

func TestInvoke_NilCallable(t *testing.T) {
	rt := NewRuntime()

	result := rt.Invoke(nil, rt.Global(), nil)
	if result.Kind() != KindUndefined {
		t.Fatalf("result = %v, want undefined", result)
	}
	if thrown := rt.TakeThrown(); len(thrown) != 1 {
		t.Fatalf("%d errors surfaced, want 1", len(thrown))
	}
}

func TestThrow_QueueAndDrain(t *testing.T) {
	rt := NewRuntime()

	rt.Throw(errors.New("first"))
	rt.Throw(errors.New("second"))

	thrown := rt.TakeThrown()
	if len(thrown) != 2 {
		t.Fatalf("drained %d errors, want 2", len(thrown))
	}
	if thrown[0].Error() != "first" || thrown[1].Error() != "second" {
		t.Fatalf("errors out of order: %v", thrown)
	}
	if rest := rt.TakeThrown(); len(rest) != 0 {
		t.Fatalf("second drain returned %d errors", len(rest))
	}
}

func TestThrow_UncaughtHandler(t *testing.T) {
	rt := NewRuntime()

	var seen []error
	rt.OnUncaught(func(err error) { seen = append(seen, err) })

	rt.Throw(errors.New("boom"))
	if len(seen) != 1 {
		t.Fatalf("handler saw %d errors, want 1", len(seen))
	}
	if queued := rt.TakeThrown(); len(queued) != 0 {
		t.Fatalf("handler-delivered error was also queued: %v", queued)
	}
}

func TestValue_Absence(t *testing.T) {
	if !Undefined().IsAbsent() || !Null().IsAbsent() {
		t.Fatal("undefined and null must be absent")
	}
	for _, v := range []Value{Boolean(false), Number(0), String("")} {
		if v.IsAbsent() {
			t.Fatalf("%v must not be absent", v)
		}
	}
}

func TestValue_String(t *testing.T) {
	cases := map[string]Value{
		"undefined":       Undefined(),
		"null":            Null(),
		"true":            Boolean(true),
		"1.5":             Number(1.5),
		`"hi"`:            String("hi"),
		"[object global]": NewRuntime().Global(),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
