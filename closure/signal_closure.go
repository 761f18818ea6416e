package closure

import (
	"fmt"

	"go.uber.org/zap"

	girerrors "github.com/backwards-rat-race/node-gir/errors"
	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gsignal"
	"github.com/backwards-rat-race/node-gir/gvalue"
	"github.com/backwards-rat-race/node-gir/js"
)

// SignalClosure bridges one native signal to one host-runtime
// callback. It holds a counted reference to the signal's metadata and
// a persistent reference to the callback; both are released by the
// finalize notifier when the signal system invalidates the closure.
type SignalClosure struct {
	closure    *gsignal.Closure
	rt         *js.Runtime
	conv       gvalue.Converter
	callback   *js.Persistent
	signalInfo *gi.SignalInfo
}

// New constructs a closure for the named signal of the given type.
// It returns nil, meaning no closure produced, when the type is not
// registered, does not declare the signal on itself or a declared
// interface, or the callback is not invocable. No references are
// retained on that path.
func New(repo *gi.Repository, rt *js.Runtime, conv gvalue.Converter, gtype gi.GType, signalName string, callback *js.Function) *SignalClosure {
	if callback == nil {
		return nil
	}

	signalInfo := findSignal(repo, gtype, signalName)
	if signalInfo == nil {
		return nil
	}

	sc := &SignalClosure{
		closure:    gsignal.NewClosure(),
		rt:         rt,
		conv:       conv,
		callback:   rt.NewPersistent(callback),
		signalInfo: signalInfo,
	}
	sc.closure.AddFinalizeNotifier(sc.finalize)
	sc.closure.SetMarshal(sc.marshal)
	return sc
}

// Closure returns the signal-system closure to connect.
func (sc *SignalClosure) Closure() *gsignal.Closure {
	return sc.closure
}

// Connect constructs a closure for the instance's type and registers
// it with the signal system in one step. The boolean is false when no
// closure was produced.
func Connect(sys *gsignal.System, repo *gi.Repository, rt *js.Runtime, conv gvalue.Converter, inst *gsignal.Instance, signalName string, callback *js.Function) (gsignal.HandlerID, bool) {
	sc := New(repo, rt, conv, inst.GType(), signalName, callback)
	if sc == nil {
		return 0, false
	}
	return sys.Connect(inst, signalName, sc.Closure()), true
}

// findSignal resolves signal metadata for (gtype, name). Only object
// and interface records can declare signals; any other target kind is
// a miss. The transient reference on the type record is released on
// every path; the returned metadata carries its own reference.
func findSignal(repo *gi.Repository, gtype gi.GType, name string) *gi.SignalInfo {
	target := repo.FindByGType(gtype)
	if target == nil {
		return nil
	}
	var guard gi.Guard
	guard.Add(target)
	defer guard.Release()

	finder, ok := target.(gi.SignalFinder)
	if !ok {
		return nil
	}
	return finder.FindSignal(name)
}

// marshal is the entry point the signal system calls for one emission.
// It converts each native parameter to a runtime value in declaration
// order, invokes the callback, and converts a non-absent result into
// the return slot.
func (sc *SignalClosure) marshal(ret *gvalue.Value, params []gvalue.Value) {
	scope := sc.rt.EnterScope()
	defer scope.Exit()

	// The signal system and the metadata must agree on the parameter
	// count; more values than declared descriptors means the contract
	// between them is broken and continuing would read past the
	// declared parameter list.
	if n, declared := len(params), sc.signalInfo.NParams(); n > declared {
		panic(fmt.Sprintf("closure: signal %q emitted with %d values but declares %d parameters",
			sc.signalInfo.Name(), n, declared))
	}

	args := make([]js.Value, len(params))
	for i := range params {
		var guard gi.Guard
		argInfo := sc.signalInfo.Param(i)
		guard.Add(argInfo)
		typeInfo := argInfo.Type()
		guard.Add(typeInfo)

		jv, err := sc.conv.FromGValue(&params[i], typeInfo)
		if err != nil {
			// The converter decides what the callback sees on a failed
			// argument conversion; the emission goes ahead with it.
			Logger().Debug("argument conversion degraded",
				zap.String("signal", sc.signalInfo.Name()),
				zap.Int("arg", i),
				zap.Error(err))
		}
		args[i] = scope.Track(jv)
		guard.Release()
	}

	result := sc.rt.Invoke(sc.callback.Deref(), sc.rt.Global(), args)

	if result.IsAbsent() {
		// No value from the callback: the return slot stays untouched
		// and the signal system applies its own default.
		return
	}
	if ret == nil || ret.Tag() == gi.TagVoid {
		return
	}

	if err := sc.conv.ToGValue(result, ret.Tag(), ret); err != nil {
		// The native emit cannot unwind a runtime error; zero the slot
		// so the emitter never sees indeterminate contents, and surface
		// the failure on the runtime's error channel.
		ret.SetZero()
		sc.rt.Throw(girerrors.ConversionFailed(girerrors.PhaseMarshal,
			"cannot convert return value of callback to expected native type", err))
	}
}

// finalize runs exactly once, when the signal system invalidates the
// closure. It balances the references taken at construction.
func (sc *SignalClosure) finalize() {
	sc.signalInfo.Unref()
	sc.callback.Reset()
}
