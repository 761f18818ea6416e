// Package nodegir bridges GObject-style signals to host-runtime
// callbacks.
//
// When a native object emits a signal, the bridge looks up the
// signal's introspection metadata, converts each native parameter to a
// runtime value, invokes the connected callback with those values, and
// converts the callback's result back into the signal's return slot.
// Metadata and callback references are counted and released exactly
// once when a connection is torn down.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	nodegir/       Root package with the Bridge facade
//	├── closure/   Signal-closure core: construction, marshalling, finalization
//	├── gi/        Introspection repository: type records, signal metadata, refcounts
//	├── gsignal/   Signal system: closures, connections, emission dispatch
//	├── gvalue/    Native values and the GValue <-> JS conversion collaborator
//	├── js/        Host runtime: dynamic values, callables, scopes, error channel
//	└── errors/    Structured error types
//
// # Quick Start
//
// Define types, connect a callback, emit:
//
//	bridge := nodegir.New()
//	defer bridge.Close()
//
//	_ = bridge.Repo.LoadDefinitionsFile("types.yaml")
//	gt, _ := bridge.Repo.TypeByName("Widget")
//	w := gsignal.NewInstance("w1", gt)
//
//	cb := js.NewFunction("onResize", func(this js.Value, args []js.Value) js.Value {
//	    fmt.Println("resized to", args[0], args[1])
//	    return js.Undefined()
//	})
//	id, ok := bridge.Connect(w, "resize", cb)
//	if !ok {
//	    // Widget declares no "resize" signal
//	}
//
//	bridge.Emit(w, "resize", nil,
//	    gvalue.NewInt(gi.TagInt32, 10),
//	    gvalue.NewInt(gi.TagInt32, 20))
//	bridge.Sys.Disconnect(id)
package nodegir
