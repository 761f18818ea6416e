// Package js is the host-runtime side of the signal bridge: dynamic
// values, callable functions, and the reference discipline the bridge
// relies on.
//
// Values are tagged dynamic values (undefined, null, boolean, number,
// string, object, function). A Runtime owns the ambient Global
// receiver, the table of Persistent function references, the stack of
// HandleScopes that track values materialized during a dispatch, and
// the error channel errors are surfaced on via Throw.
//
// # Persistent references
//
// A callback connected to a signal must outlive the call that
// connected it, so the bridge holds it through a Persistent: a counted
// slot in the runtime's table. Reset releases the slot; Reset is
// idempotent, matching the persistent-handle semantics of the JS
// engines this models.
//
// # Handle scopes
//
// Dispatch wraps each invocation in a HandleScope. Values tracked in
// the scope are reclaimed at Exit, which keeps per-emission garbage
// bounded and observable (Runtime.LiveLocals).
package js
