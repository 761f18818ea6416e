// Package closure binds native signals to host-runtime callbacks.
//
// A SignalClosure is constructed for one (type, signal, callback)
// triple. Construction resolves the signal's introspection metadata;
// if the type does not declare the signal (directly or through an
// interface), no closure is produced; that is a normal lookup miss,
// not an error. A connection needs a new closure; closures are never
// rebound.
//
// Once connected, the signal system drives the closure's marshal hook
// on every emission: each native parameter is converted to a runtime
// value using the signal's per-parameter type descriptors, the
// callback is invoked with those values in declaration order, and a
// non-absent result is converted back into the signal's return slot.
// When the connection is torn down the finalize notifier releases the
// metadata reference and the callback reference, each exactly once.
package closure
