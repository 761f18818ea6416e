// Package gsignal is the native signal system the bridge plugs into:
// closures with a marshal hook and finalize notifiers, and a
// connection registry that dispatches emissions to them.
//
// A Closure is inert until given a marshal hook. The System invokes
// the hook once per emission and invalidates the closure exactly once
// when its connection is removed (Disconnect, DestroyInstance, or
// Close), at which point the finalize notifiers run. The hook runs
// without holding the closure's lock, so a handler may disconnect
// itself or emit further signals from inside its own dispatch.
package gsignal
