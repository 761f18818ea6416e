// Package gi models the GObject-Introspection repository consumed by
// the signal bridge.
//
// A Repository maps registered native type identifiers (GType) to info
// records. Records form a closed set of kinds; only object and
// interface records can be queried for signals, which is expressed by
// the SignalFinder capability interface.
//
// # Reference counting
//
// Info records are reference counted the way libgirepository hands out
// GIBaseInfo references: every lookup that returns an info
// (Repository.FindByGType, FindSignal, SignalInfo.Param,
// ArgInfo.Type, SignalInfo.ReturnType) returns it with a fresh
// reference the caller must balance with Unref. The Guard type scopes
// a batch of acquisitions so release happens on every control path:
//
//	var g gi.Guard
//	defer g.Release()
//	info := repo.FindByGType(gt)
//	if info == nil {
//	    return nil
//	}
//	g.Add(info)
//
// Nothing is freed when a count reaches its floor (Go is garbage
// collected); the counts exist so the bridge's acquire/release
// discipline stays observable and leak-checkable. Repository.Close
// reports records with outstanding references.
package gi
