package nodegir

import (
	"go.uber.org/multierr"

	"github.com/backwards-rat-race/node-gir/closure"
	girerrors "github.com/backwards-rat-race/node-gir/errors"
	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gsignal"
	"github.com/backwards-rat-race/node-gir/gvalue"
	"github.com/backwards-rat-race/node-gir/js"
)

// Bridge wires the collaborators together: the introspection
// repository, the host runtime, the signal system, and the value
// converter. The fields are exported so callers can reach each
// collaborator directly.
type Bridge struct {
	Repo *gi.Repository
	RT   *js.Runtime
	Sys  *gsignal.System
	Conv gvalue.Converter
}

// New creates a bridge with empty collaborators and the default
// converter.
func New() *Bridge {
	return &Bridge{
		Repo: gi.NewRepository(),
		RT:   js.NewRuntime(),
		Sys:  gsignal.NewSystem(),
		Conv: gvalue.NewConverter(),
	}
}

// Connect binds a callback to the named signal of the instance's type.
// ok is false when the type does not declare the signal; nothing is
// retained in that case.
func (b *Bridge) Connect(inst *gsignal.Instance, signal string, callback *js.Function) (gsignal.HandlerID, bool) {
	return closure.Connect(b.Sys, b.Repo, b.RT, b.Conv, inst, signal, callback)
}

// Emit dispatches one signal emission and reports how many handlers
// ran. ret may be nil for void signals.
func (b *Bridge) Emit(inst *gsignal.Instance, signal string, ret *gvalue.Value, params ...gvalue.Value) int {
	return b.Sys.Emit(inst, signal, ret, params...)
}

// Close tears down remaining connections, then verifies that every
// metadata and callback reference was released.
func (b *Bridge) Close() error {
	b.Sys.Close()

	err := b.Repo.Close()
	if n := b.RT.LivePersistents(); n > 0 {
		err = multierr.Append(err, girerrors.RefLeak("callback table", int32(n)))
	}
	return err
}
