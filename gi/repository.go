package gi

import (
	"sort"
	"sync"

	"go.uber.org/multierr"

	girerrors "github.com/backwards-rat-race/node-gir/errors"
)

// registrable is the closed set of info kinds a repository can hold.
type registrable interface {
	Info
	GType() GType
	setGType(GType)
}

// Repository maps GTypes to registered info records.
type Repository struct {
	mu     sync.RWMutex
	byType map[GType]registrable
	byName map[string]GType
	next   GType
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		byType: make(map[GType]registrable),
		byName: make(map[string]GType),
		next:   1,
	}
}

// Register adds an info record and returns its GType. Records built
// with gtype 0 are assigned the next free GType.
func (r *Repository) Register(info Info) (GType, error) {
	reg, ok := info.(registrable)
	if !ok {
		return 0, girerrors.InvalidInput(girerrors.PhaseLoad, "info kind "+info.Kind().String()+" cannot be registered")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	gt := reg.GType()
	if gt == 0 {
		gt = r.next
		reg.setGType(gt)
	}
	if _, exists := r.byType[gt]; exists {
		return 0, girerrors.New(girerrors.PhaseLoad, girerrors.KindInvalidInput).
			Detail("GType %d already registered", gt).
			Build()
	}
	if _, exists := r.byName[info.Name()]; exists {
		return 0, girerrors.New(girerrors.PhaseLoad, girerrors.KindInvalidInput).
			Detail("type %q already registered", info.Name()).
			Build()
	}

	r.byType[gt] = reg
	r.byName[info.Name()] = gt
	if gt >= r.next {
		r.next = gt + 1
	}
	return gt, nil
}

// FindByGType returns the record for gt with a fresh reference, or nil
// if no such type is registered.
func (r *Repository) FindByGType(gt GType) Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.byType[gt]
	if !ok {
		return nil
	}
	info.Ref()
	return info
}

// TypeByName resolves a registered type name to its GType.
func (r *Repository) TypeByName(name string) (GType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gt, ok := r.byName[name]
	return gt, ok
}

// Names returns the registered type names, sorted.
func (r *Repository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close verifies that no caller still holds references into the
// repository. Every record and its signal metadata should be back at
// its base count of 1 (the owner's); anything above that is a leaked
// acquire and is reported, one error per leaking record.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	swept := make(map[*SignalInfo]bool)
	for _, info := range r.byType {
		if n := info.RefCount(); n > 1 {
			err = multierr.Append(err, girerrors.RefLeak(info.Kind().String()+" "+info.Name(), n-1))
		}
		for _, s := range signalsOf(info) {
			if swept[s] {
				continue
			}
			swept[s] = true
			if n := s.RefCount(); n > 1 {
				err = multierr.Append(err, girerrors.RefLeak("signal "+info.Name()+"::"+s.Name(), n-1))
			}
			for _, a := range s.params {
				if n := a.RefCount(); n > 1 {
					err = multierr.Append(err, girerrors.RefLeak("arg "+s.Name()+"."+a.Name(), n-1))
				}
				if n := a.typ.RefCount(); n > 1 {
					err = multierr.Append(err, girerrors.RefLeak("type of "+s.Name()+"."+a.Name(), n-1))
				}
			}
			if n := s.ret.RefCount(); n > 1 {
				err = multierr.Append(err, girerrors.RefLeak("return type of "+s.Name(), n-1))
			}
		}
	}
	r.byType = make(map[GType]registrable)
	r.byName = make(map[string]GType)
	return err
}

// signalsOf includes signals reachable through an object's declared
// interfaces, so embedded interfaces are leak-checked even when never
// registered on their own.
func signalsOf(info Info) []*SignalInfo {
	switch t := info.(type) {
	case *ObjectInfo:
		return t.Signals()
	case *InterfaceInfo:
		return t.signals
	default:
		return nil
	}
}
