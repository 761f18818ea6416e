package gi

import "fmt"

// TypeInfo describes the type of one parameter or return slot.
type TypeInfo struct {
	baseInfo
	tag TypeTag
}

func newTypeInfo(tag TypeTag) *TypeInfo {
	return &TypeInfo{
		baseInfo: newBaseInfo(tag.String(), KindType),
		tag:      tag,
	}
}

// Tag returns the fundamental type tag.
func (t *TypeInfo) Tag() TypeTag { return t.tag }

// ArgInfo describes one declared signal parameter.
type ArgInfo struct {
	baseInfo
	typ *TypeInfo
}

// Type returns the argument's type info with a fresh reference.
func (a *ArgInfo) Type() *TypeInfo {
	a.typ.Ref()
	return a.typ
}

// SignalInfo is the introspection metadata for one signal: its ordered
// parameter descriptors and its return type.
type SignalInfo struct {
	baseInfo
	params []*ArgInfo
	ret    *TypeInfo
}

// NewSignal builds signal metadata. Parameter descriptors are created
// in declaration order.
func NewSignal(name string, ret TypeTag, params ...TypeTag) *SignalInfo {
	s := &SignalInfo{
		baseInfo: newBaseInfo(name, KindSignal),
		ret:      newTypeInfo(ret),
	}
	for i, tag := range params {
		s.params = append(s.params, &ArgInfo{
			baseInfo: newBaseInfo(fmt.Sprintf("arg%d", i), KindArg),
			typ:      newTypeInfo(tag),
		})
	}
	return s
}

// NParams reports the declared parameter count.
func (s *SignalInfo) NParams() int { return len(s.params) }

// ParamTags returns the declared parameter tags in order. No
// references are taken; this is an enumeration convenience for
// tooling.
func (s *SignalInfo) ParamTags() []TypeTag {
	tags := make([]TypeTag, len(s.params))
	for i, a := range s.params {
		tags[i] = a.typ.tag
	}
	return tags
}

// Param returns descriptor i with a fresh reference, or nil when i is
// out of the declared range.
func (s *SignalInfo) Param(i int) *ArgInfo {
	if i < 0 || i >= len(s.params) {
		return nil
	}
	a := s.params[i]
	a.Ref()
	return a
}

// ReturnType returns the return slot's type info with a fresh reference.
func (s *SignalInfo) ReturnType() *TypeInfo {
	s.ret.Ref()
	return s.ret
}

// ReturnTag is a convenience accessor that takes no reference.
func (s *SignalInfo) ReturnTag() TypeTag { return s.ret.tag }

// ObjectInfo is the record for an object-like registered type.
type ObjectInfo struct {
	baseInfo
	gtype   GType
	signals []*SignalInfo
	ifaces  []*InterfaceInfo
}

// NewObject builds an object record. Pass gtype 0 to have the
// repository assign one at registration.
func NewObject(name string, gtype GType) *ObjectInfo {
	return &ObjectInfo{
		baseInfo: newBaseInfo(name, KindObject),
		gtype:    gtype,
	}
}

func (o *ObjectInfo) GType() GType      { return o.gtype }
func (o *ObjectInfo) setGType(gt GType) { o.gtype = gt }

// AddSignal declares a signal on the object. The object owns the
// metadata's base reference.
func (o *ObjectInfo) AddSignal(s *SignalInfo) {
	o.signals = append(o.signals, s)
}

// AddInterface declares that the object implements an interface; its
// signals become findable through the object.
func (o *ObjectInfo) AddInterface(i *InterfaceInfo) {
	o.ifaces = append(o.ifaces, i)
}

// Signals enumerates the object's own signals followed by those of
// its declared interfaces. No references are taken.
func (o *ObjectInfo) Signals() []*SignalInfo {
	out := append([]*SignalInfo(nil), o.signals...)
	for _, i := range o.ifaces {
		out = append(out, i.signals...)
	}
	return out
}

// FindSignal searches the object's own signals, then its declared
// interfaces, in declaration order.
func (o *ObjectInfo) FindSignal(name string) *SignalInfo {
	for _, s := range o.signals {
		if s.name == name {
			s.Ref()
			return s
		}
	}
	for _, i := range o.ifaces {
		if s := i.FindSignal(name); s != nil {
			return s
		}
	}
	return nil
}

// InterfaceInfo is the record for an interface-like registered type.
type InterfaceInfo struct {
	baseInfo
	gtype   GType
	signals []*SignalInfo
}

// NewInterface builds an interface record. Pass gtype 0 to have the
// repository assign one at registration.
func NewInterface(name string, gtype GType) *InterfaceInfo {
	return &InterfaceInfo{
		baseInfo: newBaseInfo(name, KindInterface),
		gtype:    gtype,
	}
}

func (i *InterfaceInfo) GType() GType      { return i.gtype }
func (i *InterfaceInfo) setGType(gt GType) { i.gtype = gt }

// AddSignal declares a signal on the interface.
func (i *InterfaceInfo) AddSignal(s *SignalInfo) {
	i.signals = append(i.signals, s)
}

// Signals enumerates the interface's signals. No references are taken.
func (i *InterfaceInfo) Signals() []*SignalInfo {
	return append([]*SignalInfo(nil), i.signals...)
}

// FindSignal returns the named signal with a fresh reference, or nil.
func (i *InterfaceInfo) FindSignal(name string) *SignalInfo {
	for _, s := range i.signals {
		if s.name == name {
			s.Ref()
			return s
		}
	}
	return nil
}

// EnumInfo is a registered type kind that declares no signals. It
// exists so lookups against non-object targets resolve to a record the
// bridge must reject.
type EnumInfo struct {
	baseInfo
	gtype GType
}

// NewEnum builds an enum record.
func NewEnum(name string, gtype GType) *EnumInfo {
	return &EnumInfo{
		baseInfo: newBaseInfo(name, KindEnum),
		gtype:    gtype,
	}
}

func (e *EnumInfo) GType() GType      { return e.gtype }
func (e *EnumInfo) setGType(gt GType) { e.gtype = gt }
