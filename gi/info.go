package gi

import (
	"fmt"
	"sync/atomic"
)

// GType identifies a registered native type. 0 is reserved and invalid.
type GType uint64

// TypeTag describes the fundamental type of a signal parameter or
// return value. Container and struct types are not marshalled by the
// signal bridge and have no tag here.
type TypeTag uint8

const (
	TagVoid TypeTag = iota
	TagBoolean
	TagInt8
	TagUint8
	TagInt16
	TagUint16
	TagInt32
	TagUint32
	TagInt64
	TagUint64
	TagFloat
	TagDouble
	TagUTF8
)

var tagNames = map[TypeTag]string{
	TagVoid:    "void",
	TagBoolean: "boolean",
	TagInt8:    "int8",
	TagUint8:   "uint8",
	TagInt16:   "int16",
	TagUint16:  "uint16",
	TagInt32:   "int32",
	TagUint32:  "uint32",
	TagInt64:   "int64",
	TagUint64:  "uint64",
	TagFloat:   "float",
	TagDouble:  "double",
	TagUTF8:    "utf8",
}

func (t TypeTag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// InfoKind tags the variant of an info record.
type InfoKind uint8

const (
	KindInvalid InfoKind = iota
	KindObject
	KindInterface
	KindEnum
	KindSignal
	KindArg
	KindType
)

func (k InfoKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindSignal:
		return "signal"
	case KindArg:
		return "arg"
	case KindType:
		return "type"
	default:
		return "invalid"
	}
}

// Info is the common surface of all introspection records.
type Info interface {
	Name() string
	Kind() InfoKind

	// Ref acquires a counted reference; Unref releases one.
	Ref()
	Unref()

	// RefCount reports outstanding references, for leak diagnostics.
	RefCount() int32
}

// SignalFinder is the capability of info kinds that declare signals.
// Only object and interface records implement it.
type SignalFinder interface {
	Info

	// FindSignal returns the named signal with a fresh reference, or
	// nil if the type does not declare it. Matching is exact and
	// case-sensitive; signal names are unique per type.
	FindSignal(name string) *SignalInfo

	// Signals enumerates declared signals without taking references.
	Signals() []*SignalInfo
}

// baseInfo carries the state shared by every info record. The owner's
// reference is counted, so a freshly built record starts at 1.
type baseInfo struct {
	name string
	kind InfoKind
	refs atomic.Int32
}

func newBaseInfo(name string, kind InfoKind) baseInfo {
	b := baseInfo{name: name, kind: kind}
	b.refs.Store(1)
	return b
}

func (b *baseInfo) Name() string   { return b.name }
func (b *baseInfo) Kind() InfoKind { return b.kind }

func (b *baseInfo) Ref() {
	b.refs.Add(1)
}

func (b *baseInfo) Unref() {
	if b.refs.Add(-1) < 0 {
		panic(fmt.Sprintf("gi: unref of released %s info %q", b.kind, b.name))
	}
}

func (b *baseInfo) RefCount() int32 {
	return b.refs.Load()
}

// Unrefer is anything holding a releasable reference.
type Unrefer interface {
	Unref()
}

// Guard collects acquired references and releases them all at once,
// regardless of which control path exits the acquiring function.
type Guard struct {
	held []Unrefer
}

// Add records a reference for later release.
func (g *Guard) Add(u Unrefer) {
	g.held = append(g.held, u)
}

// Release unrefs everything held, most recent first. The guard is
// empty afterwards, so a second Release is a no-op.
func (g *Guard) Release() {
	for i := len(g.held) - 1; i >= 0; i-- {
		g.held[i].Unref()
	}
	g.held = g.held[:0]
}
