package gvalue

import (
	"strconv"

	"github.com/backwards-rat-race/node-gir/gi"
)

// Value is a typed native value slot. The zero Value is an
// uninitialized void slot.
type Value struct {
	s   string
	i   int64
	u   uint64
	f   float64
	tag gi.TypeTag
	b   bool
	set bool
}

// New returns an initialized but unset slot of the given type. The
// signal system hands the dispatcher return slots in this state.
func New(tag gi.TypeTag) Value {
	return Value{tag: tag}
}

// NewBool builds a set boolean value.
func NewBool(b bool) Value {
	return Value{tag: gi.TagBoolean, b: b, set: true}
}

// NewInt builds a set signed integer value of the given tag.
func NewInt(tag gi.TypeTag, i int64) Value {
	return Value{tag: tag, i: i, set: true}
}

// NewUint builds a set unsigned integer value of the given tag.
func NewUint(tag gi.TypeTag, u uint64) Value {
	return Value{tag: tag, u: u, set: true}
}

// NewFloat builds a set floating-point value of the given tag.
func NewFloat(tag gi.TypeTag, f float64) Value {
	return Value{tag: tag, f: f, set: true}
}

// NewString builds a set string value.
func NewString(s string) Value {
	return Value{tag: gi.TagUTF8, s: s, set: true}
}

// Tag returns the slot's declared type.
func (v *Value) Tag() gi.TypeTag { return v.tag }

// IsSet reports whether a payload has been stored.
func (v *Value) IsSet() bool { return v.set }

// SetZero stores the tag's zero value.
func (v *Value) SetZero() {
	*v = Value{tag: v.tag, set: true}
}

// SetBool stores a boolean payload.
func (v *Value) SetBool(b bool) {
	v.b = b
	v.set = true
}

// SetInt stores a signed integer payload.
func (v *Value) SetInt(i int64) {
	v.i = i
	v.set = true
}

// SetUint stores an unsigned integer payload.
func (v *Value) SetUint(u uint64) {
	v.u = u
	v.set = true
}

// SetFloat stores a floating-point payload.
func (v *Value) SetFloat(f float64) {
	v.f = f
	v.set = true
}

// SetString stores a string payload.
func (v *Value) SetString(s string) {
	v.s = s
	v.set = true
}

// Bool returns the boolean payload.
func (v *Value) Bool() bool { return v.b }

// Int returns the signed integer payload.
func (v *Value) Int() int64 { return v.i }

// Uint returns the unsigned integer payload.
func (v *Value) Uint() uint64 { return v.u }

// Float returns the floating-point payload.
func (v *Value) Float() float64 { return v.f }

// Str returns the string payload.
func (v *Value) Str() string { return v.s }

// String renders the value for diagnostics.
func (v Value) String() string {
	if !v.set {
		return "(" + v.tag.String() + " unset)"
	}
	switch v.tag {
	case gi.TagBoolean:
		return strconv.FormatBool(v.b)
	case gi.TagInt8, gi.TagInt16, gi.TagInt32, gi.TagInt64:
		return strconv.FormatInt(v.i, 10)
	case gi.TagUint8, gi.TagUint16, gi.TagUint32, gi.TagUint64:
		return strconv.FormatUint(v.u, 10)
	case gi.TagFloat, gi.TagDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case gi.TagUTF8:
		return strconv.Quote(v.s)
	default:
		return v.tag.String()
	}
}
