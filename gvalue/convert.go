package gvalue

import (
	"math"

	girerrors "github.com/backwards-rat-race/node-gir/errors"
	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/js"
)

// Converter performs single-value conversions between the native and
// host-runtime representations. The bridge supplies the type
// descriptor; the converter owns the coercion rules.
type Converter interface {
	// FromGValue converts a native value to a runtime value. On
	// failure it returns the value the runtime should see anyway
	// (typically undefined) alongside the error.
	FromGValue(v *Value, ti *gi.TypeInfo) (js.Value, error)

	// ToGValue converts a runtime value into out, which must accept
	// the given tag. out is untouched on failure.
	ToGValue(jv js.Value, tag gi.TypeTag, out *Value) error
}

// NewConverter returns the default scalar converter.
func NewConverter() Converter {
	return basicConverter{}
}

type basicConverter struct{}

func (basicConverter) FromGValue(v *Value, ti *gi.TypeInfo) (js.Value, error) {
	tag := ti.Tag()
	if v.Tag() != tag {
		return js.Undefined(), girerrors.TypeMismatch(girerrors.PhaseConvert, tag.String(), v.Tag().String())
	}

	switch tag {
	case gi.TagVoid:
		return js.Undefined(), nil
	case gi.TagBoolean:
		return js.Boolean(v.Bool()), nil
	case gi.TagInt8, gi.TagInt16, gi.TagInt32, gi.TagInt64:
		return js.Number(float64(v.Int())), nil
	case gi.TagUint8, gi.TagUint16, gi.TagUint32, gi.TagUint64:
		return js.Number(float64(v.Uint())), nil
	case gi.TagFloat, gi.TagDouble:
		return js.Number(v.Float()), nil
	case gi.TagUTF8:
		return js.String(v.Str()), nil
	default:
		return js.Undefined(), girerrors.Unsupported(girerrors.PhaseConvert, "native type "+tag.String())
	}
}

func (basicConverter) ToGValue(jv js.Value, tag gi.TypeTag, out *Value) error {
	switch tag {
	case gi.TagBoolean:
		if jv.Kind() != js.KindBoolean {
			return mismatch(tag, jv)
		}
		out.SetBool(jv.Bool())
		return nil

	case gi.TagInt8, gi.TagInt16, gi.TagInt32, gi.TagInt64:
		if jv.Kind() != js.KindNumber {
			return mismatch(tag, jv)
		}
		i, ok := intInRange(jv.Float(), tag)
		if !ok {
			return girerrors.Overflow(girerrors.PhaseConvert, jv.Float(), tag.String())
		}
		out.SetInt(i)
		return nil

	case gi.TagUint8, gi.TagUint16, gi.TagUint32, gi.TagUint64:
		if jv.Kind() != js.KindNumber {
			return mismatch(tag, jv)
		}
		u, ok := uintInRange(jv.Float(), tag)
		if !ok {
			return girerrors.Overflow(girerrors.PhaseConvert, jv.Float(), tag.String())
		}
		out.SetUint(u)
		return nil

	case gi.TagFloat, gi.TagDouble:
		if jv.Kind() != js.KindNumber {
			return mismatch(tag, jv)
		}
		out.SetFloat(jv.Float())
		return nil

	case gi.TagUTF8:
		if jv.Kind() != js.KindString {
			return mismatch(tag, jv)
		}
		out.SetString(jv.Str())
		return nil

	default:
		return girerrors.Unsupported(girerrors.PhaseConvert, "native type "+tag.String())
	}
}

func mismatch(tag gi.TypeTag, jv js.Value) error {
	return girerrors.TypeMismatch(girerrors.PhaseConvert, tag.String(), jv.Kind().String())
}

var intBounds = map[gi.TypeTag][2]int64{
	gi.TagInt8:  {math.MinInt8, math.MaxInt8},
	gi.TagInt16: {math.MinInt16, math.MaxInt16},
	gi.TagInt32: {math.MinInt32, math.MaxInt32},
}

func intInRange(f float64, tag gi.TypeTag) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if tag == gi.TagInt64 {
		// MaxInt64 is not exactly representable as float64; compare
		// against the 2^63 boundaries in float space.
		if t < math.Ldexp(-1, 63) || t >= math.Ldexp(1, 63) {
			return 0, false
		}
		return int64(t), true
	}
	b := intBounds[tag]
	if t < float64(b[0]) || t > float64(b[1]) {
		return 0, false
	}
	return int64(t), true
}

var uintMax = map[gi.TypeTag]uint64{
	gi.TagUint8:  math.MaxUint8,
	gi.TagUint16: math.MaxUint16,
	gi.TagUint32: math.MaxUint32,
	gi.TagUint64: math.MaxUint64,
}

func uintInRange(f float64, tag gi.TypeTag) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	t := math.Trunc(f)
	if tag == gi.TagUint64 {
		if t >= math.Ldexp(1, 64) {
			return 0, false
		}
		return uint64(t), true
	}
	if t > float64(uintMax[tag]) {
		return 0, false
	}
	return uint64(t), true
}
