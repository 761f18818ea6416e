package js

import "strconv"

// Kind tags the dynamic type of a Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "undefined"
	}
}

// Value is a dynamic host-runtime value.
type Value struct {
	obj  *Object
	fn   *Function
	str  string
	num  float64
	kind Kind
}

// Undefined returns the canonical absent value.
func Undefined() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Boolean wraps a bool.
func Boolean(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.num = 1
	}
	return v
}

// Number wraps a float64. All numeric signal parameters surface as
// numbers, matching JS semantics.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// FuncValue wraps a callable.
func FuncValue(f *Function) Value { return Value{kind: KindFunction, fn: f} }

// Kind returns the value's dynamic type.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the runtime's "no value"
// marker: undefined or null.
func (v Value) IsAbsent() bool {
	return v.kind == KindUndefined || v.kind == KindNull
}

// Bool returns the boolean payload. Only meaningful for KindBoolean.
func (v Value) Bool() bool { return v.num != 0 }

// Float returns the numeric payload. Only meaningful for KindNumber.
func (v Value) Float() float64 { return v.num }

// Str returns the string payload. Only meaningful for KindString.
func (v Value) Str() string { return v.str }

// Func returns the callable payload, or nil.
func (v Value) Func() *Function { return v.fn }

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindObject:
		if v.obj != nil && v.obj.name != "" {
			return "[object " + v.obj.name + "]"
		}
		return "[object]"
	case KindFunction:
		if v.fn != nil && v.fn.name != "" {
			return "function " + v.fn.name
		}
		return "function"
	}
	return "undefined"
}

// Object is a bare runtime object. The bridge only ever needs object
// identity (the Global receiver), not properties.
type Object struct {
	name string
}
