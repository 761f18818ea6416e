package gvalue

import (
	"math"
	"testing"

	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/js"
)

func typeInfoFor(t *testing.T, tag gi.TypeTag) *gi.TypeInfo {
	t.Helper()

	// Descriptors are only handed out by signal metadata; build a
	// one-parameter signal to obtain one.
	si := gi.NewSignal("probe", gi.TagVoid, tag)
	arg := si.Param(0)
	defer arg.Unref()
	ti := arg.Type()
	t.Cleanup(ti.Unref)
	return ti
}

func TestFromGValue_Scalars(t *testing.T) {
	conv := NewConverter()

	cases := []struct {
		name string
		val  Value
		tag  gi.TypeTag
		want js.Value
	}{
		{"bool", NewBool(true), gi.TagBoolean, js.Boolean(true)},
		{"int32", NewInt(gi.TagInt32, -7), gi.TagInt32, js.Number(-7)},
		{"int64", NewInt(gi.TagInt64, 1 << 40), gi.TagInt64, js.Number(float64(int64(1) << 40))},
		{"uint8", NewUint(gi.TagUint8, 255), gi.TagUint8, js.Number(255)},
		{"double", NewFloat(gi.TagDouble, 2.5), gi.TagDouble, js.Number(2.5)},
		{"string", NewString("hi"), gi.TagUTF8, js.String("hi")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := conv.FromGValue(&tc.val, typeInfoFor(t, tc.tag))
			if err != nil {
				t.Fatalf("FromGValue: %v", err)
			}
			if got != tc.want {
				t.Fatalf("FromGValue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromGValue_TagMismatch(t *testing.T) {
	conv := NewConverter()

	v := NewString("oops")
	got, err := conv.FromGValue(&v, typeInfoFor(t, gi.TagInt32))
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if got.Kind() != js.KindUndefined {
		t.Fatalf("degraded value = %v, want undefined", got)
	}
}

func TestToGValue_Scalars(t *testing.T) {
	conv := NewConverter()

	t.Run("bool", func(t *testing.T) {
		out := New(gi.TagBoolean)
		if err := conv.ToGValue(js.Boolean(true), gi.TagBoolean, &out); err != nil {
			t.Fatal(err)
		}
		if !out.IsSet() || !out.Bool() {
			t.Fatalf("out = %v", out)
		}
	})

	t.Run("int truncates", func(t *testing.T) {
		out := New(gi.TagInt32)
		if err := conv.ToGValue(js.Number(3.9), gi.TagInt32, &out); err != nil {
			t.Fatal(err)
		}
		if out.Int() != 3 {
			t.Fatalf("out = %v, want 3", out)
		}
	})

	t.Run("uint", func(t *testing.T) {
		out := New(gi.TagUint16)
		if err := conv.ToGValue(js.Number(65535), gi.TagUint16, &out); err != nil {
			t.Fatal(err)
		}
		if out.Uint() != 65535 {
			t.Fatalf("out = %v", out)
		}
	})

	t.Run("double", func(t *testing.T) {
		out := New(gi.TagDouble)
		if err := conv.ToGValue(js.Number(-0.25), gi.TagDouble, &out); err != nil {
			t.Fatal(err)
		}
		if out.Float() != -0.25 {
			t.Fatalf("out = %v", out)
		}
	})

	t.Run("string", func(t *testing.T) {
		out := New(gi.TagUTF8)
		if err := conv.ToGValue(js.String("ok"), gi.TagUTF8, &out); err != nil {
			t.Fatal(err)
		}
		if out.Str() != "ok" {
			t.Fatalf("out = %v", out)
		}
	})
}

func TestToGValue_Mismatch(t *testing.T) {
	conv := NewConverter()

	cases := []struct {
		name string
		jv   js.Value
		tag  gi.TypeTag
	}{
		{"string to bool", js.String("true"), gi.TagBoolean},
		{"bool to int", js.Boolean(true), gi.TagInt32},
		{"number to string", js.Number(1), gi.TagUTF8},
		{"undefined to double", js.Undefined(), gi.TagDouble},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := New(tc.tag)
			if err := conv.ToGValue(tc.jv, tc.tag, &out); err == nil {
				t.Fatal("expected mismatch error")
			}
			if out.IsSet() {
				t.Fatal("failed conversion wrote the slot")
			}
		})
	}
}

func TestToGValue_Overflow(t *testing.T) {
	conv := NewConverter()

	cases := []struct {
		name string
		f    float64
		tag  gi.TypeTag
	}{
		{"int8 high", 200, gi.TagInt8},
		{"int8 low", -200, gi.TagInt8},
		{"int32 high", math.MaxInt32 + 1.0, gi.TagInt32},
		{"int64 high", math.Ldexp(1, 63), gi.TagInt64},
		{"uint8 high", 256, gi.TagUint8},
		{"uint negative", -1, gi.TagUint32},
		{"uint64 high", math.Ldexp(1, 64), gi.TagUint64},
		{"nan", math.NaN(), gi.TagInt32},
		{"inf", math.Inf(1), gi.TagUint32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := New(tc.tag)
			if err := conv.ToGValue(js.Number(tc.f), tc.tag, &out); err == nil {
				t.Fatalf("expected overflow error for %v into %s", tc.f, tc.tag)
			}
		})
	}
}

func TestToGValue_Boundaries(t *testing.T) {
	conv := NewConverter()

	out := New(gi.TagInt8)
	if err := conv.ToGValue(js.Number(-128), gi.TagInt8, &out); err != nil {
		t.Fatalf("min int8: %v", err)
	}
	if out.Int() != -128 {
		t.Fatalf("out = %v", out)
	}

	out = New(gi.TagUint64)
	if err := conv.ToGValue(js.Number(math.Ldexp(1, 53)), gi.TagUint64, &out); err != nil {
		t.Fatalf("2^53 into uint64: %v", err)
	}
}

func TestValue_SetZero(t *testing.T) {
	v := NewInt(gi.TagInt32, 41)
	v.SetZero()
	if !v.IsSet() || v.Int() != 0 {
		t.Fatalf("after SetZero: %v", v)
	}
	if v.Tag() != gi.TagInt32 {
		t.Fatalf("SetZero changed the tag to %s", v.Tag())
	}
}
