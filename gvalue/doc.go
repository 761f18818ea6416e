// Package gvalue carries the native value representation (the GValue
// analogue) and the conversion collaborator the signal bridge
// delegates to.
//
// A Value is a typed slot: a type tag plus a payload, with an explicit
// "set" bit so an untouched return slot is distinguishable from one
// holding a zero. The Converter interface is the two-way conversion
// contract; NewConverter returns the default implementation covering
// the scalar types signals carry. Struct and container marshalling is
// out of scope for the bridge and not provided here.
package gvalue
