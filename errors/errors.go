package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // signal metadata lookup
	PhaseConnect Phase = "connect" // handler registration
	PhaseMarshal Phase = "marshal" // signal emission dispatch
	PhaseConvert Phase = "convert" // GValue <-> JS value conversion
	PhaseRuntime Phase = "runtime" // host runtime operations
	PhaseLoad    Phase = "load"    // repository definition loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindTypeMismatch      Kind = "type_mismatch"
	KindConversionFailure Kind = "conversion_failure"
	KindOverflow          Kind = "overflow"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidData       Kind = "invalid_data"
	KindRefLeak           Kind = "ref_leak"
	KindUnsupported       Kind = "unsupported"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GType  string
	JSType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GType != "" || e.JSType != "" {
		b.WriteString(": ")
		if e.GType != "" && e.JSType != "" {
			b.WriteString("native type ")
			b.WriteString(e.GType)
			b.WriteString(", JS type ")
			b.WriteString(e.JSType)
		} else if e.GType != "" {
			b.WriteString("native type ")
			b.WriteString(e.GType)
		} else {
			b.WriteString("JS type ")
			b.WriteString(e.JSType)
		}
	}

	if e.Detail != "" {
		if e.GType != "" || e.JSType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GType sets the native type name
func (b *Builder) GType(t string) *Builder {
	b.err.GType = t
	return b
}

// JSType sets the JS-side type name
func (b *Builder) JSType(t string) *Builder {
	b.err.JSType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, gType, jsType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GType:  gType,
		JSType: jsType,
	}
}

// ConversionFailed creates a conversion failure error
func ConversionFailed(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConversionFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		GType:  targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// RefLeak creates a reference-leak diagnostic error
func RefLeak(what string, count int32) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindRefLeak,
		Detail: fmt.Sprintf("%s has %d outstanding reference(s)", what, count),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Load creates a repository loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
