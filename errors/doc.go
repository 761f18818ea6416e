// Package errors provides structured errors for the GIR signal bridge.
//
// Every error carries a Phase (where in the bridge it happened) and a
// Kind (what went wrong), plus optional native/JS type names and a
// detail message. Errors can be matched with errors.Is against a
// prototype sharing the same Phase and Kind:
//
//	if errors.Is(err, &girerrors.Error{Phase: girerrors.PhaseConvert, Kind: girerrors.KindConversionFailure}) {
//	    // a conversion failed during marshalling
//	}
//
// The Builder is used where several optional fields apply; the
// convenience constructors cover the common shapes.
package errors
