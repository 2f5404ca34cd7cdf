// Package errors provides structured error types for the bitfield library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the specifier involved, the offending
// value and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindInvalidLayout).
//		Path("Header").
//		Spec("B7").
//		Detail("declared 8 bits, specifier has %d", 7).
//		Build()
//
// Or use the constructors for the two domain errors:
//
//	err := errors.OutOfBounds([]string{"Header", "len"}, raw, 12)
//	err := errors.InvalidBitPattern([]string{"Header", "kind"}, raw)
//
// Kind-only sentinels match any phase. Is and As wrap the standard library
// so callers need only this package:
//
//	if errors.Is(err, errors.ErrOutOfBounds) { ... }
//	if e, ok := errors.As(err); ok { raw, _ := e.Raw() }
package errors
