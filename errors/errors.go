package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"lukechampine.com/uint128"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile  Phase = "compile"  // layout and specifier construction
	PhaseEncode   Phase = "encode"   // logical value to bits
	PhaseDecode   Phase = "decode"   // bits to logical value
	PhaseValidate Phase = "validate" // externally supplied buffers
	PhaseMemory   Phase = "memory"   // linear memory access
	PhaseParse    Phase = "parse"    // field spec / WIT parsing
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds       Kind = "out_of_bounds"
	KindInvalidBitPattern Kind = "invalid_bit_pattern"
	KindTypeMismatch      Kind = "type_mismatch"
	KindInvalidLayout     Kind = "invalid_layout"
	KindFieldUnknown      Kind = "field_unknown"
	KindUnsupported       Kind = "unsupported"
	KindInvalidInput      Kind = "invalid_input"
)

// Sentinels matched by kind alone, regardless of phase.
var (
	ErrOutOfBounds       = &Error{Kind: KindOutOfBounds}
	ErrInvalidBitPattern = &Error{Kind: KindInvalidBitPattern}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Spec   string
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

	if e.GoType != "" || e.Spec != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Spec != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", specifier ")
			b.WriteString(e.Spec)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("specifier ")
			b.WriteString(e.Spec)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Spec != "" {
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

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Raw returns the offending bit pattern of an out_of_bounds or
// invalid_bit_pattern error.
func (e *Error) Raw() (uint128.Uint128, bool) {
	switch v := e.Value.(type) {
	case uint128.Uint128:
		return v, true
	case uint64:
		return uint128.From64(v), true
	default:
		return uint128.Zero, false
	}
}

// WithPath returns a copy of e with prefix prepended to its path.
func (e *Error) WithPath(prefix ...string) *Error {
	c := *e
	c.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &c
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Spec sets the specifier name
func (b *Builder) Spec(s string) *Builder {
	b.err.Spec = s
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

// OutOfBounds creates an encode-time error for a value that needs more
// than bits bits.
func OutOfBounds(path []string, raw uint128.Uint128, bits int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("value %s does not fit in %d bits", raw, bits),
		Value:  raw,
	}
}

// InvalidBitPattern creates a decode-time error for bits that are not a
// member of the field's domain.
func InvalidBitPattern(path []string, raw uint128.Uint128) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBitPattern,
		Path:   path,
		Detail: fmt.Sprintf("invalid bit pattern %#x", raw.Big()),
		Value:  raw,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, spec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Spec:   spec,
	}
}

// InvalidLayout creates a compile-time layout error
func InvalidLayout(path []string, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidLayout,
		Path:   path,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
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

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
