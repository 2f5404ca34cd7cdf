package record

import (
	"fmt"

	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/specifier"
)

// Accessor is typed access to one field of a layout.
type Accessor[T any] struct {
	layout *Layout
	codec  specifier.Codec[T]
	field  Field
}

// Access binds an accessor to the named field. The field's specifier must
// produce values of type T.
func Access[T any](l *Layout, name string) (Accessor[T], error) {
	f, err := l.lookup(errors.PhaseCompile, name)
	if err != nil {
		return Accessor[T]{}, err
	}
	codec, ok := f.Spec.(specifier.Codec[T])
	if !ok {
		var zero T
		return Accessor[T]{}, errors.TypeMismatch(errors.PhaseCompile,
			[]string{l.name, name}, fmt.Sprintf("%T", zero), f.Spec.String())
	}
	return Accessor[T]{layout: l, codec: codec, field: f}, nil
}

// MustAccess is Access that panics on error.
func MustAccess[T any](l *Layout, name string) Accessor[T] {
	a, err := Access[T](l, name)
	if err != nil {
		panic(err)
	}
	return a
}

// Field returns the bound field.
func (a Accessor[T]) Field() Field { return a.field }

func (a Accessor[T]) check(r *Record, phase errors.Phase) error {
	if r == nil || r.layout != a.layout {
		return errors.New(phase, errors.KindTypeMismatch).
			Path(a.layout.name, a.field.Name).
			Detail("record does not use layout %s", a.layout.name).
			Build()
	}
	return nil
}

// Get reads and validates the field.
func (a Accessor[T]) Get(r *Record) (T, error) {
	var zero T
	if err := a.check(r, errors.PhaseDecode); err != nil {
		return zero, err
	}
	if !a.field.Readable() {
		return zero, r.denied(errors.PhaseDecode, a.field, "getter")
	}
	v, err := a.codec.FromStorage(engine.GetField(r.buf, a.field.Offset, a.field.Bits()))
	if err != nil {
		return zero, r.at(err, a.field)
	}
	return v, nil
}

// Set validates and writes the field. On error r is unchanged.
func (a Accessor[T]) Set(r *Record, v T) error {
	if err := a.check(r, errors.PhaseEncode); err != nil {
		return err
	}
	if !a.field.Writable() {
		return r.denied(errors.PhaseEncode, a.field, "setter")
	}
	raw, err := a.codec.ToStorage(v)
	if err != nil {
		return r.at(err, a.field)
	}
	return r.store(a.field, raw)
}

// With returns a copy of r with the field set to v.
func (a Accessor[T]) With(r *Record, v T) (*Record, error) {
	if err := a.check(r, errors.PhaseEncode); err != nil {
		return nil, err
	}
	c := r.Clone()
	if err := a.Set(c, v); err != nil {
		return nil, err
	}
	return c, nil
}

// MustGet is Get that panics on error.
func (a Accessor[T]) MustGet(r *Record) T {
	v, err := a.Get(r)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is Set that panics on error.
func (a Accessor[T]) MustSet(r *Record, v T) {
	if err := a.Set(r, v); err != nil {
		panic(err)
	}
}
