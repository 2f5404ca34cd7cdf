package record

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/specifier"
)

// Record is a byte buffer interpreted through a Layout.
//
// A Record is not safe for concurrent mutation; concurrent reads are fine.
type Record struct {
	layout *Layout
	buf    []byte
}

// Layout returns the record's layout.
func (r *Record) Layout() *Layout { return r.layout }

// Bytes returns a copy of the backing buffer.
func (r *Record) Bytes() []byte {
	return append([]byte(nil), r.buf...)
}

// Clone returns an independent copy of r.
func (r *Record) Clone() *Record {
	return &Record{layout: r.layout, buf: r.Bytes()}
}

// Equal reports whether both records share a layout and hold the same bytes.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.layout == o.layout && bytes.Equal(r.buf, o.buf)
}

// Raw returns a field's bits without domain validation.
func (r *Record) Raw(name string) (uint128.Uint128, error) {
	f, err := r.layout.lookup(errors.PhaseDecode, name)
	if err != nil {
		return uint128.Zero, err
	}
	if !f.Readable() {
		return uint128.Zero, r.denied(errors.PhaseDecode, f, "getter")
	}
	return engine.GetField(r.buf, f.Offset, f.Bits()), nil
}

// Get returns a field's logical value. It fails with invalid_bit_pattern
// when the stored bits are outside the field's domain.
func (r *Record) Get(name string) (any, error) {
	f, err := r.layout.lookup(errors.PhaseDecode, name)
	if err != nil {
		return nil, err
	}
	if !f.Readable() {
		return nil, r.denied(errors.PhaseDecode, f, "getter")
	}
	return r.get(f)
}

func (r *Record) get(f Field) (any, error) {
	raw := engine.GetField(r.buf, f.Offset, f.Bits())
	v, err := f.Spec.Decode(raw)
	if err != nil {
		return nil, r.at(err, f)
	}
	return v, nil
}

// Set stores a field's logical value. On error the buffer is unchanged.
func (r *Record) Set(name string, v any) error {
	f, err := r.layout.lookup(errors.PhaseEncode, name)
	if err != nil {
		return err
	}
	if !f.Writable() {
		return r.denied(errors.PhaseEncode, f, "setter")
	}
	return r.set(f, v)
}

func (r *Record) set(f Field, v any) error {
	raw, err := f.Spec.Encode(v)
	if err != nil {
		return r.at(err, f)
	}
	return r.store(f, raw)
}

// store writes pre-encoded bits after a final width check.
func (r *Record) store(f Field, raw uint128.Uint128) error {
	if err := specifier.CheckBounds(raw, f.Bits()); err != nil {
		return r.at(err, f)
	}
	engine.SetField(r.buf, f.Offset, f.Bits(), raw)
	r.layout.logger.Debug("field set",
		zap.String("layout", r.layout.name),
		zap.String("field", f.Name),
		zap.Stringer("raw", raw))
	return nil
}

// MustGet is Get that panics on error.
func (r *Record) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is Set that panics on error.
func (r *Record) MustSet(name string, v any) {
	if err := r.Set(name, v); err != nil {
		panic(err)
	}
}

// With returns a copy of r with one field set.
func (r *Record) With(name string, v any) (*Record, error) {
	c := r.Clone()
	if err := c.Set(name, v); err != nil {
		return nil, err
	}
	return c, nil
}

// String formats readable fields as "Name { a: 1, b: true }". Fields whose
// bits are invalid show the error detail in place of a value.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.layout.name)
	b.WriteString(" {")
	first := true
	for _, f := range r.layout.fields {
		if !f.Readable() {
			continue
		}
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		v, err := r.get(f)
		if err != nil {
			if e, ok := errors.As(err); ok && e.Detail != "" {
				b.WriteString(e.Detail)
			} else {
				b.WriteString(err.Error())
			}
			continue
		}
		b.WriteString(formatValue(v))
	}
	if !first {
		b.WriteByte(' ')
	}
	b.WriteByte('}')
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case *Record:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r *Record) denied(phase errors.Phase, f Field, what string) error {
	return errors.New(phase, errors.KindUnsupported).
		Path(r.layout.name, f.Name).
		Detail("field %s has no %s (%s)", f.Name, what, f.Access).
		Build()
}

// at prefixes a specifier error with the layout and field name.
func (r *Record) at(err error, f Field) error {
	if e, ok := errors.As(err); ok {
		return e.WithPath(r.layout.name, f.Name)
	}
	return err
}
