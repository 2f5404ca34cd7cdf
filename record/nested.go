package record

import (
	"fmt"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/specifier"
)

// Nested is a layout used as a field specifier. Values are *Record of that
// layout.
type Nested struct {
	layout *Layout
}

var _ specifier.Codec[*Record] = (*Nested)(nil)

// Specifier returns a specifier that packs records of l into a single
// field. The layout must be at most 128 bits wide.
func (l *Layout) Specifier() (*Nested, error) {
	if l.bits > specifier.MaxBits {
		return nil, errors.InvalidLayout([]string{l.name},
			"%d bits is too wide to nest (max %d)", l.bits, specifier.MaxBits)
	}
	return &Nested{layout: l}, nil
}

// MustSpecifier is Specifier that panics on error.
func (l *Layout) MustSpecifier() *Nested {
	n, err := l.Specifier()
	if err != nil {
		panic(err)
	}
	return n
}

// Layout returns the nested layout.
func (n *Nested) Layout() *Layout { return n.layout }

func (n *Nested) Bits() int                      { return n.layout.bits }
func (n *Nested) Storage() specifier.StorageKind { return specifier.KindFor(n.layout.bits) }
func (n *Nested) String() string                 { return n.layout.name }

func (n *Nested) ToStorage(r *Record) (uint128.Uint128, error) {
	if r == nil || r.layout != n.layout {
		got := "nil"
		if r != nil {
			got = "record " + r.layout.name
		}
		return uint128.Zero, errors.TypeMismatch(errors.PhaseEncode, nil, got, n.String())
	}
	return engine.GetField(r.buf, 0, n.layout.bits), nil
}

// FromStorage rebuilds a record from its bits. Field domains are checked
// lazily by the record's getters.
func (n *Nested) FromStorage(raw uint128.Uint128) (*Record, error) {
	if !specifier.Fits(raw, n.layout.bits) {
		return nil, errors.InvalidBitPattern(nil, raw)
	}
	r := n.layout.New()
	engine.SetField(r.buf, 0, n.layout.bits, raw)
	return r, nil
}

func (n *Nested) Encode(v any) (uint128.Uint128, error) {
	r, ok := v.(*Record)
	if !ok {
		return uint128.Zero, errors.TypeMismatch(errors.PhaseEncode, nil, typeName(v), n.String())
	}
	return n.ToStorage(r)
}

func (n *Nested) Decode(raw uint128.Uint128) (any, error) {
	return n.FromStorage(raw)
}

// FromUint builds a record from the integer form of its bits, the inverse
// of Record.Uint. v must fit in the layout's width.
func (l *Layout) FromUint(v uint128.Uint128) (*Record, error) {
	n, err := l.Specifier()
	if err != nil {
		return nil, err
	}
	r, err := n.FromStorage(v)
	if err != nil {
		if e, ok := errors.As(err); ok {
			return nil, e.WithPath(l.name)
		}
		return nil, err
	}
	return r, nil
}

// Uint returns the record's bits as one integer, field 0 in the low bits.
// It panics if the layout is wider than 128 bits.
func (r *Record) Uint() uint128.Uint128 {
	raw, err := r.layout.MustSpecifier().ToStorage(r)
	if err != nil {
		panic(err)
	}
	return raw
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
