package specifier

import (
	"fmt"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

// EnumCase names one discriminant of an Enum.
type EnumCase[T Unsigned] struct {
	Name  string
	Value T
}

// Cases returns cases with discriminants 0, 1, 2... in order.
func Cases[T Unsigned](names ...string) []EnumCase[T] {
	cases := make([]EnumCase[T], len(names))
	for i, name := range names {
		cases[i] = EnumCase[T]{Name: name, Value: T(i)}
	}
	return cases
}

// Enum accepts only its declared discriminants.
type Enum[T Unsigned] struct {
	name   string
	bits   int
	cases  []EnumCase[T]
	byName map[string]T
	byVal  map[uint64]int
}

// NewEnum builds an enum specifier. bits is the declared width; the actual
// width is the larger of bits and the width needed to give every case a
// distinct value. bits 0 means "as few as possible".
func NewEnum[T Unsigned](name string, bits int, cases ...EnumCase[T]) (*Enum[T], error) {
	if len(cases) == 0 {
		return nil, errors.InvalidLayout([]string{name}, "enum has no cases")
	}
	if bits < 0 || bits > 64 {
		return nil, errors.InvalidLayout([]string{name}, "enum width %d outside 0..64", bits)
	}

	width := max(bits, TagBits(len(cases)))
	e := &Enum[T]{
		name:   name,
		bits:   width,
		cases:  append([]EnumCase[T](nil), cases...),
		byName: make(map[string]T, len(cases)),
		byVal:  make(map[uint64]int, len(cases)),
	}

	for i, c := range cases {
		v := uint64(c.Value)
		if width < 64 && v>>width != 0 {
			return nil, errors.InvalidLayout([]string{name, c.Name},
				"discriminant %d does not fit in %d bits", v, width)
		}
		if _, dup := e.byName[c.Name]; dup {
			return nil, errors.InvalidLayout([]string{name, c.Name}, "duplicate case name")
		}
		if j, dup := e.byVal[v]; dup {
			return nil, errors.InvalidLayout([]string{name, c.Name},
				"discriminant %d already used by %s", v, cases[j].Name)
		}
		e.byName[c.Name] = c.Value
		e.byVal[v] = i
	}
	return e, nil
}

// NewEnumStrict builds an enum whose width is implied by its case count,
// which must then be a power of two.
func NewEnumStrict[T Unsigned](name string, cases ...EnumCase[T]) (*Enum[T], error) {
	n := len(cases)
	if n == 0 || n&(n-1) != 0 {
		return nil, errors.InvalidLayout([]string{name},
			"%d cases: an enum without an explicit width needs a power-of-two case count", n)
	}
	return NewEnum(name, 0, cases...)
}

// MustEnum is NewEnum that panics on error.
func MustEnum[T Unsigned](name string, bits int, cases ...EnumCase[T]) *Enum[T] {
	e, err := NewEnum(name, bits, cases...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Enum[T]) Bits() int            { return e.bits }
func (e *Enum[T]) Storage() StorageKind { return KindFor(e.bits) }
func (e *Enum[T]) String() string       { return "enum " + e.name }

// Cases returns the declared cases in declaration order.
func (e *Enum[T]) Cases() []EnumCase[T] {
	return append([]EnumCase[T](nil), e.cases...)
}

// Name returns the case name of v.
func (e *Enum[T]) Name(v T) (string, bool) {
	i, ok := e.byVal[uint64(v)]
	if !ok {
		return "", false
	}
	return e.cases[i].Name, true
}

// Value returns the discriminant of the named case.
func (e *Enum[T]) Value(name string) (T, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// ToStorage fails with out_of_bounds for undeclared values.
func (e *Enum[T]) ToStorage(v T) (uint128.Uint128, error) {
	raw := uint128.From64(uint64(v))
	if _, ok := e.byVal[uint64(v)]; !ok {
		err := errors.OutOfBounds(nil, raw, e.bits)
		err.Spec = e.String()
		err.Detail = fmt.Sprintf("%d is not a declared discriminant", uint64(v))
		return uint128.Zero, err
	}
	return raw, nil
}

// FromStorage fails with invalid_bit_pattern for undeclared values.
func (e *Enum[T]) FromStorage(raw uint128.Uint128) (T, error) {
	if raw.Hi != 0 {
		return 0, errors.InvalidBitPattern(nil, raw)
	}
	i, ok := e.byVal[raw.Lo]
	if !ok {
		return 0, errors.InvalidBitPattern(nil, raw)
	}
	return e.cases[i].Value, nil
}

// Encode accepts T, another Go integer, or a case name.
func (e *Enum[T]) Encode(v any) (uint128.Uint128, error) {
	switch x := v.(type) {
	case T:
		return e.ToStorage(x)
	case string:
		d, ok := e.byName[x]
		if !ok {
			return uint128.Zero, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
				Spec(e.String()).
				Value(x).
				Detail("unknown case %q", x).
				Build()
		}
		return e.ToStorage(d)
	}
	raw, err := integerRaw(v, e)
	if err != nil {
		return uint128.Zero, err
	}
	if raw.Hi != 0 || uint64(T(raw.Lo)) != raw.Lo {
		return uint128.Zero, errors.OutOfBounds(nil, raw, e.bits)
	}
	return e.ToStorage(T(raw.Lo))
}

func (e *Enum[T]) Decode(raw uint128.Uint128) (any, error) {
	return e.FromStorage(raw)
}
