package specifier

import (
	"fmt"
	"unsafe"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

// Unsigned is the set of Go types an Int specifier may produce.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Int is an n-bit unsigned integer held in Go type T. Every bit pattern of
// n bits is a valid value.
type Int[T Unsigned] struct {
	bits int
	// exact is set when T is exactly bits wide, making every T in range.
	exact bool
}

// NewInt returns an n-bit integer specifier with values of type T. n must
// be in 1..64 and no wider than T.
func NewInt[T Unsigned](n int) (Int[T], error) {
	var zero T
	width := int(unsafe.Sizeof(zero)) * 8
	name := fmt.Sprintf("B%d", n)
	if err := checkWidth(name, n); err != nil {
		return Int[T]{}, err
	}
	if n > width {
		return Int[T]{}, errors.New(errors.PhaseCompile, errors.KindInvalidLayout).
			Spec(name).
			GoType(fmt.Sprintf("%T", zero)).
			Detail("width %d exceeds %d-bit value type", n, width).
			Build()
	}
	return Int[T]{bits: n, exact: n == width}, nil
}

// B is NewInt that panics on an invalid width, for package-level layouts.
func B[T Unsigned](n int) Int[T] {
	s, err := NewInt[T](n)
	if err != nil {
		panic(err)
	}
	return s
}

// Full-width integer specifiers. Their bounds checks never fail.
var (
	U8  = B[uint8](8)
	U16 = B[uint16](16)
	U32 = B[uint32](32)
	U64 = B[uint64](64)
)

func (s Int[T]) Bits() int            { return s.bits }
func (s Int[T]) Storage() StorageKind { return KindFor(s.bits) }
func (s Int[T]) String() string       { return fmt.Sprintf("B%d", s.bits) }

// ToStorage fails with out_of_bounds when v needs more than Bits bits.
func (s Int[T]) ToStorage(v T) (uint128.Uint128, error) {
	raw := uint128.From64(uint64(v))
	if s.exact {
		return raw, nil
	}
	if err := CheckBounds(raw, s.bits); err != nil {
		return uint128.Zero, err
	}
	return raw, nil
}

// FromStorage accepts any pattern of Bits bits.
func (s Int[T]) FromStorage(raw uint128.Uint128) (T, error) {
	if !Fits(raw, s.bits) {
		return 0, errors.InvalidBitPattern(nil, raw)
	}
	return T(raw.Lo), nil
}

// Encode accepts T or any other Go integer; negative values are out of
// bounds.
func (s Int[T]) Encode(v any) (uint128.Uint128, error) {
	if t, ok := v.(T); ok {
		return s.ToStorage(t)
	}
	raw, err := integerRaw(v, s)
	if err != nil {
		return uint128.Zero, err
	}
	if err := CheckBounds(raw, s.bits); err != nil {
		return uint128.Zero, err
	}
	return raw, nil
}

func (s Int[T]) Decode(raw uint128.Uint128) (any, error) {
	return s.FromStorage(raw)
}

// Wide is an n-bit unsigned integer held in a uint128.Uint128, for fields
// wider than 64 bits.
type Wide struct {
	bits int
}

// NewWide returns an n-bit integer specifier, 1 <= n <= 128.
func NewWide(n int) (Wide, error) {
	if err := checkWidth(fmt.Sprintf("B%d", n), n); err != nil {
		return Wide{}, err
	}
	return Wide{bits: n}, nil
}

// MustWide is NewWide that panics on an invalid width.
func MustWide(n int) Wide {
	s, err := NewWide(n)
	if err != nil {
		panic(err)
	}
	return s
}

// U128 is the full-width 128-bit integer specifier.
var U128 = MustWide(128)

func (s Wide) Bits() int            { return s.bits }
func (s Wide) Storage() StorageKind { return KindFor(s.bits) }
func (s Wide) String() string       { return fmt.Sprintf("B%d", s.bits) }

func (s Wide) ToStorage(v uint128.Uint128) (uint128.Uint128, error) {
	if err := CheckBounds(v, s.bits); err != nil {
		return uint128.Zero, err
	}
	return v, nil
}

func (s Wide) FromStorage(raw uint128.Uint128) (uint128.Uint128, error) {
	if !Fits(raw, s.bits) {
		return uint128.Zero, errors.InvalidBitPattern(nil, raw)
	}
	return raw, nil
}

func (s Wide) Encode(v any) (uint128.Uint128, error) {
	if u, ok := v.(uint128.Uint128); ok {
		return s.ToStorage(u)
	}
	raw, err := integerRaw(v, s)
	if err != nil {
		return uint128.Zero, err
	}
	return s.ToStorage(raw)
}

func (s Wide) Decode(raw uint128.Uint128) (any, error) {
	return s.FromStorage(raw)
}

// integerRaw widens any Go integer to a bit pattern.
func integerRaw(v any, s Specifier) (uint128.Uint128, error) {
	var signed int64
	switch x := v.(type) {
	case uint8:
		return uint128.From64(uint64(x)), nil
	case uint16:
		return uint128.From64(uint64(x)), nil
	case uint32:
		return uint128.From64(uint64(x)), nil
	case uint64:
		return uint128.From64(x), nil
	case uint:
		return uint128.From64(uint64(x)), nil
	case uint128.Uint128:
		return x, nil
	case int8:
		signed = int64(x)
	case int16:
		signed = int64(x)
	case int32:
		signed = int64(x)
	case int64:
		signed = x
	case int:
		signed = int64(x)
	default:
		return uint128.Zero, mismatch(v, s)
	}
	if signed < 0 {
		return uint128.Zero, errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
			Spec(s.String()).
			Value(v).
			Detail("negative value %d", signed).
			Build()
	}
	return uint128.From64(uint64(signed)), nil
}
