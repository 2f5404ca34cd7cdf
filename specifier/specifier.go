package specifier

import (
	"reflect"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

// MaxBits is the widest field a specifier may declare.
const MaxBits = 128

// StorageKind is the unsigned integer width that holds a specifier's bits.
type StorageKind uint8

const (
	Storage8 StorageKind = iota
	Storage16
	Storage32
	Storage64
	Storage128
)

var storageNames = [...]string{
	Storage8:   "u8",
	Storage16:  "u16",
	Storage32:  "u32",
	Storage64:  "u64",
	Storage128: "u128",
}

var storageBits = [...]int{
	Storage8:   8,
	Storage16:  16,
	Storage32:  32,
	Storage64:  64,
	Storage128: 128,
}

func (k StorageKind) String() string {
	if int(k) < len(storageNames) {
		return storageNames[k]
	}
	return "unknown"
}

// Bits returns the full width of the storage kind.
func (k StorageKind) Bits() int {
	if int(k) < len(storageBits) {
		return storageBits[k]
	}
	return 0
}

// KindFor returns the smallest storage kind covering bits.
func KindFor(bits int) StorageKind {
	switch {
	case bits <= 8:
		return Storage8
	case bits <= 16:
		return Storage16
	case bits <= 32:
		return Storage32
	case bits <= 64:
		return Storage64
	default:
		return Storage128
	}
}

// Specifier is the untyped view of a field type.
type Specifier interface {
	// Bits returns the declared bit width, 1..MaxBits.
	Bits() int
	// Storage returns the storage kind covering Bits.
	Storage() StorageKind
	// Encode converts a logical value to its bit pattern.
	Encode(v any) (uint128.Uint128, error)
	// Decode converts a bit pattern to its logical value.
	Decode(raw uint128.Uint128) (any, error)
	String() string
}

// Codec is a Specifier with a statically known Go value type.
type Codec[T any] interface {
	Specifier
	ToStorage(v T) (uint128.Uint128, error)
	FromStorage(raw uint128.Uint128) (T, error)
}

// Fits reports whether raw needs at most bits bits.
func Fits(raw uint128.Uint128, bits int) bool {
	return raw.Len() <= bits
}

// CheckBounds returns an out_of_bounds error when raw needs more than bits
// bits.
func CheckBounds(raw uint128.Uint128, bits int) error {
	if Fits(raw, bits) {
		return nil
	}
	return errors.OutOfBounds(nil, raw, bits)
}

// Max returns the largest value representable in bits bits.
func Max(bits int) uint128.Uint128 {
	return uint128.Max.Rsh(uint(MaxBits - bits))
}

// TagBits returns the bits needed to distinguish n cases, at least 1 for
// n <= 2 (a single case still occupies one bit).
func TagBits(n int) int {
	bits := 1
	for 1<<bits < n {
		bits++
	}
	return bits
}

func checkWidth(name string, bits int) error {
	if bits < 1 || bits > MaxBits {
		return errors.New(errors.PhaseCompile, errors.KindInvalidLayout).
			Spec(name).
			Detail("width %d outside 1..%d", bits, MaxBits).
			Build()
	}
	return nil
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

func mismatch(value any, s Specifier) error {
	return errors.TypeMismatch(errors.PhaseEncode, nil, typeName(value), s.String())
}
