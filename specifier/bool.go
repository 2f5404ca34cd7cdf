package specifier

import (
	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

// BoolSpec is the 1-bit boolean specifier.
type BoolSpec struct{}

// Bool is the boolean specifier. 0 is false, 1 is true; any other pattern is
// invalid.
var Bool BoolSpec

func (BoolSpec) Bits() int            { return 1 }
func (BoolSpec) Storage() StorageKind { return Storage8 }
func (BoolSpec) String() string       { return "bool" }

func (BoolSpec) ToStorage(v bool) (uint128.Uint128, error) {
	if v {
		return uint128.From64(1), nil
	}
	return uint128.Zero, nil
}

func (BoolSpec) FromStorage(raw uint128.Uint128) (bool, error) {
	switch {
	case raw.IsZero():
		return false, nil
	case raw.Equals64(1):
		return true, nil
	default:
		return false, errors.InvalidBitPattern(nil, raw)
	}
}

func (s BoolSpec) Encode(v any) (uint128.Uint128, error) {
	b, ok := v.(bool)
	if !ok {
		return uint128.Zero, mismatch(v, s)
	}
	return s.ToStorage(b)
}

func (s BoolSpec) Decode(raw uint128.Uint128) (any, error) {
	return s.FromStorage(raw)
}
