package specifier

import (
	"fmt"
	"strconv"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
)

// VariantCase is one alternative of a Variant: a name and the payload
// fields packed after the tag, in order.
type VariantCase struct {
	Name   string
	Fields []Specifier
}

// VariantValue is a decoded variant: the tag of the active case and one
// logical value per payload field.
type VariantValue struct {
	Tag     uint64
	Payload []any
}

// Variant is a tagged union. The slot holds the tag in its low bits and
// the active case's payload fields above it; bits past the payload of a
// narrower case are zero.
type Variant struct {
	name   string
	tag    *Enum[uint64]
	cases  []VariantCase
	byTag  map[uint64]int
	widths []int
	bits   int
}

// NewVariant builds a variant specifier. When tag is nil the discriminant
// of each case is its index and the tag is as narrow as possible. An
// explicit tag must declare a case for every variant case, by name.
func NewVariant(name string, tag *Enum[uint64], cases ...VariantCase) (*Variant, error) {
	if len(cases) == 0 {
		return nil, errors.InvalidLayout([]string{name}, "variant has no cases")
	}

	if tag == nil {
		names := make([]string, len(cases))
		for i, c := range cases {
			names[i] = c.Name
		}
		t, err := NewEnum(name+".tag", 0, Cases[uint64](names...)...)
		if err != nil {
			return nil, err
		}
		tag = t
	}

	v := &Variant{
		name:   name,
		tag:    tag,
		cases:  make([]VariantCase, len(cases)),
		byTag:  make(map[uint64]int, len(cases)),
		widths: make([]int, len(cases)),
	}

	payload := 0
	for i, c := range cases {
		d, ok := tag.Value(c.Name)
		if !ok {
			return nil, errors.InvalidLayout([]string{name, c.Name}, "case missing from tag %s", tag.name)
		}
		if _, dup := v.byTag[d]; dup {
			return nil, errors.InvalidLayout([]string{name, c.Name}, "duplicate case")
		}
		w := 0
		for j, f := range c.Fields {
			if f == nil {
				return nil, errors.InvalidLayout([]string{name, c.Name, strconv.Itoa(j)}, "nil payload specifier")
			}
			w += f.Bits()
		}
		v.cases[i] = VariantCase{Name: c.Name, Fields: append([]Specifier(nil), c.Fields...)}
		v.byTag[d] = i
		v.widths[i] = w
		payload = max(payload, w)
	}

	v.bits = tag.Bits() + payload
	if v.bits > MaxBits {
		return nil, errors.InvalidLayout([]string{name},
			"tag %d bits + payload %d bits exceeds %d", tag.Bits(), payload, MaxBits)
	}
	return v, nil
}

// MustVariant is NewVariant that panics on error.
func MustVariant(name string, tag *Enum[uint64], cases ...VariantCase) *Variant {
	v, err := NewVariant(name, tag, cases...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Variant) Bits() int            { return v.bits }
func (v *Variant) Storage() StorageKind { return KindFor(v.bits) }
func (v *Variant) String() string       { return "variant " + v.name }

// TagBits returns the width of the tag.
func (v *Variant) TagBits() int { return v.tag.Bits() }

// Cases returns the declared cases.
func (v *Variant) Cases() []VariantCase {
	return append([]VariantCase(nil), v.cases...)
}

// Case returns the named case and its tag.
func (v *Variant) Case(name string) (VariantCase, uint64, bool) {
	d, ok := v.tag.Value(name)
	if !ok {
		return VariantCase{}, 0, false
	}
	i, ok := v.byTag[d]
	if !ok {
		return VariantCase{}, 0, false
	}
	return v.cases[i], d, true
}

// CaseName returns the case name of a tag.
func (v *Variant) CaseName(tag uint64) (string, bool) {
	i, ok := v.byTag[tag]
	if !ok {
		return "", false
	}
	return v.cases[i].Name, true
}

// Value builds a VariantValue for the named case.
func (v *Variant) Value(name string, payload ...any) (VariantValue, error) {
	c, d, ok := v.Case(name)
	if !ok {
		return VariantValue{}, errors.FieldUnknown(errors.PhaseEncode, []string{v.name}, name)
	}
	if len(payload) != len(c.Fields) {
		return VariantValue{}, errors.InvalidInput(errors.PhaseEncode, []string{v.name, name},
			fmt.Sprintf("case takes %d payload values, got %d", len(c.Fields), len(payload)))
	}
	return VariantValue{Tag: d, Payload: payload}, nil
}

// ToStorage packs the tag and payload into a zeroed scratch buffer and
// returns its bits.
func (v *Variant) ToStorage(val VariantValue) (uint128.Uint128, error) {
	i, ok := v.byTag[val.Tag]
	if !ok {
		err := errors.OutOfBounds(nil, uint128.From64(val.Tag), v.tag.Bits())
		err.Spec = v.String()
		err.Detail = fmt.Sprintf("%d is not a declared tag", val.Tag)
		return uint128.Zero, err
	}
	c := v.cases[i]
	if len(val.Payload) != len(c.Fields) {
		return uint128.Zero, errors.InvalidInput(errors.PhaseEncode, []string{c.Name},
			fmt.Sprintf("case takes %d payload values, got %d", len(c.Fields), len(val.Payload)))
	}

	var scratch [MaxBits / 8]byte
	buf := scratch[:engine.BytesFor(v.bits)]
	engine.SetField(buf, 0, v.tag.Bits(), uint128.From64(val.Tag))

	offset := v.tag.Bits()
	for j, f := range c.Fields {
		raw, err := f.Encode(val.Payload[j])
		if err != nil {
			return uint128.Zero, prefix(err, c.Name, strconv.Itoa(j))
		}
		engine.SetField(buf, offset, f.Bits(), raw)
		offset += f.Bits()
	}
	return engine.GetField(buf, 0, v.bits), nil
}

// FromStorage unpacks a slot. An unknown tag reports the tag bits; an
// invalid payload field reports the whole slot.
func (v *Variant) FromStorage(raw uint128.Uint128) (VariantValue, error) {
	if !Fits(raw, v.bits) {
		return VariantValue{}, errors.InvalidBitPattern(nil, raw)
	}

	var scratch [MaxBits / 8]byte
	buf := scratch[:engine.BytesFor(v.bits)]
	engine.SetField(buf, 0, v.bits, raw)

	tag := engine.GetField(buf, 0, v.tag.Bits())
	i, ok := v.byTag[tag.Lo]
	if !ok {
		return VariantValue{}, errors.InvalidBitPattern(nil, tag)
	}

	c := v.cases[i]
	out := VariantValue{Tag: tag.Lo, Payload: make([]any, len(c.Fields))}
	offset := v.tag.Bits()
	for j, f := range c.Fields {
		val, err := f.Decode(engine.GetField(buf, offset, f.Bits()))
		if err != nil {
			bad := errors.InvalidBitPattern([]string{c.Name, strconv.Itoa(j)}, raw)
			bad.Cause = err
			return VariantValue{}, bad
		}
		out.Payload[j] = val
		offset += f.Bits()
	}
	return out, nil
}

func (v *Variant) Encode(val any) (uint128.Uint128, error) {
	switch x := val.(type) {
	case VariantValue:
		return v.ToStorage(x)
	case *VariantValue:
		if x != nil {
			return v.ToStorage(*x)
		}
	}
	return uint128.Zero, mismatch(val, v)
}

func (v *Variant) Decode(raw uint128.Uint128) (any, error) {
	return v.FromStorage(raw)
}

// prefix prepends path elements to structured errors.
func prefix(err error, path ...string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithPath(path...)
	}
	return err
}
