package specifier

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

// adt is First(u8, u8) | Second(Two) | Third with a 2-bit enum payload.
func adt(t *testing.T) (*Variant, *Enum[uint8]) {
	t.Helper()
	two, err := NewEnumStrict("Two", Cases[uint8]("Zero", "One", "Two", "Three")...)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVariant("Variant", nil,
		VariantCase{Name: "First", Fields: []Specifier{U8, U8}},
		VariantCase{Name: "Second", Fields: []Specifier{two}},
		VariantCase{Name: "Third"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return v, two
}

func TestVariant_Layout(t *testing.T) {
	v, _ := adt(t)
	if v.TagBits() != 2 {
		t.Errorf("tag bits = %d, want 2", v.TagBits())
	}
	if v.Bits() != 18 {
		t.Errorf("bits = %d, want 18", v.Bits())
	}
	if v.Storage() != Storage32 {
		t.Errorf("storage = %v", v.Storage())
	}
}

func TestVariant_SecondThree(t *testing.T) {
	v, two := adt(t)
	three, _ := two.Value("Three")

	val, err := v.Value("Second", three)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := v.ToStorage(val)
	if err != nil {
		t.Fatal(err)
	}

	// tag 1 in bits 0..1, payload 3 in bits 2..3, zero above.
	if !raw.Equals64(1 | 3<<2) {
		t.Errorf("raw = %#x, want %#x", raw.Lo, 1|3<<2)
	}
	if !raw.Rsh(4).IsZero() {
		t.Errorf("padding above payload not zero: %#x", raw.Lo)
	}

	got, err := v.FromStorage(raw)
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := v.CaseName(got.Tag); name != "Second" {
		t.Errorf("case = %s, want Second", name)
	}
	if len(got.Payload) != 1 || got.Payload[0] != three {
		t.Errorf("payload = %v, want [%d]", got.Payload, three)
	}
}

func TestVariant_RoundTrip(t *testing.T) {
	v, _ := adt(t)
	tests := []struct {
		name    string
		payload []any
	}{
		{"First", []any{uint8(0xab), uint8(0xcd)}},
		{"Second", []any{uint8(0)}},
		{"Third", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := v.Value(tt.name, tt.payload...)
			if err != nil {
				t.Fatal(err)
			}
			raw, err := v.Encode(val)
			if err != nil {
				t.Fatal(err)
			}
			out, err := v.Decode(raw)
			if err != nil {
				t.Fatal(err)
			}
			got := out.(VariantValue)
			if got.Tag != val.Tag {
				t.Errorf("tag = %d, want %d", got.Tag, val.Tag)
			}
			if len(got.Payload) != len(tt.payload) {
				t.Fatalf("payload len = %d, want %d", len(got.Payload), len(tt.payload))
			}
			for i := range tt.payload {
				if got.Payload[i] != tt.payload[i] {
					t.Errorf("payload[%d] = %v, want %v", i, got.Payload[i], tt.payload[i])
				}
			}
		})
	}
}

func TestVariant_UnknownTag(t *testing.T) {
	v, _ := adt(t)
	// tag 3 is unused, payload bits set to make sure only the tag is reported.
	raw := uint128.From64(3 | 0xff<<2)
	_, err := v.FromStorage(raw)
	wantRaw(t, err, errors.KindInvalidBitPattern, 3)
}

func TestVariant_InvalidPayload(t *testing.T) {
	three := MustEnum("Three", 2, Cases[uint8]("a", "b", "c")...)
	v := MustVariant("V", nil,
		VariantCase{Name: "Empty"},
		VariantCase{Name: "Some", Fields: []Specifier{three}},
	)

	raw := uint128.From64(1 | 3<<1)
	_, err := v.FromStorage(raw)
	wantRaw(t, err, errors.KindInvalidBitPattern, 1|3<<1)
}

func TestVariant_ExplicitTag(t *testing.T) {
	tag := MustEnum("Op", 3, []EnumCase[uint64]{{"Load", 4}, {"Store", 7}}...)
	v, err := NewVariant("Instr", tag,
		VariantCase{Name: "Load", Fields: []Specifier{B[uint8](5)}},
		VariantCase{Name: "Store", Fields: []Specifier{B[uint8](5), Bool}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if v.Bits() != 3+6 {
		t.Errorf("bits = %d, want 9", v.Bits())
	}
	_, d, ok := v.Case("Store")
	if !ok || d != 7 {
		t.Errorf("Case(Store) tag = %d, %v", d, ok)
	}

	raw, err := v.ToStorage(VariantValue{Tag: 7, Payload: []any{uint8(17), true}})
	if err != nil {
		t.Fatal(err)
	}
	want := uint64(7 | 17<<3 | 1<<8)
	if !raw.Equals64(want) {
		t.Errorf("raw = %#x, want %#x", raw.Lo, want)
	}

	if _, err := v.ToStorage(VariantValue{Tag: 5}); !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("undeclared tag: %v", err)
	}
}

func TestVariant_ConstructionErrors(t *testing.T) {
	tag := MustEnum("T", 0, Cases[uint64]("A")...)
	tests := []struct {
		name  string
		tag   *Enum[uint64]
		cases []VariantCase
	}{
		{"no cases", nil, nil},
		{"too wide", nil, []VariantCase{{Name: "A", Fields: []Specifier{U128}}}},
		{"case not in tag", tag, []VariantCase{{Name: "B"}}},
		{"nil field", nil, []VariantCase{{Name: "A", Fields: []Specifier{nil}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVariant("V", tt.tag, tt.cases...)
			if e, ok := errors.As(err); !ok || e.Kind != errors.KindInvalidLayout {
				t.Errorf("got %v, want invalid_layout", err)
			}
		})
	}
}

func TestVariant_EncodeErrors(t *testing.T) {
	v, _ := adt(t)

	if _, err := v.Value("Fourth"); err == nil {
		t.Error("unknown case accepted")
	}
	if _, err := v.Value("First", uint8(1)); err == nil {
		t.Error("short payload accepted")
	}

	_, err := v.Encode(VariantValue{Tag: 0, Payload: []any{uint8(1), "x"}})
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.KindTypeMismatch {
		t.Fatalf("got %v, want type_mismatch", err)
	}
	if len(e.Path) != 2 || e.Path[0] != "First" || e.Path[1] != "1" {
		t.Errorf("path = %v", e.Path)
	}

	if _, err := v.Encode(42); err == nil {
		t.Error("non-variant value accepted")
	}
}
