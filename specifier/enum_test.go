package specifier

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/errors"
)

func TestEnum_TagRejection(t *testing.T) {
	e, err := NewEnum("Small", 2, Cases[uint8]("A", "B", "C")...)
	if err != nil {
		t.Fatal(err)
	}
	if e.Bits() != 2 {
		t.Fatalf("bits = %d, want 2", e.Bits())
	}

	for raw := uint64(0); raw < 3; raw++ {
		got, err := e.FromStorage(uint128.From64(raw))
		if err != nil {
			t.Fatalf("raw %d: %v", raw, err)
		}
		if uint64(got) != raw {
			t.Errorf("raw %d: got %d", raw, got)
		}
	}

	_, err = e.FromStorage(uint128.From64(3))
	wantRaw(t, err, errors.KindInvalidBitPattern, 3)
}

func TestEnum_Width(t *testing.T) {
	tests := []struct {
		name     string
		declared int
		cases    int
		want     int
	}{
		{"auto one case", 0, 1, 1},
		{"auto two", 0, 2, 1},
		{"auto five", 0, 5, 3},
		{"declared wider", 4, 2, 4},
		{"declared narrower", 1, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := make([]string, tt.cases)
			for i := range names {
				names[i] = string(rune('a' + i))
			}
			e, err := NewEnum("E", tt.declared, Cases[uint32](names...)...)
			if err != nil {
				t.Fatal(err)
			}
			if e.Bits() != tt.want {
				t.Errorf("bits = %d, want %d", e.Bits(), tt.want)
			}
		})
	}
}

func TestEnum_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name  string
		bits  int
		cases []EnumCase[uint8]
	}{
		{"no cases", 0, nil},
		{"discriminant too wide", 2, []EnumCase[uint8]{{"A", 0}, {"B", 4}}},
		{"duplicate name", 0, []EnumCase[uint8]{{"A", 0}, {"A", 1}}},
		{"duplicate value", 0, []EnumCase[uint8]{{"A", 1}, {"B", 1}}},
		{"width over 64", 65, []EnumCase[uint8]{{"A", 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEnum("E", tt.bits, tt.cases...)
			e, ok := errors.As(err)
			if !ok {
				t.Fatalf("got %v, want invalid_layout", err)
			}
			if e.Kind != errors.KindInvalidLayout || e.Phase != errors.PhaseCompile {
				t.Errorf("got %s/%s", e.Phase, e.Kind)
			}
		})
	}
}

func TestNewEnumStrict(t *testing.T) {
	e, err := NewEnumStrict("Two", Cases[uint8]("Zero", "One", "Two", "Three")...)
	if err != nil {
		t.Fatal(err)
	}
	if e.Bits() != 2 {
		t.Errorf("bits = %d, want 2", e.Bits())
	}

	if _, err := NewEnumStrict("Three", Cases[uint8]("a", "b", "c")...); err == nil {
		t.Error("three cases without a width should be rejected")
	}
}

func TestEnum_ToStorage(t *testing.T) {
	e := MustEnum("Sparse", 4, []EnumCase[uint8]{{"Low", 1}, {"High", 9}}...)

	raw, err := e.ToStorage(9)
	if err != nil || !raw.Equals64(9) {
		t.Errorf("ToStorage(9) = %v, %v", raw, err)
	}

	_, err = e.ToStorage(2)
	wantRaw(t, err, errors.KindOutOfBounds, 2)

	raw, err = e.Encode("High")
	if err != nil || !raw.Equals64(9) {
		t.Errorf("Encode(High) = %v, %v", raw, err)
	}
	if _, err := e.Encode("Middle"); !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("Encode(Middle) = %v", err)
	}
	if _, err := e.Encode(300); !errors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("Encode(300) = %v", err)
	}
	raw, err = e.Encode(1)
	if err != nil || !raw.Equals64(1) {
		t.Errorf("Encode(1) = %v, %v", raw, err)
	}
}

func TestEnum_Names(t *testing.T) {
	e := MustEnum("Color", 0, Cases[uint16]("Red", "Green", "Blue")...)

	if name, ok := e.Name(2); !ok || name != "Blue" {
		t.Errorf("Name(2) = %q, %v", name, ok)
	}
	if _, ok := e.Name(3); ok {
		t.Error("Name(3) should not exist")
	}
	if v, ok := e.Value("Green"); !ok || v != 1 {
		t.Errorf("Value(Green) = %d, %v", v, ok)
	}
	if got := len(e.Cases()); got != 3 {
		t.Errorf("len(Cases()) = %d", got)
	}
	if e.String() != "enum Color" {
		t.Errorf("String() = %q", e.String())
	}
}
