package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"lukechampine.com/uint128"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"Header", "flags", "ack"},
				GoType: "string",
				Spec:   "bool",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "Header.flags.ack", "string", "bool", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindInvalidBitPattern,
			},
			contains: []string{"[decode]", "invalid_bit_pattern"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindOutOfBounds,
				Detail: "address past end",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "out_of_bounds", "address past end", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindOutOfBounds,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseMemory, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Error("errors.Is should match the kind-only sentinel")
	}
	if errors.Is(err, ErrInvalidBitPattern) {
		t.Error("errors.Is should not match a different sentinel")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCompile, KindInvalidLayout).
		Path("Header", "len").
		GoType("uint8").
		Spec("B12").
		Value(42).
		Cause(cause).
		Detail("declared %d bits, specifier has %d", 8, 12).
		Build()

	if err.Phase != PhaseCompile {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCompile)
	}
	if err.Kind != KindInvalidLayout {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidLayout)
	}
	if len(err.Path) != 2 || err.Path[0] != "Header" || err.Path[1] != "len" {
		t.Errorf("Path = %v, want [Header len]", err.Path)
	}
	if err.GoType != "uint8" {
		t.Errorf("GoType = %v, want 'uint8'", err.GoType)
	}
	if err.Spec != "B12" {
		t.Errorf("Spec = %v, want 'B12'", err.Spec)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "declared 8 bits, specifier has 12" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds([]string{"a"}, uint128.From64(512), 9)
		if err.Kind != KindOutOfBounds || err.Phase != PhaseEncode {
			t.Errorf("got %v/%v, want encode/out_of_bounds", err.Phase, err.Kind)
		}
		raw, ok := err.Raw()
		if !ok || !raw.Equals64(512) {
			t.Errorf("Raw = %v, %v; want 512, true", raw, ok)
		}
		if !strings.Contains(err.Detail, "9 bits") {
			t.Errorf("Detail = %v, should mention width", err.Detail)
		}
	})

	t.Run("InvalidBitPattern", func(t *testing.T) {
		err := InvalidBitPattern([]string{"kind"}, uint128.From64(3))
		if err.Kind != KindInvalidBitPattern || err.Phase != PhaseDecode {
			t.Errorf("got %v/%v, want decode/invalid_bit_pattern", err.Phase, err.Kind)
		}
		raw, ok := err.Raw()
		if !ok || !raw.Equals64(3) {
			t.Errorf("Raw = %v, %v; want 3, true", raw, ok)
		}
		if !strings.Contains(err.Detail, "0x3") {
			t.Errorf("Detail = %v, should contain hex pattern", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseEncode, []string{"field"}, "int", "bool")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.Spec != "bool" {
			t.Errorf("GoType=%v Spec=%v", err.GoType, err.Spec)
		}
	})

	t.Run("InvalidLayout", func(t *testing.T) {
		err := InvalidLayout([]string{"Header"}, "total of %d bits is not a multiple of 8", 31)
		if err.Phase != PhaseCompile || err.Kind != KindInvalidLayout {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Detail, "31") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseDecode, []string{"record"}, "extra")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseCompile, "string fields")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("Raw without value", func(t *testing.T) {
		err := Unsupported(PhaseCompile, "x")
		if _, ok := err.Raw(); ok {
			t.Error("Raw should report false without a bit pattern")
		}
	})
}

func TestWithPath(t *testing.T) {
	inner := InvalidBitPattern([]string{"flag"}, uint128.From64(2))
	outer := inner.WithPath("Header", "nested")

	if got := strings.Join(outer.Path, "."); got != "Header.nested.flag" {
		t.Errorf("Path = %q, want Header.nested.flag", got)
	}
	if got := strings.Join(inner.Path, "."); got != "flag" {
		t.Errorf("original path modified: %q", got)
	}
	if !errors.Is(outer, ErrInvalidBitPattern) {
		t.Error("WithPath should keep the kind")
	}
}

func TestIsAndAs(t *testing.T) {
	inner := OutOfBounds([]string{"a"}, uint128.From64(9), 3)
	wrapped := fmt.Errorf("setting a: %w", inner)

	if !Is(wrapped, ErrOutOfBounds) {
		t.Error("Is should see through fmt wrapping")
	}
	if Is(wrapped, ErrInvalidBitPattern) {
		t.Error("Is matched the wrong kind")
	}

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("As found no *Error")
	}
	if got != inner {
		t.Errorf("As = %v, want %v", got, inner)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As matched a plain error")
	}
}
