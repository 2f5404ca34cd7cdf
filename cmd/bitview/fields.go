package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/record"
	"github.com/wippyai/bitfield/specifier"
	"github.com/wippyai/bitfield/witbits"
)

type assignment struct {
	name  string
	value string
}

// parseFields parses "name:type,..." into field definitions.
func parseFields(s string) ([]record.FieldDef, error) {
	var defs []record.FieldDef
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, typ, ok := strings.Cut(item, ":")
		if !ok || name == "" || typ == "" {
			return nil, fmt.Errorf("field %q: want name:type", item)
		}
		spec, err := parseType(strings.TrimSpace(typ))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		defs = append(defs, record.F(strings.TrimSpace(name), spec))
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no fields")
	}
	return defs, nil
}

// parseType accepts bN (1..128), bool, or a WIT unsigned primitive.
func parseType(s string) (specifier.Specifier, error) {
	if len(s) > 1 && (s[0] == 'b' || s[0] == 'B') && s != "bool" {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return nil, fmt.Errorf("bad width in %q", s)
		}
		if n > 64 {
			return specifier.NewWide(n)
		}
		return specifier.NewInt[uint64](n)
	}
	return witbits.ParsePrimitive(s)
}

// parseAssignments parses "name=value,...".
func parseAssignments(s string) ([]assignment, error) {
	var out []assignment
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("assignment %q: want name=value", item)
		}
		out = append(out, assignment{name: strings.TrimSpace(name), value: strings.TrimSpace(value)})
	}
	return out, nil
}

// parseValue converts text to a value the specifier encodes. Integers take
// Go literal syntax (0x, 0b, 0o prefixes).
func parseValue(spec specifier.Specifier, text string) (any, error) {
	switch spec.(type) {
	case specifier.BoolSpec:
		switch strings.ToLower(text) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a bool", text)
	case specifier.Wide:
		v, err := parseWide(text)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		v, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", text, err)
		}
		return v, nil
	}
}

func parseWide(text string) (uint128.Uint128, error) {
	if h, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		b, err := hex.DecodeString(leftPad(h))
		if err != nil || len(b) > 16 {
			return uint128.Zero, fmt.Errorf("%q is not a 128-bit hex value", text)
		}
		return uint128.FromBytesBE(append(make([]byte, 16-len(b)), b...)), nil
	}
	v, err := uint128.FromString(text)
	if err != nil {
		return uint128.Zero, fmt.Errorf("%q: %w", text, err)
	}
	return v, nil
}

func leftPad(h string) string {
	if len(h)%2 == 1 {
		return "0" + h
	}
	return h
}

// initialBytes decodes the hex buffer, or returns zeros when empty.
func initialBytes(l *record.Layout, s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "").Replace(s)
	if s == "" {
		return make([]byte, l.Size()), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hex: %w", err)
	}
	if len(b) != l.Size() {
		return nil, fmt.Errorf("hex: %s needs %d bytes, got %d", l.Name(), l.Size(), len(b))
	}
	return b, nil
}
