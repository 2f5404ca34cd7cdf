// Package record compiles ordered field lists into bit-packed layouts and
// provides checked access to byte buffers laid out that way.
//
// Fields are packed in declaration order starting at bit 0 of byte 0; a
// field's offset is the sum of the widths before it. Within the buffer,
// bit i lives in byte i/8 at position i%8 (LSB-first, little-endian):
//
//	layout  a:B9 b:B6 c:B13 d:B4
//	bits    a=0..8  b=9..14  c=15..27  d=28..31
//
// A layout is "filled" when its total width is a multiple of 8. Unfilled
// layouts leave the high bits of their last byte undefined; FromBytes and
// Wrap reject buffers where those bits are set.
//
// # Access
//
// Get and Set are checked: Get fails with invalid_bit_pattern when the
// stored bits are not a member of the field's domain, Set fails with
// out_of_bounds (leaving the buffer untouched) when the value does not fit.
// MustGet and MustSet panic instead. Fields may hide their getter, setter
// or both; those calls fail with unsupported.
//
// Accessor[T] gives statically typed access to one field:
//
//	flag := record.MustAccess[bool](layout, "ack")
//	ok, err := flag.Get(r)
//
// # Nesting
//
// Layout.Specifier turns a layout of at most 128 bits into a specifier, so
// records nest inside other records and variants.
package record
