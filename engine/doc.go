// Package engine reads and writes fixed-width fields at arbitrary bit
// offsets in a byte buffer.
//
// # Bit Numbering
//
// Bit 0 is the least-significant bit of byte 0. A field of width w at
// offset o occupies bits [o, o+w). Values are returned and accepted as
// unsigned integers whose bit i is the field's bit o+i, so multi-byte
// fields are little-endian.
//
// # Reading
//
// GetField assembles the field most-significant chunk first into a
// left-shifting accumulator: the partial top byte, the full interior bytes
// from high to low, then the partial bottom byte shifted down. Bits outside
// the field never reach the result.
//
// # Writing
//
// SetField disassembles the value least-significant chunk first from a
// right-shifting accumulator. Boundary bytes keep every bit that does not
// belong to the field.
//
// # Failure
//
// Neither function validates its value or fails. Domain checks live in the
// specifier package and run before SetField is called. Offsets and widths
// outside the buffer panic with an index error like any slice access.
//
// # Thread Safety
//
// GetField only reads. SetField mutates the buffer in place and must not
// race with any other access to the same bytes.
package engine
