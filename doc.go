// Package bitfield packs fixed-width fields into byte buffers at
// arbitrary bit offsets.
//
// A field is described by a specifier: its bit width, the unsigned storage
// kind that holds it, and the domain of valid bit patterns. Fields are laid
// out back to back, so a field may start and end anywhere inside a byte.
// Writing a field never disturbs the bits of its neighbours.
//
// # Architecture Overview
//
//	bitfield/            Root package with Storage, Memory and MemorySizer
//	├── engine/          Read/Write engine: GetField, SetField, Copy
//	├── specifier/       Specifier contract, integers, bool, enums, variants
//	├── record/          Layout compiler and record instances
//	├── witbits/         WIT type definitions to bit-packed layouts
//	├── linear/          Records residing in WASM linear memory
//	├── errors/          Structured error types
//	└── cmd/bitview/     Layout inspector (batch and interactive)
//
// # Binary Layout
//
// A record of fields with widths w0, w1, ... occupies ceil(Σw/8) bytes.
// Field i occupies bits [offset_i, offset_i+w_i) where offset_i = Σ_{j<i} w_j
// and bit 0 is the least-significant bit of byte 0. Multi-byte values are
// little-endian:
//
//	a:9 b:6 c:13 d:4
//
//	byte 0          byte 1          byte 2          byte 3
//	7 6 5 4 3 2 1 0 7 6 5 4 3 2 1 0 7 6 5 4 3 2 1 0 7 6 5 4 3 2 1 0
//	a a a a a a a a c b b b b b b a c c c c c c c c d d d d c c c c
//
// # Quick Start
//
//	layout := record.MustCompile("Header", []record.FieldDef{
//	    record.F("kind", specifier.B[uint8](3)),
//	    record.F("ack", specifier.Bool),
//	    record.F("len", specifier.B[uint16](12)),
//	})
//
//	r := layout.New()
//	if err := r.Set("len", uint16(1500)); err != nil {
//	    log.Fatal(err)
//	}
//	n, err := r.Get("len")
//
// # Errors
//
// Encoding a value that needs more bits than its field declares fails with
// an out_of_bounds error before any byte is touched. Decoding bits that are
// not a member of the field's domain (a boolean other than 0 or 1, an
// undeclared enum discriminant) fails with invalid_bit_pattern. The engine
// itself never fails.
//
// # Thread Safety
//
// Compiled layouts and specifiers are immutable and safe for concurrent
// use. A Record owns a mutable buffer and must not be written concurrently.
package bitfield
