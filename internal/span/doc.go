// Package span converts a field's bit offset and width into the byte
// range it touches and the partial widths of its boundary bytes.
//
// # Shapes
//
// Every field falls into one of three shapes:
//   - single byte: FirstByte == LastByte
//   - aligned: starts and ends on byte boundaries, whole-byte copy, no masking
//   - general: partial low byte, zero or more interior bytes, partial high byte
//
// This package is internal to the engine.
package span
