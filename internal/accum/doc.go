// Package accum provides the push and pop accumulators used to assemble and
// disassemble a field's bits one chunk of at most 8 bits at a time.
//
// Push shifts its register left and appends low bits, so the first chunk
// pushed ends up most significant. Pop extracts low bits and shifts its
// register right, so the first chunk popped is least significant.
//
// Both wrap a single 128-bit register and live for one engine call.
//
// This package is internal to the engine.
package accum
