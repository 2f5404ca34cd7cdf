// Package specifier defines how logical values map to the raw bits of a
// field.
//
// A Specifier declares a bit width (1..128), the unsigned storage kind
// that holds it, and the domain of valid bit patterns. Conversion is
// fallible in both directions:
//
//	ToStorage   value → bits   fails with out_of_bounds
//	FromStorage bits  → value  fails with invalid_bit_pattern
//
// # Specifiers
//
//	B[T](n)          n-bit unsigned integer held in Go type T
//	Wide(n)          n-bit unsigned integer held in uint128.Uint128
//	Bool             1 bit, domain {0, 1}
//	Enum[T]          declared discriminants only
//	Variant          tag followed by the payload fields of the tagged case
//
// Nested records are specifiers too; see record.Layout.Specifier.
//
// # Dynamic Access
//
// Every specifier also implements Encode and Decode over any, which check
// the Go type of the value. Layout compilers and inspectors that do not
// know field types statically use these; typed code uses Codec[T].
//
// # Thread Safety
//
// Specifiers are immutable after construction and safe for concurrent use.
package specifier
