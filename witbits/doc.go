// Package witbits maps WebAssembly Interface Type definitions onto
// bit-packed specifiers and record layouts.
//
// Unlike the Canonical ABI, which aligns every field to its natural size,
// witbits packs fields back to back at bit granularity:
//
//	WIT                        bits
//	bool                       1
//	u8 / u16 / u32 / u64       8 / 16 / 32 / 64
//	enum with n cases          ceil(log2 n)
//	flags with n flags         n
//	record / tuple             sum of fields
//	variant / option / result  tag + widest payload
//
// Signed integers, floats, char, strings, lists and resources have no
// fixed-width bit encoding here and are rejected.
//
// # Usage
//
//	c := witbits.NewCompiler()
//	layout, err := c.Layout(headerTypeDef)
//	r := layout.New()
//
// Compiled specifiers are cached per *wit.TypeDef, so shared typedefs
// compile once. A Compiler is not safe for concurrent use.
package witbits
