package bitfield

import "lukechampine.com/uint128"

// Storage is the raw, unvalidated bit pattern of a field. It is wide
// enough to hold the widest supported specifier (128 bits).
type Storage = uint128.Uint128

// MaxBits is the widest field a specifier may declare.
const MaxBits = 128

// Memory is a byte-addressed backing store that records can live in,
// such as WASM linear memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of a Memory in bytes.
type MemorySizer interface {
	Size() uint32
}
