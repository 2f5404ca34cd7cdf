package linear

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/errors"
)

// WazeroMemory wraps wazero memory to implement bitfield.Memory.
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory adapts a wazero memory. mem may come from
// api.Module.Memory or ExportedMemory.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

// Read returns a view of memory, not a copy; it is invalidated when memory
// grows.
func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, outOfRange("read", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return outOfRange("write", offset, uint32(len(data)))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}

// Bytes is a plain byte slice used as memory.
type Bytes []byte

func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b)) {
		return nil, outOfRange("read", offset, length)
	}
	return b[offset:end], nil
}

func (b Bytes) Write(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(b)) {
		return outOfRange("write", offset, uint32(len(data)))
	}
	copy(b[offset:end], data)
	return nil
}

func (b Bytes) Size() uint32 {
	return uint32(len(b))
}

func outOfRange(op string, offset, length uint32) error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Detail("%s out of bounds: offset=%d, length=%d", op, offset, length).
		Build()
}

var (
	_ bitfield.Memory      = (*WazeroMemory)(nil)
	_ bitfield.MemorySizer = (*WazeroMemory)(nil)
	_ bitfield.Memory      = Bytes(nil)
	_ bitfield.MemorySizer = Bytes(nil)
)
