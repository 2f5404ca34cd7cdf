package engine

import (
	"lukechampine.com/uint128"

	"github.com/wippyai/bitfield/internal/accum"
	"github.com/wippyai/bitfield/internal/span"
)

// MaxWidth is the widest field the engine handles.
const MaxWidth = 128

// GetField returns the width bits of buf starting at bit offset.
// 1 <= width <= MaxWidth.
func GetField(buf []byte, offset, width int) uint128.Uint128 {
	s := span.Of(offset, width)
	var acc accum.Push

	if s.Aligned() {
		for i := s.LastByte; i >= s.FirstByte; i-- {
			acc.Push(8, buf[i])
		}
		return acc.Value()
	}

	if !s.SingleByte() {
		acc.Push(s.MSBWidth, buf[s.LastByte])
	}
	for i := s.LastByte - 1; i > s.FirstByte; i-- {
		acc.Push(8, buf[i])
	}
	if s.SingleByte() {
		acc.Push(width, buf[s.FirstByte]>>s.LSBShift)
	} else {
		acc.Push(8-s.LSBShift, buf[s.FirstByte]>>s.LSBShift)
	}
	return acc.Value()
}

// GetField64 is GetField for fields of at most 64 bits.
func GetField64(buf []byte, offset, width int) uint64 {
	return GetField(buf, offset, width).Lo
}

// SetField writes the low width bits of v into buf starting at bit offset.
// Bits of buf outside the field are left unchanged. v must already fit in
// width bits.
func SetField(buf []byte, offset, width int, v uint128.Uint128) {
	s := span.Of(offset, width)
	acc := accum.NewPop(v)

	if s.Aligned() {
		for i := s.FirstByte; i <= s.LastByte; i++ {
			buf[i] = acc.Pop(8)
		}
		return
	}

	if s.SingleByte() {
		field := lowBits(width) << s.LSBShift
		buf[s.FirstByte] = buf[s.FirstByte]&^field | acc.Pop(width)<<s.LSBShift
		return
	}

	keep := lowBits(s.LSBShift)
	buf[s.FirstByte] = buf[s.FirstByte]&keep | acc.Pop(8-s.LSBShift)<<s.LSBShift

	for i := s.FirstByte + 1; i < s.LastByte; i++ {
		buf[i] = acc.Pop(8)
	}

	if s.MSBWidth == 8 {
		buf[s.LastByte] = acc.Pop(8)
		return
	}
	buf[s.LastByte] = buf[s.LastByte]&^lowBits(s.MSBWidth) | acc.Pop(s.MSBWidth)
}

// SetField64 is SetField for fields of at most 64 bits.
func SetField64(buf []byte, offset, width int, v uint64) {
	SetField(buf, offset, width, uint128.From64(v))
}

// Copy transplants width bits from src at srcOffset into dst at dstOffset,
// in chunks of up to MaxWidth bits.
func Copy(dst []byte, dstOffset int, src []byte, srcOffset, width int) {
	for width > 0 {
		n := min(width, MaxWidth)
		SetField(dst, dstOffset, n, GetField(src, srcOffset, n))
		dstOffset += n
		srcOffset += n
		width -= n
	}
}

// BytesFor returns the number of bytes needed to hold bits bits.
func BytesFor(bits int) int {
	return (bits + 7) / 8
}

func lowBits(n int) byte {
	return byte(uint16(1)<<n - 1)
}
