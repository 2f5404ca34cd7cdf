package accum

import "lukechampine.com/uint128"

// Push assembles a value most-significant chunk first.
type Push struct {
	reg uint128.Uint128
}

// Push appends the low amount bits of b, 1 <= amount <= 8.
func (p *Push) Push(amount int, b byte) {
	p.reg = p.reg.Lsh(uint(amount)).Or64(uint64(b & lowBits(amount)))
}

// Value returns the assembled register.
func (p *Push) Value() uint128.Uint128 {
	return p.reg
}

// Pop disassembles a value least-significant chunk first.
type Pop struct {
	reg uint128.Uint128
}

// NewPop returns a pop accumulator holding v.
func NewPop(v uint128.Uint128) Pop {
	return Pop{reg: v}
}

// Pop extracts the low amount bits, 1 <= amount <= 8, and shifts them out.
func (p *Pop) Pop(amount int) byte {
	b := byte(p.reg.Lo) & lowBits(amount)
	p.reg = p.reg.Rsh(uint(amount))
	return b
}

// Remaining returns the bits not yet popped.
func (p *Pop) Remaining() uint128.Uint128 {
	return p.reg
}

func lowBits(n int) byte {
	return byte(uint16(1)<<n - 1)
}
