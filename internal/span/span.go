package span

// Span is the byte geometry of one field. It is recomputed on every access.
type Span struct {
	FirstByte int // byte holding the field's least-significant bit
	LastByte  int // byte holding the field's most-significant bit
	LSBShift  int // bit position of the field inside FirstByte
	MSBWidth  int // field bits inside LastByte, 1..8
	Width     int
}

// Of returns the span of a field of width bits starting at bit offset.
// Width must be at least 1.
func Of(offset, width int) Span {
	end := offset + width
	msb := end % 8
	if msb == 0 {
		msb = 8
	}
	return Span{
		FirstByte: offset / 8,
		LastByte:  (end - 1) / 8,
		LSBShift:  offset % 8,
		MSBWidth:  msb,
		Width:     width,
	}
}

// SingleByte reports whether the field lies within one byte.
func (s Span) SingleByte() bool {
	return s.FirstByte == s.LastByte
}

// Aligned reports whether the field starts and ends on byte boundaries.
func (s Span) Aligned() bool {
	return s.LSBShift == 0 && s.MSBWidth == 8
}

// Bytes returns the number of bytes the field touches.
func (s Span) Bytes() int {
	return s.LastByte - s.FirstByte + 1
}

// Interior returns the number of full bytes strictly between FirstByte and
// LastByte.
func (s Span) Interior() int {
	if n := s.LastByte - s.FirstByte - 1; n > 0 {
		return n
	}
	return 0
}

// Mask returns the bits of byte i that belong to the field.
func (s Span) Mask(i int) byte {
	if i < s.FirstByte || i > s.LastByte {
		return 0
	}
	lo, hi := 0, 8
	if i == s.FirstByte {
		lo = s.LSBShift
	}
	if i == s.LastByte {
		hi = s.MSBWidth
	}
	return lowBits(hi) &^ lowBits(lo)
}

// lowBits returns a byte with its n low bits set.
func lowBits(n int) byte {
	return byte(uint16(1)<<n - 1)
}
