package span

import "testing"

func TestOf(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		width      int
		want       Span
		singleByte bool
		aligned    bool
	}{
		{"bit 0", 0, 1, Span{0, 0, 0, 1, 1}, true, false},
		{"full byte", 0, 8, Span{0, 0, 0, 8, 8}, true, true},
		{"inside byte", 3, 2, Span{0, 0, 3, 5, 2}, true, false},
		{"top of byte", 5, 3, Span{0, 0, 5, 8, 3}, true, false},
		{"straddle", 6, 4, Span{0, 1, 6, 2, 4}, false, false},
		{"aligned two bytes", 8, 16, Span{1, 2, 0, 8, 16}, false, true},
		{"a:9@0", 0, 9, Span{0, 1, 0, 1, 9}, false, false},
		{"b:6@9", 9, 6, Span{1, 1, 1, 7, 6}, true, false},
		{"c:13@15", 15, 13, Span{1, 3, 7, 4, 13}, false, false},
		{"d:4@28", 28, 4, Span{3, 3, 4, 8, 4}, true, false},
		{"128 bits unaligned", 3, 128, Span{0, 16, 3, 3, 128}, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Of(tc.offset, tc.width)
			if got != tc.want {
				t.Errorf("Of(%d, %d) = %+v, want %+v", tc.offset, tc.width, got, tc.want)
			}
			if got.SingleByte() != tc.singleByte {
				t.Errorf("SingleByte: got %v, want %v", got.SingleByte(), tc.singleByte)
			}
			if got.Aligned() != tc.aligned {
				t.Errorf("Aligned: got %v, want %v", got.Aligned(), tc.aligned)
			}
		})
	}
}

func TestInterior(t *testing.T) {
	tests := []struct {
		offset, width, want int
	}{
		{0, 8, 0},
		{4, 8, 0},
		{4, 16, 1},
		{1, 128, 15},
		{0, 128, 14},
	}
	for _, tc := range tests {
		s := Of(tc.offset, tc.width)
		if got := s.Interior(); got != tc.want {
			t.Errorf("Of(%d, %d).Interior() = %d, want %d", tc.offset, tc.width, got, tc.want)
		}
		if got := s.Bytes(); got != tc.want+2 && !(s.SingleByte() && got == 1) {
			t.Errorf("Of(%d, %d).Bytes() = %d", tc.offset, tc.width, got)
		}
	}
}

func TestMask(t *testing.T) {
	s := Of(15, 13)
	want := map[int]byte{0: 0x00, 1: 0x80, 2: 0xff, 3: 0x0f, 4: 0x00}
	for i, w := range want {
		if got := s.Mask(i); got != w {
			t.Errorf("Mask(%d) = %#02x, want %#02x", i, got, w)
		}
	}

	s = Of(3, 2)
	if got := s.Mask(0); got != 0x18 {
		t.Errorf("single byte Mask(0) = %#02x, want 0x18", got)
	}
}

// Every bit of a buffer belongs to exactly one of a set of contiguous
// fields.
func TestMaskPartition(t *testing.T) {
	widths := []int{9, 6, 13, 4}
	var cover [4]byte
	offset := 0
	for _, w := range widths {
		s := Of(offset, w)
		for i := range cover {
			if cover[i]&s.Mask(i) != 0 {
				t.Fatalf("field @%d overlaps at byte %d", offset, i)
			}
			cover[i] |= s.Mask(i)
		}
		offset += w
	}
	for i, b := range cover {
		if b != 0xff {
			t.Errorf("byte %d covered %#02x, want 0xff", i, b)
		}
	}
}
