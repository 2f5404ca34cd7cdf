package record_test

import (
	"fmt"

	"github.com/wippyai/bitfield/record"
	"github.com/wippyai/bitfield/specifier"
)

func Example() {
	header := record.MustCompile("Header", []record.FieldDef{
		record.F("ack", specifier.Bool),
		record.F("kind", specifier.B[uint8](3)),
		record.F("len", specifier.B[uint16](12)),
	})

	r := header.New()
	r.MustSet("ack", true)
	r.MustSet("kind", uint8(5))
	r.MustSet("len", uint16(1000))

	fmt.Println(r)
	fmt.Printf("% x\n", r.Bytes())

	if err := r.Set("kind", uint8(8)); err != nil {
		fmt.Println(err)
	}
	// Output:
	// Header { ack: true, kind: 5, len: 1000 }
	// 8b 3e
	// [encode] out_of_bounds at Header.kind: value 8 does not fit in 3 bits
}
