// Package linear reads and writes bit-packed records that live in a
// byte-addressed memory, typically WebAssembly linear memory.
//
// A View places a record.Layout at an address. Field access touches only
// the bytes the field spans:
//
//	view := linear.View{Mem: linear.NewWazeroMemory(mod.ExportedMemory("memory")), Addr: 1024, Layout: header}
//	kind, err := view.Get("kind")
//	err = view.Set("ack", true)
//
// Rejected writes perform no memory access past the initial read.
package linear
