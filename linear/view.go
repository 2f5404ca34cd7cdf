package linear

import (
	"go.uber.org/zap"

	"github.com/wippyai/bitfield"
	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/internal/span"
	"github.com/wippyai/bitfield/record"
	"github.com/wippyai/bitfield/specifier"
)

// View is a record of Layout stored at Addr in Mem.
type View struct {
	Mem    bitfield.Memory
	Layout *record.Layout
	Addr   uint32
}

// Load copies the whole record out of memory.
func (v View) Load() (*record.Record, error) {
	data, err := v.read(0, v.Layout.Size())
	if err != nil {
		return nil, err
	}
	return v.Layout.FromBytes(data)
}

// Store writes the whole record into memory.
func (v View) Store(r *record.Record) error {
	if r == nil {
		return errors.New(errors.PhaseMemory, errors.KindTypeMismatch).
			Path(v.Layout.Name()).
			Detail("nil record").
			Build()
	}
	if r.Layout() != v.Layout {
		return errors.New(errors.PhaseMemory, errors.KindTypeMismatch).
			Path(v.Layout.Name()).
			Detail("record uses layout %s", r.Layout().Name()).
			Build()
	}
	if err := v.Mem.Write(v.Addr, r.Bytes()); err != nil {
		return v.wrap(err)
	}
	Logger().Debug("record stored",
		zap.String("layout", v.Layout.Name()),
		zap.Uint32("addr", v.Addr),
		zap.Int("bytes", v.Layout.Size()))
	return nil
}

// Raw reads a field's bits without domain validation.
func (v View) Raw(name string) (bitfield.Storage, error) {
	f, s, err := v.field(errors.PhaseDecode, name)
	if err != nil {
		return bitfield.Storage{}, err
	}
	if !f.Readable() {
		return bitfield.Storage{}, denied(v.Layout, f, errors.PhaseDecode, "getter")
	}
	data, err := v.read(s.FirstByte, s.Bytes())
	if err != nil {
		return bitfield.Storage{}, err
	}
	return engine.GetField(data, s.LSBShift, f.Bits()), nil
}

// Get reads and validates one field, touching only its bytes.
func (v View) Get(name string) (any, error) {
	raw, err := v.Raw(name)
	if err != nil {
		return nil, err
	}
	f, _ := v.Layout.Field(name)
	val, err := f.Spec.Decode(raw)
	if err != nil {
		return nil, withPath(err, v.Layout.Name(), f.Name)
	}
	return val, nil
}

// Set validates and writes one field, touching only its bytes. A rejected
// value leaves memory unchanged.
func (v View) Set(name string, val any) error {
	f, s, err := v.field(errors.PhaseEncode, name)
	if err != nil {
		return err
	}
	if !f.Writable() {
		return denied(v.Layout, f, errors.PhaseEncode, "setter")
	}

	raw, err := f.Spec.Encode(val)
	if err == nil {
		err = specifier.CheckBounds(raw, f.Bits())
	}
	if err != nil {
		return withPath(err, v.Layout.Name(), f.Name)
	}

	cur, err := v.read(s.FirstByte, s.Bytes())
	if err != nil {
		return err
	}
	engine.SetField(cur, s.LSBShift, f.Bits(), raw)
	if err := v.Mem.Write(v.Addr+uint32(s.FirstByte), cur); err != nil {
		return v.wrap(err)
	}

	Logger().Debug("field stored",
		zap.String("layout", v.Layout.Name()),
		zap.String("field", f.Name),
		zap.Uint32("addr", v.Addr+uint32(s.FirstByte)),
		zap.Int("bytes", len(cur)))
	return nil
}

func (v View) field(phase errors.Phase, name string) (record.Field, span.Span, error) {
	f, ok := v.Layout.Field(name)
	if !ok {
		return record.Field{}, span.Span{}, errors.FieldUnknown(phase, []string{v.Layout.Name()}, name)
	}
	return f, span.Of(f.Offset, f.Bits()), nil
}

// read copies n bytes at Addr+off.
func (v View) read(off, n int) ([]byte, error) {
	addr := uint64(v.Addr) + uint64(off)
	if addr+uint64(n) > 1<<32 {
		return nil, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Path(v.Layout.Name()).
			Detail("address %#x + %d overflows 32-bit memory", addr, n).
			Build()
	}
	if sz, ok := v.Mem.(bitfield.MemorySizer); ok && addr+uint64(n) > uint64(sz.Size()) {
		return nil, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Path(v.Layout.Name()).
			Detail("record at %#x needs bytes up to %#x, memory is %d bytes", v.Addr, addr+uint64(n), sz.Size()).
			Build()
	}
	data, err := v.Mem.Read(uint32(addr), uint32(n))
	if err != nil {
		return nil, v.wrap(err)
	}
	return append([]byte(nil), data...), nil
}

func (v View) wrap(err error) error {
	if e, ok := errors.As(err); ok {
		return e.WithPath(v.Layout.Name())
	}
	return errors.Wrap(errors.PhaseMemory, errors.KindOutOfBounds, err, "memory access failed")
}

func denied(l *record.Layout, f record.Field, phase errors.Phase, what string) error {
	return errors.New(phase, errors.KindUnsupported).
		Path(l.Name(), f.Name).
		Detail("field %s has no %s (%s)", f.Name, what, f.Access).
		Build()
}

func withPath(err error, path ...string) error {
	if e, ok := errors.As(err); ok {
		return e.WithPath(path...)
	}
	return err
}
