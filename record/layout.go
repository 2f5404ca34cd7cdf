package record

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/bitfield/engine"
	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/specifier"
)

// AccessMode controls which generated accessors a field exposes.
type AccessMode uint8

const (
	ReadWrite  AccessMode = iota
	SkipGetter            // write-only
	SkipSetter            // read-only
	Skip                  // reserved bits, neither readable nor writable
)

var accessNames = [...]string{
	ReadWrite:  "rw",
	SkipGetter: "skip(getters)",
	SkipSetter: "skip(setters)",
	Skip:       "skip",
}

func (a AccessMode) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return "unknown"
}

// FieldDef declares one field of a layout.
type FieldDef struct {
	Name string
	Spec specifier.Specifier
	// Bits, when nonzero, asserts the width of Spec.
	Bits   int
	Access AccessMode
}

// F declares a read-write field.
func F(name string, spec specifier.Specifier) FieldDef {
	return FieldDef{Name: name, Spec: spec}
}

// Field is a compiled field: its definition plus its bit offset.
type Field struct {
	Name   string
	Spec   specifier.Specifier
	Offset int
	Index  int
	Access AccessMode
}

// Bits returns the field's width.
func (f Field) Bits() int { return f.Spec.Bits() }

// Readable reports whether the field has a getter.
func (f Field) Readable() bool { return f.Access == ReadWrite || f.Access == SkipSetter }

// Writable reports whether the field has a setter.
func (f Field) Writable() bool { return f.Access == ReadWrite || f.Access == SkipGetter }

// Option configures Compile.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	filled   bool
	wantSize int
	wantBits int
	repr     specifier.StorageKind
	hasRepr  bool
}

// Filled declares whether the total width must be a multiple of 8 (true,
// the default) or must not be (false).
func Filled(filled bool) Option {
	return func(c *config) { c.filled = filled }
}

// Bytes asserts the layout occupies exactly n bytes.
func Bytes(n int) Option {
	return func(c *config) { c.wantSize = n }
}

// Bits asserts the total width is exactly n bits.
func Bits(n int) Option {
	return func(c *config) { c.wantBits = n }
}

// Repr declares that the layout converts to and from an unsigned integer
// of kind k. The total width must equal k.Bits().
func Repr(k specifier.StorageKind) Option {
	return func(c *config) { c.repr, c.hasRepr = k, true }
}

// WithLogger overrides the package logger for this layout.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Layout is an immutable compiled field list.
type Layout struct {
	logger  *zap.Logger
	byName  map[string]int
	name    string
	fields  []Field
	bits    int
	size    int
	filled  bool
	repr    specifier.StorageKind
	hasRepr bool
}

// Compile assigns offsets to fields in order and validates the layout.
func Compile(name string, defs []FieldDef, opts ...Option) (*Layout, error) {
	cfg := config{filled: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	if len(defs) == 0 {
		return nil, errors.InvalidLayout([]string{name}, "no fields")
	}

	l := &Layout{
		logger:  cfg.logger,
		byName:  make(map[string]int, len(defs)),
		name:    name,
		fields:  make([]Field, 0, len(defs)),
		filled:  cfg.filled,
		repr:    cfg.repr,
		hasRepr: cfg.hasRepr,
	}

	offset := 0
	for i, d := range defs {
		path := []string{name, d.Name}
		if d.Name == "" {
			return nil, errors.InvalidLayout([]string{name, fmt.Sprint(i)}, "field has no name")
		}
		if d.Spec == nil {
			return nil, errors.InvalidLayout(path, "field has no specifier")
		}
		if _, dup := l.byName[d.Name]; dup {
			return nil, errors.InvalidLayout(path, "duplicate field name")
		}
		if d.Access > Skip {
			return nil, errors.InvalidLayout(path, "unknown access mode %d", d.Access)
		}
		w := d.Spec.Bits()
		if w < 1 || w > specifier.MaxBits {
			return nil, errors.InvalidLayout(path, "width %d outside 1..%d", w, specifier.MaxBits)
		}
		if d.Bits != 0 && d.Bits != w {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidLayout).
				Path(path...).
				Spec(d.Spec.String()).
				Detail("declared %d bits, specifier has %d", d.Bits, w).
				Build()
		}
		l.byName[d.Name] = len(l.fields)
		l.fields = append(l.fields, Field{
			Name:   d.Name,
			Spec:   d.Spec,
			Offset: offset,
			Index:  i,
			Access: d.Access,
		})
		offset += w
	}

	l.bits = offset
	l.size = engine.BytesFor(offset)

	switch {
	case cfg.filled && offset%8 != 0:
		return nil, errors.InvalidLayout([]string{name},
			"%d bits is not a multiple of 8; declare the layout unfilled", offset)
	case !cfg.filled && offset%8 == 0:
		return nil, errors.InvalidLayout([]string{name},
			"unfilled layout has %d bits, a multiple of 8", offset)
	case cfg.wantSize != 0 && cfg.wantSize != l.size:
		return nil, errors.InvalidLayout([]string{name},
			"declared %d bytes, fields occupy %d", cfg.wantSize, l.size)
	case cfg.wantBits != 0 && cfg.wantBits != offset:
		return nil, errors.InvalidLayout([]string{name},
			"declared %d bits, fields occupy %d", cfg.wantBits, offset)
	case cfg.hasRepr && cfg.repr.Bits() != offset:
		return nil, errors.InvalidLayout([]string{name},
			"repr(%s) needs %d bits, fields occupy %d", cfg.repr, cfg.repr.Bits(), offset)
	}

	l.logger.Debug("layout compiled",
		zap.String("layout", name),
		zap.Int("fields", len(l.fields)),
		zap.Int("bits", l.bits),
		zap.Int("bytes", l.size),
		zap.Bool("filled", l.filled))
	return l, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(name string, defs []FieldDef, opts ...Option) *Layout {
	l, err := Compile(name, defs, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) Name() string { return l.name }
func (l *Layout) Bits() int    { return l.bits }
func (l *Layout) Size() int    { return l.size }
func (l *Layout) Filled() bool { return l.filled }

// Repr returns the integer kind declared with the Repr option.
func (l *Layout) Repr() (specifier.StorageKind, bool) { return l.repr, l.hasRepr }

// Fields returns the compiled fields in declaration order.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// New returns a zeroed record.
func (l *Layout) New() *Record {
	return &Record{layout: l, buf: make([]byte, l.size)}
}

// FromBytes copies b into a new record. b must be exactly Size bytes, and
// for unfilled layouts the bits past the last field must be zero.
func (l *Layout) FromBytes(b []byte) (*Record, error) {
	if err := l.validate(b); err != nil {
		return nil, err
	}
	return &Record{layout: l, buf: append([]byte(nil), b...)}, nil
}

// Wrap is FromBytes without the copy; the record aliases b.
func (l *Layout) Wrap(b []byte) (*Record, error) {
	if err := l.validate(b); err != nil {
		return nil, err
	}
	return &Record{layout: l, buf: b}, nil
}

func (l *Layout) validate(b []byte) error {
	if len(b) != l.size {
		return errors.InvalidInput(errors.PhaseValidate, []string{l.name},
			fmt.Sprintf("need %d bytes, got %d", l.size, len(b)))
	}
	if l.filled {
		return nil
	}
	used := l.bits % 8
	if extra := b[l.size-1] >> used; extra != 0 {
		return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
			Path(l.name).
			Value(uint64(b[l.size-1])).
			Detail("undefined bits above bit %d are set in last byte %#02x", l.bits, b[l.size-1]).
			Build()
	}
	return nil
}

func (l *Layout) String() string {
	return fmt.Sprintf("%s(%d bits)", l.name, l.bits)
}

func (l *Layout) lookup(phase errors.Phase, name string) (Field, error) {
	f, ok := l.Field(name)
	if !ok {
		return Field{}, errors.FieldUnknown(phase, []string{l.name}, name)
	}
	return f, nil
}
