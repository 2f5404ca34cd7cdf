package witbits

import (
	"fmt"
	"strconv"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/bitfield/errors"
	"github.com/wippyai/bitfield/record"
	"github.com/wippyai/bitfield/specifier"
)

// Compiler turns WIT types into specifiers.
type Compiler struct {
	cache   map[*wit.TypeDef]specifier.Specifier
	layouts map[*wit.TypeDef]*record.Layout
	logger  *zap.Logger
}

// NewCompiler returns a compiler with an empty typedef cache.
func NewCompiler() *Compiler {
	return &Compiler{
		cache:   make(map[*wit.TypeDef]specifier.Specifier),
		layouts: make(map[*wit.TypeDef]*record.Layout),
		logger:  Logger(),
	}
}

// Specifier compiles t into a field specifier.
func (c *Compiler) Specifier(t wit.Type) (specifier.Specifier, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return specifier.Bool, nil
	case wit.U8:
		return specifier.U8, nil
	case wit.U16:
		return specifier.U16, nil
	case wit.U32:
		return specifier.U32, nil
	case wit.U64:
		return specifier.U64, nil
	case *wit.TypeDef:
		return c.typeDef(typ)
	case nil:
		return nil, errors.Unsupported(errors.PhaseCompile, "missing type")
	default:
		return nil, errors.Unsupported(errors.PhaseCompile,
			fmt.Sprintf("WIT type %T has no bit-packed encoding", t))
	}
}

func (c *Compiler) typeDef(td *wit.TypeDef) (specifier.Specifier, error) {
	if cached, ok := c.cache[td]; ok {
		return cached, nil
	}

	name := typeName(td)
	var (
		spec specifier.Specifier
		err  error
	)

	switch kind := td.Kind.(type) {
	case *wit.Record, *wit.Flags, *wit.Tuple:
		var l *record.Layout
		if l, err = c.Layout(td); err == nil {
			spec, err = l.Specifier()
		}
	case *wit.Enum:
		spec, err = c.enum(name, kind)
	case *wit.Variant:
		spec, err = c.variant(name, kind)
	case *wit.Option:
		spec, err = c.option(name, kind)
	case *wit.Result:
		spec, err = c.result(name, kind)
	case wit.Type:
		spec, err = c.Specifier(kind)
	default:
		err = errors.Unsupported(errors.PhaseCompile,
			fmt.Sprintf("WIT %T %s has no bit-packed encoding", td.Kind, name))
	}
	if err != nil {
		return nil, err
	}

	c.cache[td] = spec
	c.logger.Debug("compiled WIT type",
		zap.String("type", name),
		zap.Stringer("spec", spec),
		zap.Int("bits", spec.Bits()))
	return spec, nil
}

// Layout compiles a record, flags or tuple typedef (or an alias of one)
// into a record layout. Layouts whose width is not a multiple of 8 are
// compiled unfilled.
func (c *Compiler) Layout(td *wit.TypeDef) (*record.Layout, error) {
	if l, ok := c.layouts[td]; ok {
		return l, nil
	}

	name := typeName(td)
	var defs []record.FieldDef

	switch kind := td.Kind.(type) {
	case *wit.Record:
		for _, f := range kind.Fields {
			spec, err := c.Specifier(f.Type)
			if err != nil {
				return nil, at(err, name, f.Name)
			}
			defs = append(defs, record.F(f.Name, spec))
		}
	case *wit.Flags:
		for _, f := range kind.Flags {
			defs = append(defs, record.F(f.Name, specifier.Bool))
		}
	case *wit.Tuple:
		for i, t := range kind.Types {
			spec, err := c.Specifier(t)
			if err != nil {
				return nil, at(err, name, strconv.Itoa(i))
			}
			defs = append(defs, record.F(strconv.Itoa(i), spec))
		}
	case wit.Type:
		inner, ok := kind.(*wit.TypeDef)
		if !ok {
			return nil, errors.Unsupported(errors.PhaseCompile,
				fmt.Sprintf("WIT alias %s of %T is not a record, flags or tuple", name, kind))
		}
		l, err := c.Layout(inner)
		if err != nil {
			return nil, err
		}
		c.layouts[td] = l
		return l, nil
	default:
		return nil, errors.Unsupported(errors.PhaseCompile,
			fmt.Sprintf("WIT %T %s is not a record, flags or tuple", td.Kind, name))
	}

	bits := 0
	for _, d := range defs {
		bits += d.Spec.Bits()
	}
	l, err := record.Compile(name, defs,
		record.Filled(bits%8 == 0),
		record.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.layouts[td] = l
	return l, nil
}

func (c *Compiler) enum(name string, e *wit.Enum) (specifier.Specifier, error) {
	names := make([]string, len(e.Cases))
	for i, cs := range e.Cases {
		names[i] = cs.Name
	}
	return specifier.NewEnum(name, 0, specifier.Cases[uint32](names...)...)
}

func (c *Compiler) variant(name string, v *wit.Variant) (specifier.Specifier, error) {
	cases := make([]specifier.VariantCase, len(v.Cases))
	for i, cs := range v.Cases {
		cases[i].Name = cs.Name
		if cs.Type == nil {
			continue
		}
		spec, err := c.Specifier(cs.Type)
		if err != nil {
			return nil, at(err, name, cs.Name)
		}
		cases[i].Fields = []specifier.Specifier{spec}
	}
	return specifier.NewVariant(name, nil, cases...)
}

func (c *Compiler) option(name string, o *wit.Option) (specifier.Specifier, error) {
	spec, err := c.Specifier(o.Type)
	if err != nil {
		return nil, at(err, name, "some")
	}
	return specifier.NewVariant(name, nil,
		specifier.VariantCase{Name: "none"},
		specifier.VariantCase{Name: "some", Fields: []specifier.Specifier{spec}},
	)
}

func (c *Compiler) result(name string, r *wit.Result) (specifier.Specifier, error) {
	ok := specifier.VariantCase{Name: "ok"}
	if r.OK != nil {
		spec, err := c.Specifier(r.OK)
		if err != nil {
			return nil, at(err, name, "ok")
		}
		ok.Fields = []specifier.Specifier{spec}
	}
	fail := specifier.VariantCase{Name: "err"}
	if r.Err != nil {
		spec, err := c.Specifier(r.Err)
		if err != nil {
			return nil, at(err, name, "err")
		}
		fail.Fields = []specifier.Specifier{spec}
	}
	return specifier.NewVariant(name, nil, ok, fail)
}

// ParsePrimitive maps a WIT primitive type name such as "u16" to its
// specifier.
func ParsePrimitive(s string) (specifier.Specifier, error) {
	t, err := wit.ParseType(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err,
			fmt.Sprintf("unknown WIT primitive %q", s))
	}
	return NewCompiler().Specifier(t)
}

func typeName(td *wit.TypeDef) string {
	if td.Name != nil && *td.Name != "" {
		return *td.Name
	}
	switch td.Kind.(type) {
	case *wit.Record:
		return "record"
	case *wit.Flags:
		return "flags"
	case *wit.Tuple:
		return "tuple"
	case *wit.Enum:
		return "enum"
	case *wit.Variant:
		return "variant"
	case *wit.Option:
		return "option"
	default:
		return "type"
	}
}

func at(err error, path ...string) error {
	if e, ok := errors.As(err); ok {
		return e.WithPath(path...)
	}
	return err
}
