package universe

import (
	"fmt"
	"sort"

	"struct-layout/internal/oracle"
)

// Universe is an oracle over the composites of a File.
type Universe struct {
	model      *dataModel
	composites map[string]*oracle.Composite
	names      []string
}

var (
	_ oracle.Oracle = (*Universe)(nil)
	_ oracle.Lister = (*Universe)(nil)
)

// New computes the layouts of every composite declared in f.
func New(f *File) (*Universe, error) {
	applyDefaults(f)

	model, err := newDataModel(f.DataModel)
	if err != nil {
		return nil, err
	}

	b := &builder{
		model:  model,
		decls:  make(map[string]*Composite),
		placed: make(map[*Composite]placement),
		active: make(map[*Composite]bool),
	}

	for i := range f.Composites {
		c := &f.Composites[i]
		if c.Name == "" {
			return nil, fmt.Errorf("composite #%d: top-level composites must be named", i+1)
		}
		if _, dup := b.decls[c.Name]; dup {
			return nil, fmt.Errorf("composite %q declared twice", c.Name)
		}
		b.decls[c.Name] = c
	}

	u := &Universe{
		model:      model,
		composites: make(map[string]*oracle.Composite, len(b.decls)),
	}

	// Place everything first so pointee sizes are known when describing.
	for i := range f.Composites {
		if _, err := b.place(&f.Composites[i]); err != nil {
			return nil, err
		}
	}

	for i := range f.Composites {
		c := &f.Composites[i]
		oc, err := b.describeComposite(c)
		if err != nil {
			return nil, err
		}
		u.composites[c.Name] = oc
		u.names = append(u.names, c.Name)
	}
	sort.Strings(u.names)

	return u, nil
}

// DataModel returns the name of the data model in use.
func (u *Universe) DataModel() string {
	return u.model.name
}

// Lookup implements oracle.Oracle.
func (u *Universe) Lookup(name string) (*oracle.Composite, error) {
	c, ok := u.composites[name]
	if !ok {
		return nil, oracle.NotFound(name)
	}
	return c, nil
}

// Names implements oracle.Lister.
func (u *Universe) Names() []string {
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// placement is the computed layout of one composite, in bits.
type placement struct {
	bits    int64
	align   int64
	offsets []int64
}

type builder struct {
	model  *dataModel
	decls  map[string]*Composite
	placed map[*Composite]placement
	active map[*Composite]bool
}

func compositeKind(c *Composite) (oracle.CompositeKind, error) {
	switch c.Kind {
	case "struct":
		return oracle.Struct, nil
	case "union":
		return oracle.Union, nil
	default:
		return 0, fmt.Errorf("composite %q: unknown kind %q (want struct or union)", c.Name, c.Kind)
	}
}

func label(c *Composite) string {
	if c.Name == "" {
		return "<anonymous " + c.Kind + ">"
	}
	return c.Name
}

// place computes size, alignment and member offsets of c.
func (b *builder) place(c *Composite) (placement, error) {
	if p, ok := b.placed[c]; ok {
		return p, nil
	}
	if b.active[c] {
		return placement{}, fmt.Errorf("composite %q contains itself by value", label(c))
	}
	b.active[c] = true
	defer delete(b.active, c)

	kind, err := compositeKind(c)
	if err != nil {
		return placement{}, err
	}

	var (
		offset  int64
		size    int64
		align   = int64(8)
		offsets = make([]int64, len(c.Fields))
	)

	for i, m := range c.Fields {
		bits, malign, err := b.measure(m)
		if err != nil {
			return placement{}, fmt.Errorf("composite %q member %d: %w", label(c), i+1, err)
		}
		align = max(align, malign)

		if kind == oracle.Union {
			width := bits
			if m.Bits > 0 {
				width = m.Bits
			}
			size = max(size, width)
			continue
		}

		if m.Bits > 0 {
			if m.Bits > bits {
				return placement{}, fmt.Errorf("composite %q member %q: bitfield width %d exceeds its type", label(c), m.Name, m.Bits)
			}
			// A bitfield may not straddle a storage unit of its type.
			if offset/bits != (offset+m.Bits-1)/bits {
				offset = roundUp(offset, malign)
			}
			offsets[i] = offset
			offset += m.Bits
			continue
		}

		offset = roundUp(offset, malign)
		offsets[i] = offset
		offset += bits
	}

	if kind == oracle.Struct {
		size = offset
	}

	p := placement{bits: roundUp(size, align), align: align, offsets: offsets}
	b.placed[c] = p
	return p, nil
}

// measure returns the size and alignment in bits of a member's type.
func (b *builder) measure(m Member) (int64, int64, error) {
	if m.Anonymous != nil {
		if m.Type != "" {
			return 0, 0, fmt.Errorf("member %q sets both type and anonymous", m.Name)
		}
		if m.Anonymous.Name != "" {
			return 0, 0, fmt.Errorf("anonymous member composite must not be named (got %q)", m.Anonymous.Name)
		}
		p, err := b.place(m.Anonymous)
		if err != nil {
			return 0, 0, err
		}
		return p.bits, p.align, nil
	}

	if m.Type == "" {
		return 0, 0, fmt.Errorf("member %q has no type", m.Name)
	}
	if m.Name == "" {
		return 0, 0, fmt.Errorf("member of type %q has no name", m.Type)
	}

	e, err := parseType(m.Type)
	if err != nil {
		return 0, 0, err
	}
	if m.Bits > 0 && (e.base != baseScalar || e.pointers > 0 || len(e.dims) > 0) {
		return 0, 0, fmt.Errorf("bitfield %q must have a scalar type", m.Name)
	}

	var bits, align int64
	switch {
	case e.pointers > 0:
		bits, align = b.model.pointer*8, b.model.pointer*8
	case e.base == baseScalar:
		s, ok := b.model.scalars[e.name]
		if !ok {
			return 0, 0, fmt.Errorf("unknown scalar %q in data model %s", e.name, b.model.name)
		}
		bits, align = s.size*8, s.align*8
	case e.base == baseVector:
		bits, align = vectorBytes*8, vectorBytes*8
	case e.base == baseStruct, e.base == baseUnion:
		decl, err := b.lookup(e)
		if err != nil {
			return 0, 0, err
		}
		if decl == nil {
			return 0, 0, fmt.Errorf("%s %q is incomplete", keyword(e.base), e.name)
		}
		p, err := b.place(decl)
		if err != nil {
			return 0, 0, err
		}
		bits, align = p.bits, p.align
	}

	if e.flexible() {
		return 0, align, nil
	}
	for _, d := range e.dims {
		bits *= d
	}

	return bits, align, nil
}

// lookup resolves a struct or union reference. It returns nil for tags
// that are not declared at all.
func (b *builder) lookup(e typeExpr) (*Composite, error) {
	decl, ok := b.decls[e.name]
	if !ok {
		return nil, nil
	}
	if decl.Kind != keyword(e.base) {
		return nil, fmt.Errorf("%s %q is declared as a %s", keyword(e.base), e.name, decl.Kind)
	}
	return decl, nil
}

func keyword(k baseKind) string {
	if k == baseUnion {
		return "union"
	}
	return "struct"
}

func (b *builder) describeComposite(c *Composite) (*oracle.Composite, error) {
	kind, err := compositeKind(c)
	if err != nil {
		return nil, err
	}
	p := b.placed[c]

	oc := &oracle.Composite{
		Name:   c.Name,
		Kind:   kind,
		Bits:   p.bits,
		Fields: make([]oracle.Field, len(c.Fields)),
	}

	for i, m := range c.Fields {
		t, err := b.describe(m)
		if err != nil {
			return nil, fmt.Errorf("composite %q member %d: %w", label(c), i+1, err)
		}
		oc.Fields[i] = oracle.Field{
			Name:          m.Name,
			Offset:        p.offsets[i],
			BitfieldWidth: m.Bits,
			Type:          t,
		}
	}

	return oc, nil
}

// describe builds the oracle descriptor of a member's type.
func (b *builder) describe(m Member) (*oracle.Type, error) {
	if m.Anonymous != nil {
		kind, err := compositeKind(m.Anonymous)
		if err != nil {
			return nil, err
		}
		return oracle.CompositeRef(kind, b.placed[m.Anonymous].bits, ""), nil
	}

	e, err := parseType(m.Type)
	if err != nil {
		return nil, err
	}

	var t *oracle.Type
	switch e.base {
	case baseScalar:
		t = oracle.Scalar(b.model.scalars[e.name].size*8, e.name)
	case baseVoid:
		t = oracle.VoidType()
	case baseFunc:
		t = oracle.UnsupportedType("function type")
	case baseVector:
		t = oracle.UnsupportedType("vector type")
		t.Bits = vectorBytes * 8
	case baseStruct, baseUnion:
		kind := oracle.Struct
		if e.base == baseUnion {
			kind = oracle.Union
		}
		var bits int64
		decl, err := b.lookup(e)
		if err != nil {
			return nil, err
		}
		if decl != nil {
			bits = b.placed[decl].bits
		}
		t = oracle.CompositeRef(kind, bits, e.name)
	}

	for range e.pointers {
		t = oracle.PointerTo(b.model.pointer*8, t)
	}
	for i := len(e.dims) - 1; i >= 0; i-- {
		t = oracle.ArrayOf(e.dims[i], t)
	}

	return t, nil
}

func roundUp(n, align int64) int64 {
	if align <= 0 {
		return n
	}
	return (n + align - 1) / align * align
}
