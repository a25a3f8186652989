package dwarf

import (
	"debug/dwarf"
	"debug/elf"
	"fmt"
	"sort"

	"struct-layout/internal/oracle"
)

// attrGNUVector is DW_AT_GNU_vector, which debug/dwarf does not name.
const attrGNUVector dwarf.Attr = 0x2107

// Oracle answers layout queries from DWARF data.
type Oracle struct {
	composites map[string]*dwarf.StructType
	vectors    map[*dwarf.ArrayType]bool
	ptrBits    int64
}

var (
	_ oracle.Oracle = (*Oracle)(nil)
	_ oracle.Lister = (*Oracle)(nil)
)

// Open reads the DWARF data of the ELF object at path.
func Open(path string) (*Oracle, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF object: %w", err)
	}
	defer f.Close()

	d, err := f.DWARF()
	if err != nil {
		return nil, fmt.Errorf("failed to read debug info of %s: %w", path, err)
	}

	return New(d)
}

// New indexes the complete composite definitions in d.
func New(d *dwarf.Data) (*Oracle, error) {
	o := &Oracle{
		composites: make(map[string]*dwarf.StructType),
		vectors:    make(map[*dwarf.ArrayType]bool),
	}

	r := d.Reader()
	for {
		e, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read debug info: %w", err)
		}
		if e == nil {
			break
		}
		if o.ptrBits == 0 && r.AddressSize() > 0 {
			o.ptrBits = int64(r.AddressSize()) * 8
		}

		switch e.Tag {
		case dwarf.TagArrayType:
			if v, _ := e.Val(attrGNUVector).(bool); v {
				if err := o.markVector(d, e.Offset); err != nil {
					return nil, err
				}
			}
		case dwarf.TagStructType, dwarf.TagUnionType, dwarf.TagClassType:
			if err := o.index(d, e); err != nil {
				return nil, err
			}
		}
	}

	if o.ptrBits == 0 {
		o.ptrBits = 64
	}

	return o, nil
}

// markVector records the array type at off as a vector. Types decoded
// later from the same data share the cached *dwarf.ArrayType.
func (o *Oracle) markVector(d *dwarf.Data, off dwarf.Offset) error {
	t, err := d.Type(off)
	if err != nil {
		return fmt.Errorf("failed to decode vector type: %w", err)
	}
	if at, ok := t.(*dwarf.ArrayType); ok {
		o.vectors[at] = true
	}
	return nil
}

func (o *Oracle) index(d *dwarf.Data, e *dwarf.Entry) error {
	name, _ := e.Val(dwarf.AttrName).(string)
	if name == "" {
		return nil
	}
	if decl, _ := e.Val(dwarf.AttrDeclaration).(bool); decl {
		return nil
	}
	if _, seen := o.composites[name]; seen {
		return nil
	}

	t, err := d.Type(e.Offset)
	if err != nil {
		return fmt.Errorf("failed to decode type %q: %w", name, err)
	}
	st, ok := t.(*dwarf.StructType)
	if !ok || st.Incomplete {
		return nil
	}
	o.composites[name] = st

	return nil
}

// Names implements oracle.Lister.
func (o *Oracle) Names() []string {
	names := make([]string, 0, len(o.composites))
	for name := range o.composites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup implements oracle.Oracle.
func (o *Oracle) Lookup(name string) (*oracle.Composite, error) {
	st, ok := o.composites[name]
	if !ok {
		return nil, oracle.NotFound(name)
	}

	c := &oracle.Composite{
		Name:   name,
		Kind:   compositeKind(st),
		Bits:   st.ByteSize * 8,
		Fields: make([]oracle.Field, len(st.Field)),
	}
	for i, f := range st.Field {
		c.Fields[i] = oracle.Field{
			Name:          f.Name,
			Offset:        fieldOffset(f),
			BitfieldWidth: f.BitSize,
			Type:          o.describe(f.Type),
		}
	}

	return c, nil
}

// fieldOffset returns the bit offset of a member. Bitfields described
// with DW_AT_bit_offset count from the most significant bit of their
// storage unit, which is converted for little-endian targets.
func fieldOffset(f *dwarf.StructField) int64 {
	offset := f.ByteOffset * 8
	if f.BitSize == 0 {
		return offset
	}
	if f.DataBitOffset != 0 {
		return f.DataBitOffset
	}
	if f.ByteSize > 0 {
		offset += f.ByteSize*8 - f.BitOffset - f.BitSize
	}
	return offset
}

func compositeKind(st *dwarf.StructType) oracle.CompositeKind {
	if st.Kind == "union" {
		return oracle.Union
	}
	return oracle.Struct
}

// describe builds the descriptor of a DWARF type.
func (o *Oracle) describe(t dwarf.Type) *oracle.Type {
	switch tt := t.(type) {
	case nil:
		return oracle.VoidType()

	case *dwarf.TypedefType:
		return o.describe(tt.Type)
	case *dwarf.QualType:
		return o.describe(tt.Type)

	case *dwarf.BoolType, *dwarf.CharType, *dwarf.UcharType, *dwarf.IntType,
		*dwarf.UintType, *dwarf.FloatType, *dwarf.ComplexType, *dwarf.AddrType:
		return oracle.Scalar(t.Size()*8, t.Common().Name)

	case *dwarf.EnumType:
		name := tt.EnumName
		if name == "" {
			name = "<anonymous>"
		}
		return oracle.Scalar(tt.ByteSize*8, "enum "+name)

	case *dwarf.VoidType:
		return oracle.VoidType()

	case *dwarf.PtrType:
		bits := tt.ByteSize * 8
		if bits <= 0 {
			bits = o.ptrBits
		}
		return oracle.PointerTo(bits, o.describe(tt.Type))

	case *dwarf.ArrayType:
		if o.vectors[tt] {
			v := oracle.UnsupportedType("vector type")
			v.Bits = tt.ByteSize * 8
			return v
		}
		count := tt.Count
		if count < 0 {
			count = 0
		}
		a := oracle.ArrayOf(count, o.describe(tt.Type))
		if tt.ByteSize > 0 {
			a.Bits = tt.ByteSize * 8
		}
		return a

	case *dwarf.StructType:
		bits := tt.ByteSize * 8
		if tt.Incomplete || bits < 0 {
			bits = 0
			if def, ok := o.composites[tt.StructName]; ok {
				bits = def.ByteSize * 8
			}
		}
		return oracle.CompositeRef(compositeKind(tt), bits, tt.StructName)

	case *dwarf.FuncType:
		return oracle.UnsupportedType("function type")
	case *dwarf.UnspecifiedType:
		return oracle.UnsupportedType("unspecified type " + tt.Name)
	default:
		return oracle.UnsupportedType(fmt.Sprintf("DWARF type %s", t))
	}
}
