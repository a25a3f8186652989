package gotypes

import (
	"fmt"
	"go/types"
	"strconv"
	"strings"

	"struct-layout/internal/oracle"
)

// Oracle answers layout queries about the struct types of a package.
type Oracle struct {
	primary  *types.Package
	sizes    types.Sizes
	packages map[string]*types.Package
	ptrBits  int64
}

var (
	_ oracle.Oracle = (*Oracle)(nil)
	_ oracle.Lister = (*Oracle)(nil)
)

// FromPackage builds an oracle over a type-checked package and everything
// it imports. A nil sizes means gc on amd64.
func FromPackage(pkg *types.Package, sizes types.Sizes) *Oracle {
	if sizes == nil {
		sizes = types.SizesFor("gc", "amd64")
	}

	o := &Oracle{
		primary:  pkg,
		sizes:    sizes,
		packages: make(map[string]*types.Package),
		ptrBits:  sizes.Sizeof(types.Typ[types.UnsafePointer]) * 8,
	}
	o.addPackage(pkg)

	return o
}

// addPackage indexes pkg and, transitively, its imports.
func (o *Oracle) addPackage(pkg *types.Package) {
	if pkg == nil {
		return
	}
	if _, ok := o.packages[pkg.Path()]; ok {
		return
	}
	o.packages[pkg.Path()] = pkg
	for _, imp := range pkg.Imports() {
		o.addPackage(imp)
	}
}

// Names implements oracle.Lister. It lists the non-generic struct types of
// the primary package.
func (o *Oracle) Names() []string {
	var names []string
	scope := o.primary.Scope()
	for _, name := range scope.Names() {
		if _, err := o.structOf(scope.Lookup(name)); err == nil {
			names = append(names, name)
		}
	}
	return names
}

// Lookup implements oracle.Oracle.
func (o *Oracle) Lookup(name string) (*oracle.Composite, error) {
	pkg, local := o.primary, name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		p, ok := o.packages[name[:i]]
		if !ok {
			return nil, oracle.NotFound(name)
		}
		pkg, local = p, name[i+1:]
	}

	obj := pkg.Scope().Lookup(local)
	if obj == nil {
		return nil, oracle.NotFound(name)
	}

	st, err := o.structOf(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oracle.NotFound(name), err)
	}

	return o.describeStruct(name, st), nil
}

// structOf returns the struct type a type name declares.
func (o *Oracle) structOf(obj types.Object) (*types.Struct, error) {
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type", obj.Name())
	}

	t := types.Unalias(tn.Type())
	if named, ok := t.(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%s is generic", obj.Name())
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%s is not a struct type", obj.Name())
	}

	return st, nil
}

func (o *Oracle) describeStruct(name string, st *types.Struct) *oracle.Composite {
	vars := make([]*types.Var, st.NumFields())
	blanks := 0
	for i := range vars {
		vars[i] = st.Field(i)
		if vars[i].Name() == "_" {
			blanks++
		}
	}
	offsets := o.sizes.Offsetsof(vars)

	c := &oracle.Composite{
		Name:   name,
		Kind:   oracle.Struct,
		Bits:   o.sizes.Sizeof(st) * 8,
		Fields: make([]oracle.Field, len(vars)),
	}

	nth := 0
	for i, v := range vars {
		fieldName := v.Name()
		if fieldName == "_" && blanks > 1 {
			nth++
			fieldName = "_" + strconv.Itoa(nth)
		}
		c.Fields[i] = oracle.Field{
			Name:   fieldName,
			Offset: offsets[i] * 8,
			Type:   o.describe(v.Type(), nil),
		}
	}

	return c
}

// describe builds the descriptor of a Go type. seen guards against named
// non-struct types that refer to themselves, such as `type P *P`.
func (o *Oracle) describe(t types.Type, seen map[*types.Named]bool) *oracle.Type {
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.Basic:
		return o.describeBasic(tt)

	case *types.Named:
		if tt.TypeArgs().Len() > 0 {
			return oracle.UnsupportedType("instantiated generic type " + o.typeString(tt))
		}
		if st, ok := tt.Underlying().(*types.Struct); ok {
			return oracle.CompositeRef(oracle.Struct, o.sizes.Sizeof(st)*8, o.qualifiedName(tt.Obj()))
		}
		if seen[tt] {
			return oracle.UnsupportedType("recursive type " + o.typeString(tt))
		}
		if seen == nil {
			seen = make(map[*types.Named]bool)
		}
		seen[tt] = true
		return o.describe(tt.Underlying(), seen)

	case *types.Pointer:
		return oracle.PointerTo(o.ptrBits, o.describe(tt.Elem(), seen))

	case *types.Array:
		elem := o.describe(tt.Elem(), seen)
		a := oracle.ArrayOf(tt.Len(), elem)
		a.Bits = o.sizes.Sizeof(tt) * 8
		return a

	case *types.Struct:
		return oracle.CompositeRef(oracle.Struct, o.sizes.Sizeof(tt)*8, "")

	case *types.Slice:
		return oracle.UnsupportedType("slice type " + o.typeString(tt))
	case *types.Map:
		return oracle.UnsupportedType("map type " + o.typeString(tt))
	case *types.Chan:
		return oracle.UnsupportedType("channel type " + o.typeString(tt))
	case *types.Interface:
		return oracle.UnsupportedType("interface type " + o.typeString(tt))
	case *types.Signature:
		return oracle.UnsupportedType("function type " + o.typeString(tt))
	default:
		return oracle.UnsupportedType("type " + o.typeString(t))
	}
}

func (o *Oracle) describeBasic(b *types.Basic) *oracle.Type {
	info := b.Info()
	switch {
	case b.Kind() == types.UnsafePointer:
		return oracle.PointerTo(o.ptrBits, oracle.VoidType())
	case info&types.IsString != 0:
		return oracle.UnsupportedType("string type")
	case info&types.IsUntyped != 0, b.Kind() == types.Invalid:
		return oracle.UnsupportedType("untyped or invalid type " + b.Name())
	}

	// byte and rune resolve to uint8 and int32.
	canonical := types.Typ[b.Kind()]
	return oracle.Scalar(o.sizes.Sizeof(canonical)*8, canonical.Name())
}

// qualifiedName is the lookup name of a declared type.
func (o *Oracle) qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil || obj.Pkg() == o.primary {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func (o *Oracle) typeString(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		if p == o.primary {
			return ""
		}
		return p.Path()
	})
}
