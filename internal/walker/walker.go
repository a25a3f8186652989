package walker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	lerrors "struct-layout/internal/errors"
	"struct-layout/internal/layout"
	"struct-layout/internal/match"
	"struct-layout/internal/oracle"
)

// maxSuggestions bounds the "did you mean" list of a TypeNotFound error.
const maxSuggestions = 3

// walk holds the state of one extraction.
type walk struct {
	oracle oracle.Oracle
	table  *layout.Table
	queue  []string
	queued map[string]struct{}
	log    *zap.Logger
}

// Extract builds the layout table for root from o.
func Extract(root string, o oracle.Oracle) (*layout.Table, error) {
	w := &walk{
		oracle: o,
		table:  layout.NewTable(root),
		queued: make(map[string]struct{}),
		log:    Logger().With(zap.String("root", root)),
	}

	w.enqueue(root)

	for len(w.queue) > 0 {
		name := w.queue[0]
		w.queue = w.queue[1:]

		if w.table.Has(name) {
			continue
		}

		if err := w.expand(name); err != nil {
			w.log.Debug("extraction failed", zap.Error(err))
			return nil, err
		}
	}

	w.log.Debug("extraction complete", zap.Int("composites", w.table.Len()))

	return w.table, nil
}

func (w *walk) enqueue(name string) {
	if _, ok := w.queued[name]; ok {
		return
	}
	w.queued[name] = struct{}{}
	w.queue = append(w.queue, name)
	w.log.Debug("queued composite", zap.String("name", name))
}

// expand looks up one composite and stores its declaration.
func (w *walk) expand(name string) error {
	comp, err := w.oracle.Lookup(name)
	if err != nil {
		if errors.Is(err, oracle.ErrNotFound) {
			return w.notFound(name)
		}
		return fmt.Errorf("looking up %q: %w", name, err)
	}

	anonTotal := map[oracle.Class]int{}
	for _, f := range comp.Fields {
		if f.Name == "" && f.Type != nil {
			anonTotal[f.Type.Class]++
		}
	}
	anonSeen := map[oracle.Class]int{}

	decl := &layout.Declaration{}
	for _, f := range comp.Fields {
		label := f.Name
		if label == "" {
			label = "<unnamed>"
		}
		path := []string{name, label}

		if f.BitfieldWidth != 0 {
			return lerrors.Unsupported(path, fmt.Sprintf("bitfield of width %d", f.BitfieldWidth))
		}

		node, err := w.translate(f.Type, path, true)
		if err != nil {
			return err
		}

		fieldName := f.Name
		if fieldName == "" {
			kind := node.Kind()
			if !kind.IsComposite() {
				return lerrors.Unsupported(path, "unnamed member of non-composite type "+node.String())
			}
			anonSeen[f.Type.Class]++
			fieldName = layout.AnonymousFieldName(kind, anonSeen[f.Type.Class], anonTotal[f.Type.Class])
		}

		if err := decl.Add(layout.Field{Name: fieldName, Offset: f.Offset, Type: node}); err != nil {
			return fmt.Errorf("composite %q: %w", name, err)
		}
	}

	w.table.Set(name, decl)
	w.log.Debug("expanded composite",
		zap.String("name", name),
		zap.Stringer("kind", comp.Kind),
		zap.Int64("bits", comp.Bits),
		zap.Int("fields", decl.Len()))

	return nil
}

// translate converts a descriptor into a layout node. byValue is true while
// the type is embedded in the enclosing composite, i.e. not behind a pointer.
func (w *walk) translate(t *oracle.Type, path []string, byValue bool) (layout.Node, error) {
	if t == nil {
		return nil, lerrors.Unsupported(path, "field has no type")
	}

	switch t.Class {
	case oracle.ClassScalar:
		return layout.Basic{Bits: t.Bits, Name: t.Name}, nil

	case oracle.ClassVoid:
		return layout.Void{}, nil

	case oracle.ClassPointer:
		pointee, err := w.translate(t.Elem, path, false)
		if err != nil {
			return nil, err
		}
		return layout.Pointer{Bits: t.Bits, Pointee: pointee}, nil

	case oracle.ClassArray:
		elem, err := w.translate(t.Elem, path, byValue)
		if err != nil {
			return nil, err
		}
		return layout.Array{Bits: t.Bits, Count: t.Count, Elem: elem}, nil

	case oracle.ClassStruct, oracle.ClassUnion:
		kind := layout.KindStruct
		if t.Class == oracle.ClassUnion {
			kind = layout.KindUnion
		}
		if byValue && t.Name != "" {
			w.enqueue(t.Name)
		}
		return layout.NewComposite(kind, t.Bits, t.Name), nil

	default:
		reason := t.Reason
		if reason == "" {
			reason = "type outside the layout model"
		}
		return nil, lerrors.Unsupported(path, reason)
	}
}

// notFound builds a TypeNotFound error, suggesting close names when the
// oracle can list them.
func (w *walk) notFound(name string) error {
	var suggestions []string
	if l, ok := w.oracle.(oracle.Lister); ok {
		suggestions = match.Suggest(name, l.Names(), maxSuggestions)
	}

	err := lerrors.TypeNotFound(name, suggestions...)
	if name != w.table.Root {
		err.Detail = fmt.Sprintf("referenced from the layout of %q", w.table.Root)
	}

	return err
}
