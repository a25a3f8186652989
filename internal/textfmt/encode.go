package textfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"struct-layout/internal/layout"
)

// Marshal renders t in the textual format.
func Marshal(t *layout.Table) []byte {
	var buf bytes.Buffer
	writeTable(&buf, t)
	return buf.Bytes()
}

// Encode writes the textual form of t to w.
func Encode(w io.Writer, t *layout.Table) error {
	if _, err := w.Write(Marshal(t)); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

func writeTable(buf *bytes.Buffer, t *layout.Table) {
	for i, name := range order(t) {
		if i > 0 {
			buf.WriteByte('\n')
		}
		d, _ := t.Get(name)
		writeDeclaration(buf, name, d)
	}
}

func writeDeclaration(buf *bytes.Buffer, name string, d *layout.Declaration) {
	writeName(buf, name)
	buf.WriteString(" = {")

	if d == nil || d.Len() == 0 {
		buf.WriteString("}\n")
		return
	}

	buf.WriteByte('\n')
	for _, f := range d.Fields() {
		buf.WriteByte('\t')
		buf.WriteString(strconv.Quote(f.Name))
		buf.WriteString(": (")
		buf.WriteString(strconv.FormatInt(f.Offset, 10))
		buf.WriteString(", ")
		writeNode(buf, f.Type)
		buf.WriteString("),\n")
	}
	buf.WriteString("}\n")
}

func writeName(buf *bytes.Buffer, name string) {
	if isIdent(name) {
		buf.WriteString(name)
		return
	}
	buf.WriteString(strconv.Quote(name))
}

// writeNode writes one type expression. A nil node is written as Void().
func writeNode(buf *bytes.Buffer, n layout.Node) {
	switch n := n.(type) {
	case layout.Basic:
		fmt.Fprintf(buf, "Basic(%d, %s)", n.Bits, strconv.Quote(n.Name))
	case layout.Pointer:
		fmt.Fprintf(buf, "Pointer(%d, ", n.Bits)
		writeNode(buf, n.Pointee)
		buf.WriteByte(')')
	case layout.Array:
		fmt.Fprintf(buf, "Array(%d, %d, ", n.Bits, n.Count)
		writeNode(buf, n.Elem)
		buf.WriteByte(')')
	case layout.Struct:
		fmt.Fprintf(buf, "Struct(%d, %s)", n.Bits, strconv.Quote(n.Name))
	case layout.Union:
		fmt.Fprintf(buf, "Union(%d, %s)", n.Bits, strconv.Quote(n.Name))
	default:
		buf.WriteString("Void()")
	}
}
