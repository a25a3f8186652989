// Package report renders layout tables and diagnostics for people.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"struct-layout/internal/diagnostic"
	"struct-layout/internal/layout"
)

// Options controls rendering.
type Options struct {
	// Color enables styling. Use IsTerminal to decide.
	Color bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	paddingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	severityStyles = map[diagnostic.Severity]lipgloss.Style{
		diagnostic.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		diagnostic.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")),
		diagnostic.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
	}
)

// paddingField is the field column of a row standing for unused bits.
const paddingField = "(padding)"

// row is one line of a composite's table.
type row struct {
	offset int64
	size   int64
	field  string
	typ    string
}

// Write renders t to w.
func Write(w io.Writer, t *layout.Table, opts Options) error {
	_, err := io.WriteString(w, Render(t, opts))
	return err
}

// Render returns one table per composite, in name order, in the manner of
// pahole: bit and byte offsets, sizes, field names, C-style types and the
// padding between consecutive fields.
func Render(t *layout.Table, opts Options) string {
	var b strings.Builder
	for i, name := range t.Names() {
		if i > 0 {
			b.WriteByte('\n')
		}
		d, _ := t.Get(name)
		b.WriteString(renderDeclaration(name, d, opts))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderDeclaration(name string, d *layout.Declaration, opts Options) string {
	rows := layoutRows(d)

	var extent int64
	for _, r := range rows {
		extent = max(extent, r.offset+r.size)
	}

	title := fmt.Sprintf("%s  (%d fields, %d bits used)", name, d.Len(), extent)
	if opts.Color {
		title = titleStyle.Render(title)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OFFSET", "BYTE", "SIZE", "FIELD", "TYPE")

	for _, r := range rows {
		tbl.Row(strconv.FormatInt(r.offset, 10), byteOffset(r.offset), strconv.FormatInt(r.size, 10), r.field, r.typ)
	}

	if opts.Color {
		tbl.BorderStyle(borderStyle).StyleFunc(func(i, _ int) lipgloss.Style {
			switch {
			case i == table.HeaderRow:
				return headerStyle
			case i < len(rows) && rows[i].field == paddingField:
				return paddingStyle
			default:
				return cellStyle
			}
		})
	} else {
		tbl.StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}

	return title + "\n" + tbl.String()
}

// layoutRows lists the fields by offset and inserts padding rows where
// consecutive fields leave bits unused. Overlapping fields (union members)
// produce no padding.
func layoutRows(d *layout.Declaration) []row {
	fields := d.Fields()
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Offset < fields[j].Offset })

	var rows []row
	var end int64
	for i, f := range fields {
		if i > 0 && f.Offset > end {
			rows = append(rows, row{offset: end, size: f.Offset - end, field: paddingField})
		}
		size := int64(0)
		typ := "<nil>"
		if f.Type != nil {
			size, typ = f.Type.Size(), f.Type.String()
		}
		rows = append(rows, row{offset: f.Offset, size: size, field: f.Name, typ: typ})
		end = max(end, f.Offset+size)
	}
	return rows
}

// byteOffset formats a bit offset as bytes, with the remaining bits after
// a colon when it is not byte aligned.
func byteOffset(bits int64) string {
	if bits%8 == 0 {
		return strconv.FormatInt(bits/8, 10)
	}
	return fmt.Sprintf("%d:%d", bits/8, bits%8)
}

// WriteDiagnostics renders diagnostics to w, one per line.
func WriteDiagnostics(w io.Writer, d diagnostic.Diagnostics, opts Options) error {
	for _, diag := range d.All() {
		label := diag.Severity.String()
		if opts.Color {
			label = severityStyles[diag.Severity].Render(label)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", label, diag); err != nil {
			return err
		}
	}
	return nil
}
