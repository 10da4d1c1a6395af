package debug

import (
	"fmt"
	"strings"
)

const indentUnit = "\t"

// Indent returns prefix for the requested nesting depth.
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, depth)
}

// TreeWriter accumulates depth indented lines. Zero value is not usable, use
// NewTreeWriter.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Bytes() []byte {
	return []byte(tw.String())
}

// Line writes formatted text at depth followed by new line.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(Indent(depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func separator(comma bool) string {
	if comma {
		return ","
	}
	return ""
}

// Open writes opening bracket, optionally prefixed by quoted key.
func (tw TreeWriter) Open(depth int, key string, bracket byte) {
	if key == "" {
		tw.Line(depth, "%c", bracket)
		return
	}
	tw.Line(depth, "%s: %c", Quote(key), bracket)
}

// Close writes closing bracket and separating comma when requested.
func (tw TreeWriter) Close(depth int, bracket byte, comma bool) {
	tw.Line(depth, "%c%s", bracket, separator(comma))
}

// Empty writes key with empty array value.
func (tw TreeWriter) Empty(depth int, key string, comma bool) {
	tw.Line(depth, "%s: []%s", Quote(key), separator(comma))
}

// Field writes single "key": value line. Strings are quoted, everything else
// is written with %v.
func (tw TreeWriter) Field(depth int, key string, value any, comma bool) {
	if s, ok := value.(string); ok {
		value = Quote(s)
	}
	tw.Line(depth, "%s: %v%s", Quote(key), value, separator(comma))
}

// Value writes quoted string array element.
func (tw TreeWriter) Value(depth int, value string, comma bool) {
	tw.Line(depth, "%s%s", Quote(value), separator(comma))
}

// Quote produces JSON string literal. HTML characters are left alone.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
