package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Shape: прямоугольник, в который должен лечь результат.
// Первая строка начинается в колонке Indent+Offset и имеет Width колонок;
// последующие строки начинаются не левее Indent.
type Shape struct {
	Indent int
	Offset int
	Width  int
}

// Used returns the column the first line starts at.
func (s Shape) Used() int { return s.Indent + s.Offset }

// Shift moves the start of the first line n columns to the right.
func (s Shape) Shift(n int) Shape {
	s.Offset += n
	s.Width -= n
	return s
}

// Sub reserves n columns at the end of the first line.
func (s Shape) Sub(n int) Shape {
	s.Width -= n
	return s
}

// Visual returns a shape whose continuation lines align with the current column.
func (s Shape) Visual() Shape {
	return Shape{Indent: s.Used(), Width: s.Width}
}

func (r *rewriter) lineShape(indent int) Shape {
	return Shape{Indent: indent, Width: r.maxWidth - indent}
}

// block: отступ на один уровень глубже Indent, с начала новой строки.
func (r *rewriter) block(s Shape) Shape {
	return r.lineShape(s.Indent + r.tab)
}

func (r *rewriter) indent(cols int) string {
	if cols <= 0 {
		return ""
	}
	if r.hardTabs {
		return strings.Repeat("\t", cols/r.tab) + strings.Repeat(" ", cols%r.tab)
	}
	return strings.Repeat(" ", cols)
}

func (r *rewriter) newline(cols int) string {
	return "\n" + r.indent(cols)
}

// textWidth measures display width; a tab counts as tab_spaces columns.
func textWidth(s string, tab int) int {
	if !strings.ContainsRune(s, '\t') {
		return runewidth.StringWidth(s)
	}
	w := 0
	for i, part := range strings.Split(s, "\t") {
		if i > 0 {
			w += tab
		}
		w += runewidth.StringWidth(part)
	}
	return w
}

func (r *rewriter) width(s string) int {
	return textWidth(s, r.tab)
}

func firstLine(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return first
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func multiline(s string) bool {
	return strings.Contains(s, "\n")
}

// fits reports whether s stays inside shape: the first line within Width and
// every other line within max_width.
func (r *rewriter) fits(s string, shape Shape) bool {
	first, rest, more := strings.Cut(s, "\n")
	if r.width(first) > shape.Width {
		return false
	}
	for more {
		var line string
		line, rest, more = strings.Cut(rest, "\n")
		if r.width(line) > r.maxWidth {
			return false
		}
	}
	return true
}

// fitsLine: s однострочная и влезает в shape.
func (r *rewriter) fitsLine(s string, shape Shape) bool {
	return !multiline(s) && r.width(s) <= shape.Width
}

// lastLineWidth returns the column right after s when s starts at shape.
func (r *rewriter) lastLineWidth(s string, shape Shape) int {
	if !multiline(s) {
		return shape.Used() + r.width(s)
	}
	return r.width(lastLine(s))
}
