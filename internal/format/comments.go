package format

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/tidwall/btree"

	"rfmt/internal/lexer"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

type comment struct {
	Kind  token.TriviaKind
	Span  source.Span
	Text  string
	Start uint32
	End   uint32
}

func (c *comment) line() bool {
	return c.Kind == token.TriviaLineComment || c.Kind == token.TriviaDocLine
}

// commentIndex хранит комментарии файла, упорядоченные по смещению начала.
type commentIndex struct {
	tree    btree.Map[uint32, *comment]
	content []byte
}

func newCommentIndex(trivia []token.Trivia, content []byte) *commentIndex {
	ci := &commentIndex{content: content}
	for _, tv := range trivia {
		if !tv.IsComment() {
			continue
		}
		ci.tree.Set(tv.Span.Start, &comment{
			Kind:  tv.Kind,
			Span:  tv.Span,
			Text:  tv.Text,
			Start: tv.Span.Start,
			End:   tv.Span.End,
		})
	}
	return ci
}

// between returns comments lying entirely in [lo, hi), in source order.
func (ci *commentIndex) between(lo, hi uint32) []*comment {
	if ci == nil || lo >= hi {
		return nil
	}
	var out []*comment
	iter := ci.tree.Iter()
	for ok := iter.Seek(lo); ok; ok = iter.Next() {
		c := iter.Value()
		if c.Start >= hi {
			break
		}
		if c.End <= hi {
			out = append(out, c)
		}
	}
	return out
}

func (ci *commentIndex) any(lo, hi uint32) bool {
	if ci == nil || lo >= hi {
		return false
	}
	iter := ci.tree.Iter()
	return iter.Seek(lo) && iter.Value().Start < hi
}

func (ci *commentIndex) at(pos uint32) (*comment, bool) {
	return ci.tree.Get(pos)
}

func (ci *commentIndex) all() []*comment {
	out := make([]*comment, 0, ci.tree.Len())
	ci.tree.Scan(func(_ uint32, c *comment) bool {
		out = append(out, c)
		return true
	})
	return out
}

// skipTrivia returns the offset of the first byte at or after pos that is
// neither whitespace nor part of a comment.
func (ci *commentIndex) skipTrivia(pos uint32) uint32 {
	n := uint32(len(ci.content))
	for pos < n {
		switch ci.content[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
			continue
		}
		c, ok := ci.at(pos)
		if !ok {
			return pos
		}
		pos = c.End
	}
	return n
}

// newlinesIn counts line breaks in content[lo:hi].
func (ci *commentIndex) newlinesIn(lo, hi uint32) int {
	if lo >= hi || int(hi) > len(ci.content) {
		return 0
	}
	return strings.Count(string(ci.content[lo:hi]), "\n")
}

// sameLine: между lo и hi нет перевода строки.
func (ci *commentIndex) sameLine(lo, hi uint32) bool {
	return ci.newlinesIn(lo, hi) == 0
}

// rewriteComment renders c without indentation; continuation lines carry
// only their relative indentation. standalone means a line break follows c.
func (r *rewriter) rewriteComment(c *comment, standalone bool, indent int) string {
	text := strings.TrimRight(c.Text, " \t")
	if c.line() {
		if r.cfg.WrapComments() {
			return r.wrapLineComment(text, indent)
		}
		return text
	}
	inner, isPlain := strings.CutPrefix(text, "/*")
	isPlain = isPlain && !strings.HasPrefix(inner, "*") && !strings.HasPrefix(inner, "!")
	if isPlain && standalone && r.cfg.NormalizeComments() && !strings.Contains(text, "\n") {
		body := strings.TrimSpace(strings.TrimSuffix(inner, "*/"))
		if !strings.Contains(body, "*/") && !strings.Contains(body, "/*") {
			line := "//"
			if body != "" {
				line += " " + body
			}
			if r.cfg.WrapComments() {
				return r.wrapLineComment(line, indent)
			}
			return line
		}
	}
	return reflowBlockComment(text)
}

// reflowBlockComment выравнивает строки `*` на один пробел, остальные
// продолжения получают один пробел вместо общего отступа.
func reflowBlockComment(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return text
	}
	common := -1
	for _, l := range lines[1:] {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if n := len(l) - len(trimmed); common < 0 || n < common {
			common = n
		}
	}
	for i := 1; i < len(lines); i++ {
		l := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimLeft(l, " \t")
		switch {
		case trimmed == "":
			lines[i] = ""
		case strings.HasPrefix(trimmed, "*"):
			lines[i] = " " + trimmed
		default:
			lines[i] = " " + l[min(common, len(l)-len(trimmed)):]
		}
	}
	return strings.Join(lines, "\n")
}

// wrapLineComment переносит прозу `//`-комментария по границам слов.
func (r *rewriter) wrapLineComment(text string, indent int) string {
	prefix := "// "
	for _, p := range []string{"/// ", "//! ", "// "} {
		if strings.HasPrefix(text, p) {
			prefix = p
			break
		}
	}
	body, ok := strings.CutPrefix(text, prefix)
	if !ok {
		return text
	}
	width := min(r.cfg.IdealWidth(), r.maxWidth-indent) - r.width(prefix)
	if width <= 0 || r.width(body) <= width {
		return text
	}
	var lines []string
	for _, l := range wrapText(body, width) {
		lines = append(lines, strings.TrimRight(prefix+l, " "))
	}
	return strings.Join(lines, "\n")
}

// wrapText splits s at line-break opportunities so that every line is at
// most width columns, unless a single word is wider.
func wrapText(s string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
		state = -1
	)
	for s != "" {
		var seg string
		seg, s, _, state = uniseg.FirstLineSegmentInString(s, state)
		w := uniseg.StringWidth(strings.TrimRight(seg, " "))
		if curW > 0 && curW+w > width {
			lines = append(lines, strings.TrimRight(cur.String(), " "))
			cur.Reset()
			curW = 0
		}
		cur.WriteString(seg)
		curW += uniseg.StringWidth(seg)
	}
	if cur.Len() > 0 {
		lines = append(lines, strings.TrimRight(cur.String(), " "))
	}
	return lines
}

// commentWords strips comment markers and returns the prose words.
func commentWords(text string) []string {
	var words []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, p := range []string{"///", "//!", "//", "/**", "/*!", "/*"} {
			if rest, ok := strings.CutPrefix(line, p); ok {
				line = rest
				break
			}
		}
		line = strings.TrimSuffix(strings.TrimSpace(line), "*/")
		line = strings.TrimPrefix(strings.TrimSpace(line), "*")
		words = append(words, strings.Fields(line)...)
	}
	return words
}

// sameComments reports whether out carries the same comment prose as the
// comments of the original span, in the same order.
func (r *rewriter) sameComments(span source.Span, out string) bool {
	want := r.comments.between(span.Start, span.End)
	var wantWords []string
	for _, c := range want {
		wantWords = append(wantWords, commentWords(c.Text)...)
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("check", []byte(out)))
	var gotWords []string
	gotCount := 0
	for _, tok := range lexer.New(f, lexer.Options{}).All() {
		for _, tv := range tok.Comments() {
			gotCount++
			gotWords = append(gotWords, commentWords(tv.Text)...)
		}
	}
	if len(want) == 0 {
		return gotCount == 0
	}
	return slices.Equal(wantWords, gotWords)
}

// todoNumbered: за маркером идёт номер задачи: TODO(#12) или FIXME(12).
func todoNumbered(rest string) bool {
	inner, ok := strings.CutPrefix(rest, "(")
	if !ok {
		return false
	}
	inner = strings.TrimPrefix(inner, "#")
	n := 0
	for n < len(inner) && inner[n] >= '0' && inner[n] <= '9' {
		n++
	}
	return n > 0 && n < len(inner) && inner[n] == ')'
}
