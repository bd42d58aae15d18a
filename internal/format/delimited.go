package format

import (
	"strings"

	"rfmt/internal/config"
	"rfmt/internal/source"
)

// listSpec описывает список в скобках: (a, b), [a, b], {a, b}, <A, B>.
type listSpec struct {
	open, close string
	// lo, hi: содержимое между скобками в исходнике.
	lo, hi uint32
	spans  []source.Span
	render func(i int, shape Shape) string
	// extra: хвост без исходных позиций (`..`, `...`, `..base`).
	extra    string
	tactic   ListTactic
	trailing SeparatorTactic
	// suffix: сколько колонок нужно вызывающему после закрывающей скобки.
	suffix int
	// limit ограничивает ширину горизонтальной раскладки (fn_call_width и т.п.).
	limit int
	// padded: `{ a, b }` вместо `{a, b}` в горизонтальной раскладке.
	padded bool
	visual bool
	// overflowLast: последний элемент может начаться на строке скобки и продолжиться ниже.
	overflowLast  bool
	preserveBlank bool
}

func (r *rewriter) itemize(lo, hi uint32, spans []source.Span) ([]ListItem, []string) {
	items := make([]ListItem, len(spans))
	pos := lo
	for i, sp := range spans {
		boundary := pos
		first := true
		for _, c := range r.comments.between(pos, sp.Start) {
			text := r.rewriteComment(c, true, 0)
			if i > 0 && r.comments.sameLine(boundary, c.Start) && len(items[i].PreComment) == 0 {
				items[i-1].PostComment = joinComment(items[i-1].PostComment, text)
				boundary = c.End
			} else {
				if first {
					items[i].BlankBefore = r.comments.newlinesIn(boundary, c.Start) > 1
					first = false
				}
				items[i].PreComment = append(items[i].PreComment, text)
			}
			pos = c.End
		}
		if first {
			items[i].BlankBefore = r.comments.newlinesIn(pos, sp.Start) > 1
		}
		items[i].NewlineBefore = r.comments.newlinesIn(pos, sp.Start) > 0
		pos = max(pos, sp.End)
	}

	var tail []string
	boundary := pos
	for _, c := range r.comments.between(pos, hi) {
		text := r.rewriteComment(c, true, 0)
		if len(items) > 0 && len(tail) == 0 && r.comments.sameLine(boundary, c.Start) {
			items[len(items)-1].PostComment = joinComment(items[len(items)-1].PostComment, text)
			boundary = c.End
			continue
		}
		tail = append(tail, text)
	}
	return items, tail
}

func joinComment(prev, next string) string {
	if prev == "" {
		return next
	}
	return prev + " " + next
}

// list renders a delimited list starting at shape.
func (r *rewriter) list(ls listSpec, shape Shape) string {
	items, tail := r.itemize(ls.lo, ls.hi, ls.spans)
	if len(items) == 0 && ls.extra == "" {
		return r.emptyList(ls, tail, shape)
	}

	visual := ls.visual && r.cfg.IndentStyle() == config.IndentVisual && len(tail) == 0
	var itemShape Shape
	if visual {
		col := shape.Used() + len(ls.open)
		itemShape = Shape{Indent: col, Width: r.maxWidth - col - 1}
	} else {
		itemShape = r.block(shape).Sub(1)
	}
	for i := range items {
		items[i].Item = ls.render(i, itemShape)
	}
	if ls.extra != "" {
		items = append(items, ListItem{Item: ls.extra, NoSeparator: true})
	}

	budget := shape.Width - len(ls.open) - len(ls.close) - ls.suffix
	if ls.padded {
		budget -= 2
	}
	if ls.limit > 0 {
		budget = min(budget, ls.limit)
	}
	tactic := ls.tactic
	if r.cfg.TakeSourceHints() && sourceHintsVertical(items) {
		tactic = TacticVertical
	}
	def := definitiveTactic(items, tactic, 2, budget, r.tab)
	if len(tail) > 0 && def == TacticHorizontal {
		def = TacticVertical
	}

	if def == TacticHorizontal {
		f := &ListFormatting{Tactic: TacticHorizontal, Separator: ",", Trailing: ls.trailing, TabSpaces: r.tab}
		body := WriteList(items, f)
		if ls.padded && body != "" {
			body = " " + body + " "
		}
		return ls.open + body + ls.close
	}

	if ls.overflowLast && tactic != TacticVertical {
		if out, ok := r.overflowLast(ls, items, shape); ok {
			return out
		}
	}

	f := &ListFormatting{
		Tactic:             def,
		Separator:          ",",
		Trailing:           ls.trailing,
		Indent:             r.indent(itemShape.Indent),
		Width:              r.maxWidth - itemShape.Indent,
		PreserveBlankLines: ls.preserveBlank,
		TabSpaces:          r.tab,
	}
	if visual {
		return ls.open + WriteList(items, f) + ls.close
	}
	f.EndsWithNewline = true
	var sb strings.Builder
	sb.WriteString(ls.open)
	sb.WriteString(r.newline(itemShape.Indent))
	sb.WriteString(WriteList(items, f))
	for _, c := range tail {
		sb.WriteString(r.newline(itemShape.Indent))
		sb.WriteString(reindentTail(c, r.indent(itemShape.Indent)))
	}
	sb.WriteString(r.newline(shape.Indent))
	sb.WriteString(ls.close)
	return sb.String()
}

func (r *rewriter) emptyList(ls listSpec, tail []string, shape Shape) string {
	if len(tail) == 0 {
		return ls.open + ls.close
	}
	inline := true
	for _, c := range tail {
		if strings.HasPrefix(c, "//") || strings.Contains(c, "\n") {
			inline = false
		}
	}
	if inline {
		return ls.open + strings.Join(tail, " ") + ls.close
	}
	inner := shape.Indent + r.tab
	var sb strings.Builder
	sb.WriteString(ls.open)
	for _, c := range tail {
		sb.WriteString(r.newline(inner) + reindentTail(c, r.indent(inner)))
	}
	sb.WriteString(r.newline(shape.Indent) + ls.close)
	return sb.String()
}

// overflowLast tries `f(a, b, |x| {` with the last element continuing at
// the list's own indentation.
func (r *rewriter) overflowLast(ls listSpec, items []ListItem, shape Shape) (string, bool) {
	n := len(ls.spans)
	if n == 0 || ls.extra != "" {
		return "", false
	}
	for _, it := range items {
		if it.hasComment() {
			return "", false
		}
	}
	var head strings.Builder
	head.WriteString(ls.open)
	for _, it := range items[:n-1] {
		if multiline(it.Item) {
			return "", false
		}
		head.WriteString(it.Item + ", ")
	}
	prefix := head.String()
	lastShape := Shape{Indent: shape.Indent, Offset: shape.Offset + r.width(prefix), Width: shape.Width - r.width(prefix)}
	last := ls.render(n-1, lastShape.Sub(len(ls.close)+ls.suffix))
	if !multiline(last) {
		return "", false
	}
	out := prefix + last + ls.close
	if !r.fits(out, shape) || r.lastLineWidth(out, shape)+ls.suffix > r.maxWidth {
		return "", false
	}
	return out, true
}
