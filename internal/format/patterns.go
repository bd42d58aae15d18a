package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/source"
)

func (r *rewriter) pat(id ast.PatID, shape Shape) string {
	p := r.b.Pats.Get(id)
	if p == nil {
		return r.malformed(source.Span{}, "pattern")
	}
	switch p.Kind {
	case ast.PatWild:
		return "_"
	case ast.PatRest:
		return ".."
	case ast.PatIdent:
		var sb strings.Builder
		if p.ByRef {
			sb.WriteString("ref ")
		}
		if p.Mut {
			sb.WriteString("mut ")
		}
		sb.WriteString(p.Name.Name)
		if p.Sub.IsValid() {
			sb.WriteString(" @ ")
			sb.WriteString(r.pat(p.Sub, r.shiftAfter(sb.String(), shape)))
		}
		return sb.String()
	case ast.PatLit:
		return r.expr(p.Lo, shape)
	case ast.PatRange:
		var sb strings.Builder
		if p.Lo.IsValid() {
			sb.WriteString(r.expr(p.Lo, shape))
		}
		sb.WriteString(p.RangeOp)
		if p.Hi.IsValid() {
			sb.WriteString(r.expr(p.Hi, r.shiftAfter(sb.String(), shape)))
		}
		return sb.String()
	case ast.PatTuple:
		return r.patList("(", ")", p.Span, p.Elems, shape, len(p.Elems) == 1)
	case ast.PatSlice:
		return r.patList("[", "]", p.Span, p.Elems, shape, false)
	case ast.PatPath:
		return r.path(&p.Path, shape, true)
	case ast.PatTupleStruct:
		head := r.path(&p.Path, shape, true)
		inner := source.Span{File: p.Span.File, Start: p.Path.Span.End, End: p.Span.End}
		return head + r.patList("(", ")", inner, p.Elems, r.shiftAfter(head, shape), false)
	case ast.PatStruct:
		return r.structPat(p, shape)
	case ast.PatRef:
		prefix := "&"
		if p.Mut {
			prefix = "&mut "
		}
		return prefix + r.pat(p.Elem, shape.Shift(len(prefix)))
	case ast.PatOr:
		return r.orPat(p.Elems, shape)
	case ast.PatParen:
		return "(" + r.pat(p.Elem, shape.Shift(1).Sub(1)) + ")"
	case ast.PatMacro:
		return r.macroCall(p.Macro, shape)
	}
	return r.malformed(p.Span, "pattern")
}

func (r *rewriter) patSpans(ids []ast.PatID) []source.Span {
	spans := make([]source.Span, len(ids))
	for i, id := range ids {
		spans[i] = r.b.PatSpan(id)
	}
	return spans
}

// patList: (a, b) и [a, b]; span покрывает скобки. Одиночный кортеж
// сохраняет запятую.
func (r *rewriter) patList(open, close string, span source.Span, elems []ast.PatID, shape Shape, single bool) string {
	trailing := r.cfg.TrailingComma()
	if single {
		trailing = config.SeparatorAlways
	}
	return r.list(listSpec{
		open: open, close: close,
		lo: span.Start + 1, hi: span.End - 1,
		spans:    r.patSpans(elems),
		render:   func(i int, s Shape) string { return r.pat(elems[i], s) },
		tactic:   TacticHorizontalVertical,
		trailing: trailing,
		visual:   true,
	}, shape)
}

func (r *rewriter) structPat(p *ast.Pat, shape Shape) string {
	head := r.path(&p.Path, shape, true) + " "
	spans := make([]source.Span, len(p.Fields))
	for i := range p.Fields {
		spans[i] = p.Fields[i].Span
	}
	ls := listSpec{
		open: "{", close: "}",
		lo:     p.Path.Span.End,
		hi:     p.Span.End - 1,
		spans:  spans,
		padded: true,
		render: func(i int, s Shape) string {
			f := &p.Fields[i]
			attrs := r.inlineAttrs(f.Attrs)
			if f.Shorthand {
				return attrs + r.pat(f.Pat, s.Shift(r.width(attrs)))
			}
			prefix := attrs + f.Name.Name + r.colon()
			return prefix + r.pat(f.Pat, s.Shift(r.width(prefix)))
		},
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
	}
	if p.HasRest {
		ls.extra = ".."
	}
	return head + r.list(ls, shape.Shift(r.width(head)))
}

// orPat keeps alternatives on one line while they fit, otherwise one per
// line with a leading `|`.
func (r *rewriter) orPat(elems []ast.PatID, shape Shape) string {
	parts := make([]string, len(elems))
	for i, id := range elems {
		parts[i] = r.pat(id, shape)
	}
	one := strings.Join(parts, " | ")
	if r.fitsLine(one, shape) {
		return one
	}
	var sb strings.Builder
	for i, id := range elems {
		if i > 0 {
			sb.WriteString(r.newline(shape.Indent) + "| ")
			sb.WriteString(r.pat(id, r.lineShape(shape.Indent).Shift(2)))
			continue
		}
		sb.WriteString(parts[0])
	}
	return sb.String()
}
