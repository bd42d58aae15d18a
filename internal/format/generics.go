package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/source"
)

// generics renders `<..>`, or "" when there are no parameters.
func (r *rewriter) generics(g *ast.Generics, shape Shape) string {
	if g.Empty() {
		return ""
	}
	spans := make([]source.Span, len(g.Params))
	for i := range g.Params {
		spans[i] = g.Params[i].Span
	}
	return r.list(listSpec{
		open: "<", close: ">",
		lo: g.Span.Start + 1, hi: g.Span.End - 1,
		spans:    spans,
		render:   func(i int, s Shape) string { return r.genericParam(&g.Params[i], s) },
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		visual:   true,
	}, shape)
}

func (r *rewriter) genericParam(p *ast.GenericParam, shape Shape) string {
	var sb strings.Builder
	sb.WriteString(r.inlineAttrs(p.Attrs))
	if p.Kind == ast.GenericConst {
		sb.WriteString("const ")
	}
	sb.WriteString(p.Name.Name)
	switch p.Kind {
	case ast.GenericConst:
		sb.WriteString(r.colon())
		sb.WriteString(r.typ(p.ConstType, r.shiftAfter(sb.String(), shape)))
		if p.ConstDefault.IsValid() {
			sb.WriteString(" = ")
			sb.WriteString(r.expr(p.ConstDefault, r.shiftAfter(sb.String(), shape)))
		}
	default:
		if len(p.Bounds) > 0 {
			sb.WriteString(r.colon())
			sb.WriteString(r.bounds(p.Bounds, r.shiftAfter(sb.String(), shape)))
		}
		if p.Default.IsValid() {
			sb.WriteString(r.punct("="))
			sb.WriteString(r.typ(p.Default, r.shiftAfter(sb.String(), shape)))
		}
	}
	return sb.String()
}

func (r *rewriter) wherePredicate(p *ast.WherePredicate, shape Shape) string {
	var head string
	if len(p.ForLifetimes) > 0 {
		head = "for<" + strings.Join(p.ForLifetimes, ", ") + "> "
	}
	if p.Lifetime != "" {
		head += p.Lifetime
	} else {
		head += r.typ(p.Bounded, shape.Shift(r.width(head)))
	}
	if len(p.Bounds) == 0 {
		return head + ":"
	}
	head += r.colon()
	return head + r.bounds(p.Bounds, r.shiftAfter(head, shape))
}

// whereClause renders the clause for an item whose header ends at shape.
// The result starts with a space (single line) or a line break (vertical);
// vertical reports the latter.
func (r *rewriter) whereClause(w *ast.WhereClause, shape Shape, braceAfter bool) (text string, vertical bool) {
	if w == nil || len(w.Predicates) == 0 {
		return "", false
	}
	predShape := r.block(shape)
	if r.comments.any(w.Span.Start, w.Span.End) {
		return r.newline(shape.Indent) + r.verbatim(w.Span), true
	}
	preds := make([]string, len(w.Predicates))
	for i := range w.Predicates {
		preds[i] = r.wherePredicate(&w.Predicates[i], predShape.Sub(1))
	}

	if r.cfg.WhereSingleLine() && len(preds) == 1 && !multiline(preds[0]) {
		one := " where " + preds[0]
		reserve := 0
		if braceAfter {
			reserve = 2
		}
		if r.width(one)+reserve <= shape.Width {
			return one, false
		}
	}

	var sb strings.Builder
	sb.WriteString(r.newline(shape.Indent) + "where")
	trailing := r.cfg.TrailingComma() != config.SeparatorNever
	for i, p := range preds {
		sb.WriteString(r.newline(predShape.Indent) + p)
		if i < len(preds)-1 || trailing {
			sb.WriteByte(',')
		}
	}
	return sb.String(), true
}
