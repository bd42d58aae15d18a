package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
)

// controlBrace returns what goes between a control header and its `{`.
// A header that broke over several lines always puts `{` on its own line.
func (r *rewriter) controlBrace(header string, indent int) string {
	if multiline(header) || r.cfg.ControlBraceStyle() == config.ControlAlwaysNextLine {
		return r.newline(indent)
	}
	return " "
}

func (r *rewriter) ifExpr(id ast.ExprID, shape Shape) string {
	if r.cfg.SingleLineIfElse() {
		if one, ok := r.singleLineIf(id, shape); ok {
			return one
		}
	}
	style := r.cfg.ElseIfBraceStyle()
	var sb strings.Builder
	cur := id
	for {
		d, _ := r.b.Exprs.If(cur)
		head := "if " + r.expr(d.Cond, r.shiftAfter(sb.String()+"if ", shape).Sub(2))
		sb.WriteString(head)
		if sb.Len() > len(head) && style == config.ElseIfAlwaysNextLine {
			sb.WriteString(r.newline(shape.Indent))
		} else {
			sb.WriteString(r.controlBrace(head, shape.Indent))
		}
		sb.WriteString(r.blockText(d.Then, shape.Indent))
		if !d.Else.IsValid() {
			break
		}
		switch style {
		case config.ElseIfAlwaysSameLine:
			sb.WriteString(" else ")
		default:
			sb.WriteString(r.newline(shape.Indent) + "else ")
		}
		els := r.b.Exprs.Get(d.Else)
		if els != nil && els.Kind == ast.ExprIf {
			cur = d.Else
			continue
		}
		blk, ok := r.b.Exprs.Block(d.Else)
		if !ok {
			sb.WriteString(r.expr(d.Else, r.shiftAfter(sb.String(), shape)))
			break
		}
		if style == config.ElseIfAlwaysNextLine {
			text := strings.TrimSuffix(sb.String(), " ")
			sb.Reset()
			sb.WriteString(text + r.newline(shape.Indent))
		}
		sb.WriteString(r.blockPrefix(blk) + r.blockText(blk.Block, shape.Indent))
		break
	}
	return sb.String()
}

// singleExpr returns the only expression of a block `{ x }`.
func (r *rewriter) singleExpr(b *ast.Block) (ast.ExprID, bool) {
	if b == nil || len(b.Stmts) != 1 || len(b.InnerAttrs) > 0 {
		return ast.NoExprID, false
	}
	st := r.b.Stmts.Get(b.Stmts[0])
	if st == nil || st.Kind != ast.StmtExpr || st.Semi || len(st.Attrs) > 0 {
		return ast.NoExprID, false
	}
	return st.Expr, true
}

// singleLineIf renders `if c { a } else { b }` when both branches are a
// single expression and the whole thing fits.
func (r *rewriter) singleLineIf(id ast.ExprID, shape Shape) (string, bool) {
	e := r.b.Exprs.Get(id)
	d, _ := r.b.Exprs.If(id)
	if !d.Else.IsValid() || r.comments.any(e.Span.Start, e.Span.End) {
		return "", false
	}
	els, ok := r.b.Exprs.Block(d.Else)
	if !ok || els.Label != "" || els.Unsafe || els.Async {
		return "", false
	}
	thenX, ok1 := r.singleExpr(d.Then)
	elseX, ok2 := r.singleExpr(els.Block)
	if !ok1 || !ok2 {
		return "", false
	}
	cond := r.expr(d.Cond, shape.Shift(3))
	a := r.expr(thenX, shape)
	b := r.expr(elseX, shape)
	one := "if " + cond + " { " + a + " } else { " + b + " }"
	if !r.fitsLine(one, shape) {
		return "", false
	}
	return one, true
}

func (r *rewriter) loop(e *ast.Expr, id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Loop(id)
	var head string
	if d.Label != "" {
		head = d.Label + ": "
	}
	switch e.Kind {
	case ast.ExprLoop:
		return head + "loop " + r.blockText(d.Body, shape.Indent)
	case ast.ExprWhile:
		head += "while "
		head += r.expr(d.Cond, r.shiftAfter(head, shape).Sub(2))
	case ast.ExprFor:
		head += "for "
		head += r.pat(d.Pat, r.shiftAfter(head, shape)) + " in "
		head += r.expr(d.Iter, r.shiftAfter(head, shape).Sub(2))
	}
	return head + r.controlBrace(head, shape.Indent) + r.blockText(d.Body, shape.Indent)
}

func (r *rewriter) match(id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Match(id)
	head := "match " + r.expr(d.Scrutinee, shape.Shift(6).Sub(2))
	head += r.controlBrace(head, shape.Indent)
	lo, hi := d.BodySpan.Start+1, d.BodySpan.End-1
	if len(d.Arms) == 0 && len(d.InnerAttrs) == 0 && !r.comments.any(lo, hi) {
		return head + "{}"
	}

	indent := shape.Indent + r.tab
	elems := make([]seqElem, 0, len(d.InnerAttrs)+len(d.Arms))
	for _, a := range d.InnerAttrs {
		elems = append(elems, seqElem{span: a.Span, text: r.attr(a)})
	}
	for i := range d.Arms {
		arm := &d.Arms[i]
		elems = append(elems, seqElem{span: arm.Span, text: r.arm(arm, indent, i == len(d.Arms)-1)})
	}
	return head + "{" + r.joinSeq(lo, hi, elems, indent) + r.newline(shape.Indent) + "}"
}

func (r *rewriter) arm(a *ast.MatchArm, indent int, last bool) string {
	shape := r.lineShape(indent)
	attrs := r.outerAttrs(a.Attrs, indent)
	head := r.pat(a.Pat, shape)
	if a.Guard.IsValid() {
		head += " if "
		head += r.expr(a.Guard, r.shiftAfter(head, shape))
	}
	head += " =>"

	blockComma := ""
	if r.cfg.MatchBlockTrailingComma() {
		blockComma = ","
	}
	if r.blockLike(a.Body) {
		return attrs + head + " " + r.expr(a.Body, r.shiftAfter(head+" ", shape)) + blockComma
	}

	comma := ","
	if last && r.isWildcard(a.Pat) && !r.cfg.MatchWildcardTrailingComma() {
		comma = ""
	}
	after := r.shiftAfter(head+" ", shape).Sub(len(comma))
	body := r.expr(a.Body, after)
	if r.fits(body, after) {
		return attrs + head + " " + body + comma
	}
	inner := r.lineShape(indent + r.tab)
	if r.cfg.WrapMatchArms() {
		body = r.expr(a.Body, inner)
		return attrs + head + " {" + r.newline(inner.Indent) + body + r.newline(indent) + "}" + blockComma
	}
	body = r.expr(a.Body, inner.Sub(len(comma)))
	return attrs + head + r.newline(inner.Indent) + body + comma
}

func (r *rewriter) isWildcard(id ast.PatID) bool {
	p := r.b.Pats.Get(id)
	return p != nil && p.Kind == ast.PatWild
}
