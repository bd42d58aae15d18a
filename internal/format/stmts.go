package format

import (
	"rfmt/internal/ast"
	"rfmt/internal/source"
)

// blockText renders `{ .. }` with statements one level deeper than indent
// and the closing brace at indent.
func (r *rewriter) blockText(b *ast.Block, indent int) string {
	if b == nil {
		return r.malformed(source.Span{}, "block")
	}
	lo, hi := b.Span.Start+1, b.Span.End-1
	if len(b.Stmts) == 0 && len(b.InnerAttrs) == 0 && !r.comments.any(lo, hi) {
		return "{}"
	}
	inner := indent + r.tab
	elems := make([]seqElem, 0, len(b.InnerAttrs)+len(b.Stmts))
	for _, a := range b.InnerAttrs {
		elems = append(elems, seqElem{span: a.Span, text: r.attr(a)})
	}
	for _, id := range b.Stmts {
		elems = append(elems, r.stmtElem(id, inner))
	}
	return "{" + r.joinSeq(lo, hi, elems, inner) + r.newline(indent) + "}"
}

func (r *rewriter) stmtElem(id ast.StmtID, indent int) seqElem {
	st := r.b.Stmts.Get(id)
	if st == nil {
		return seqElem{text: r.malformed(source.Span{}, "statement")}
	}
	if st.Kind == ast.StmtItem {
		return r.itemElem(st.Item, indent)
	}
	return seqElem{span: st.Span, text: r.guarded(st.Span, r.stmt(st, indent))}
}

func (r *rewriter) stmt(st *ast.Stmt, indent int) string {
	shape := r.lineShape(indent)
	attrs := r.outerAttrs(st.Attrs, indent)
	switch st.Kind {
	case ast.StmtEmpty:
		return ";"
	case ast.StmtLet:
		return attrs + r.letStmt(st, shape)
	case ast.StmtExpr:
		if st.Semi {
			return attrs + r.expr(st.Expr, shape.Sub(1)) + ";"
		}
		return attrs + r.expr(st.Expr, shape)
	}
	return r.malformed(st.Span, "statement")
}

func (r *rewriter) letStmt(st *ast.Stmt, shape Shape) string {
	head := "let " + r.pat(st.Pat, shape.Shift(4))
	if st.Type.IsValid() {
		head += r.colon()
		head += r.typ(st.Type, r.shiftAfter(head, shape))
	}
	if !st.Init.IsValid() {
		return head + ";"
	}
	if st.Else == nil {
		return r.assignRHS(head+" =", st.Init, shape.Sub(1)) + ";"
	}
	text := r.assignRHS(head+" =", st.Init, shape.Sub(len(" else {")))
	return text + " else " + r.blockText(st.Else, shape.Indent) + ";"
}
