package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
)

// flattenChain unwinds a.b().c?.await into its root and the postfix links,
// outermost last.
func (r *rewriter) flattenChain(id ast.ExprID) (ast.ExprID, []ast.ExprID) {
	var links []ast.ExprID
	for {
		e := r.b.Exprs.Get(id)
		if e == nil {
			break
		}
		var next ast.ExprID
		switch e.Kind {
		case ast.ExprMethodCall:
			d, _ := r.b.Exprs.MethodCall(id)
			next = d.Recv
		case ast.ExprField:
			d, _ := r.b.Exprs.Field(id)
			next = d.X
		case ast.ExprTry, ast.ExprAwait:
			d, _ := r.b.Exprs.Wrap(id)
			next = d.X
		}
		if !next.IsValid() {
			break
		}
		links = append(links, id)
		id = next
	}
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return id, links
}

func (r *rewriter) isTry(id ast.ExprID) bool {
	e := r.b.Exprs.Get(id)
	return e != nil && e.Kind == ast.ExprTry
}

// chainLink renders one postfix link starting at shape.
func (r *rewriter) chainLink(id ast.ExprID, shape Shape) string {
	e := r.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprTry:
		return "?"
	case ast.ExprAwait:
		return ".await"
	case ast.ExprField:
		d, _ := r.b.Exprs.Field(id)
		return "." + d.Name.Name
	case ast.ExprMethodCall:
		d, _ := r.b.Exprs.MethodCall(id)
		head := "." + d.Name.Name
		if d.Generics != nil {
			head += r.genericArgs(d.Generics, shape.Shift(r.width(head)), true)
		}
		return head + r.args(d.Args, d.ArgsSpan, r.shiftAfter(head, shape))
	}
	return r.malformed(e.Span, "chain link")
}

// appendLinks renders links one after another on the current line.
func (r *rewriter) appendLinks(sb *strings.Builder, links []ast.ExprID, shape Shape) {
	for _, l := range links {
		sb.WriteString(r.chainLink(l, r.shiftAfter(sb.String(), shape)))
	}
}

func (r *rewriter) chain(id ast.ExprID, shape Shape) string {
	root, links := r.flattenChain(id)
	rootText := r.expr(root, shape)

	var sb strings.Builder
	sb.WriteString(rootText)
	r.appendLinks(&sb, links, shape)
	one := sb.String()
	if r.fitsLine(one, shape) {
		return one
	}

	dots := 0
	lastCall := -1
	for i, l := range links {
		if !r.isTry(l) {
			dots++
			lastCall = i
		}
	}
	if dots < 2 || multiline(rootText) {
		return one
	}

	// всё, кроме последнего вызова, на одной строке; последний переносит свои аргументы
	if r.cfg.ChainsOverflowLast() {
		sb.Reset()
		sb.WriteString(rootText)
		r.appendLinks(&sb, links[:lastCall], shape)
		if prefix := sb.String(); r.fitsLine(prefix, shape) {
			r.appendLinks(&sb, links[lastCall:], shape)
			if out := sb.String(); r.fits(out, shape) {
				return out
			}
		}
	}

	indent := shape.Indent + r.tab
	start := 0
	if r.cfg.IndentStyle() == config.IndentVisual {
		indent = shape.Used() + r.width(rootText)
	} else if r.width(rootText) <= r.tab {
		// короткий корень (self, x) остаётся вместе с первым звеном
		start = 1
		for start < len(links) && r.isTry(links[start]) {
			start++
		}
	}
	sb.Reset()
	sb.WriteString(rootText)
	r.appendLinks(&sb, links[:start], shape)
	for _, l := range links[start:] {
		if r.isTry(l) {
			sb.WriteString("?")
			continue
		}
		sb.WriteString(r.newline(indent))
		line := r.lineShape(indent)
		sb.WriteString(r.chainLink(l, line))
	}
	return sb.String()
}
