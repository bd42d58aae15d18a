package format

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/parser"
	"rfmt/internal/session"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// macroParse: результат попытки разобрать тело макроса как аргументы.
type macroParse struct {
	args parser.MacroArgs
	ok   bool
	// diags: ошибки разбора тела, собираются только при error_on_unformatted.
	diags    []diag.Diagnostic
	replayed bool
}

// macroArgs parses the body once per call site. The parse runs against a
// silent session so that a body which is not an expression list reports nothing.
// With error_on_unformatted the errors are kept for replayMacroErrors.
func (r *rewriter) macroArgs(m *ast.MacroCall) macroParse {
	if p, ok := r.macros[m]; ok {
		return p
	}
	var rep diag.Reporter
	var kept *diag.Bag
	switch {
	case r.sess != nil && r.cfg.ErrorOnUnformatted():
		kept = diag.NewBag(0)
		rep = diag.BagReporter{Bag: kept}
	case r.sess != nil:
		rep = r.sess.Speculative()
	default:
		rep = session.New(nil, nil, session.Silence, nil)
	}
	args, ok := parser.ParseMacroArgs(m, r.b, parser.Options{Reporter: rep, MaxErrors: 1})
	p := macroParse{args: args, ok: ok}
	if kept != nil && !ok {
		p.diags = kept.Items()
	}
	r.macros[m] = p
	return p
}

// replayMacroErrors passes the body's parse errors to the session once per call site.
func (r *rewriter) replayMacroErrors(m *ast.MacroCall, p macroParse) {
	if r.sess == nil || p.replayed || len(p.diags) == 0 {
		return
	}
	r.sess.EmitDiagnostics(p.diags)
	p.replayed = true
	r.macros[m] = p
}

func (r *rewriter) macroCall(m *ast.MacroCall, shape Shape) string {
	if m == nil {
		return r.malformed(source.Span{}, "macro call")
	}
	if m.Ident.Name != "" || m.Delim == token.LBrace {
		return r.verbatim(m.Span)
	}
	name := r.path(&m.Path, shape, true) + "!"
	open, close := "(", ")"
	if m.Delim == token.LBracket {
		open, close = "[", "]"
	}
	if len(m.Body) == 0 && !r.comments.any(m.BodySpan.Start, m.BodySpan.End) {
		return name + open + close
	}

	p := r.macroArgs(m)
	if !p.ok {
		r.unformattable(m.Span, diag.FmtUnformattable, "macro arguments are not an expression list; left as written")
		r.replayMacroErrors(m, p)
		return r.verbatim(m.Span)
	}
	exprs := p.args.Exprs
	after := r.shiftAfter(name, shape)
	if p.args.Repeat {
		elem := r.expr(exprs[0], after.Shift(1))
		n := r.expr(exprs[1], r.shiftAfter(name+open+elem+"; ", shape))
		return name + open + elem + "; " + n + close
	}

	ls := listSpec{
		open: open, close: close,
		lo: m.BodySpan.Start, hi: m.BodySpan.End,
		spans:    r.exprSpans(exprs),
		render:   func(i int, s Shape) string { return r.expr(exprs[i], s) },
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		visual:   true,
	}
	if m.Delim == token.LBracket {
		mixed := len(exprs) > 1
		for _, x := range exprs {
			mixed = mixed && r.simpleElem(x)
		}
		if mixed {
			ls.tactic = TacticMixed
		}
	} else {
		ls.limit = r.cfg.FnCallWidth()
	}
	if len(exprs) > 0 {
		ls.overflowLast = r.overflowable(exprs[len(exprs)-1], len(exprs))
	}
	return name + r.list(ls, after)
}
