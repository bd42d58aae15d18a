package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/source"
)

func (r *rewriter) typ(id ast.TypeID, shape Shape) string {
	t := r.b.Types.Get(id)
	if t == nil {
		return r.malformed(source.Span{}, "type")
	}
	switch t.Kind {
	case ast.TypePath:
		return r.path(&t.Path, shape, false)
	case ast.TypeRef:
		prefix := "&"
		if t.Lifetime != "" {
			prefix += t.Lifetime + " "
		}
		if t.Mut {
			prefix += "mut "
		}
		return prefix + r.typ(t.Elem, shape.Shift(len(prefix)))
	case ast.TypePtr:
		prefix := "*const "
		if t.Mut {
			prefix = "*mut "
		}
		return prefix + r.typ(t.Elem, shape.Shift(len(prefix)))
	case ast.TypeSlice:
		return "[" + r.typ(t.Elem, shape.Shift(1).Sub(1)) + "]"
	case ast.TypeArray:
		elem := r.typ(t.Elem, shape.Shift(1))
		n := r.expr(t.Len, shape.Shift(r.width(elem)+3).Sub(1))
		return "[" + elem + "; " + n + "]"
	case ast.TypeTuple:
		trailing := r.cfg.TrailingComma()
		if len(t.Elems) == 1 {
			trailing = config.SeparatorAlways
		}
		return r.list(listSpec{
			open: "(", close: ")",
			lo: t.Span.Start + 1, hi: t.Span.End - 1,
			spans:    r.typeSpans(t.Elems),
			render:   func(i int, s Shape) string { return r.typ(t.Elems[i], s) },
			tactic:   TacticHorizontalVertical,
			trailing: trailing,
			visual:   true,
		}, shape)
	case ast.TypeParen:
		return "(" + r.typ(t.Elem, shape.Shift(1).Sub(1)) + ")"
	case ast.TypeFn:
		return r.fnPtrType(t, shape)
	case ast.TypeImpl:
		return "impl " + r.bounds(t.Bounds, shape.Shift(5))
	case ast.TypeDyn:
		return "dyn " + r.bounds(t.Bounds, shape.Shift(4))
	case ast.TypeNever:
		return "!"
	case ast.TypeInfer:
		return "_"
	case ast.TypeMacro:
		return r.macroCall(t.Macro, shape)
	}
	return r.malformed(t.Span, "type")
}

func (r *rewriter) typeSpans(ids []ast.TypeID) []source.Span {
	spans := make([]source.Span, len(ids))
	for i, id := range ids {
		spans[i] = r.b.TypeSpan(id)
	}
	return spans
}

func (r *rewriter) fnPtrType(t *ast.Type, shape Shape) string {
	var sb strings.Builder
	if len(t.ForLifetimes) > 0 {
		sb.WriteString("for<" + strings.Join(t.ForLifetimes, ", ") + "> ")
	}
	if t.Unsafe {
		sb.WriteString("unsafe ")
	}
	if t.HasExtern {
		sb.WriteString("extern ")
		if abi := r.abi(t.Abi); abi != "" {
			sb.WriteString(abi + " ")
		}
	}
	sb.WriteString("fn")
	head := sb.String()
	ret := ""
	if t.Output.IsValid() {
		ret = " -> " + r.typ(t.Output, shape)
	}
	params := r.list(listSpec{
		open: "(", close: ")",
		lo: t.Span.Start, hi: t.Span.End,
		spans: r.typeSpans(t.Elems),
		render: func(i int, s Shape) string {
			name := ""
			if i < len(t.ElemNames) && t.ElemNames[i] != "" {
				name = t.ElemNames[i] + r.colon()
			}
			return name + r.typ(t.Elems[i], s.Shift(r.width(name)))
		},
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		suffix:   r.width(ret),
		visual:   true,
	}, shape.Shift(r.width(head)))
	return head + params + ret
}

// abi дописывает "C" к голому extern, если так велит force_explicit_abi.
func (r *rewriter) abi(abi string) string {
	if abi == "" && r.cfg.ForceExplicitAbi() {
		return `"C"`
	}
	return abi
}

func (r *rewriter) colon() string {
	s := ":"
	if r.cfg.SpaceBeforeColon() {
		s = " " + s
	}
	if r.cfg.SpaceAfterColon() {
		s += " "
	}
	return s
}

// punct окружает знак пробелами при type_punctuation_density = Wide.
func (r *rewriter) punct(op string) string {
	if r.cfg.TypePunctuationDensity() == config.TypeDensityWide {
		return " " + op + " "
	}
	return op
}

func (r *rewriter) bounds(bs []ast.Bound, shape Shape) string {
	sep := r.punct("+")
	parts := make([]string, len(bs))
	total := 0
	for i := range bs {
		parts[i] = r.bound(&bs[i], shape)
		total += r.width(parts[i])
	}
	one := strings.Join(parts, sep)
	if r.fitsLine(one, shape) || len(parts) < 2 {
		return one
	}
	// A +\n    B: перенос после знака, продолжение на блок глубже
	ind := r.newline(shape.Indent + r.tab)
	return strings.Join(parts, strings.TrimRight(sep, " ")+ind)
}

func (r *rewriter) bound(b *ast.Bound, shape Shape) string {
	if b.Lifetime != "" {
		return b.Lifetime
	}
	var prefix string
	if len(b.ForLifetimes) > 0 {
		prefix = "for<" + strings.Join(b.ForLifetimes, ", ") + "> "
	}
	if b.Maybe {
		prefix += "?"
	}
	return prefix + r.typ(b.Trait, shape.Shift(r.width(prefix)))
}

// path renders a path; expr selects `::<` for generic arguments written as turbofish.
func (r *rewriter) path(p *ast.Path, shape Shape, expr bool) string {
	var sb strings.Builder
	if p.QSelf != nil {
		sb.WriteString("<" + r.typ(p.QSelf.Type, shape.Shift(1)))
		if p.QSelf.Trait.IsValid() {
			sb.WriteString(" as " + r.typ(p.QSelf.Trait, shape))
		}
		sb.WriteString(">::")
	} else if p.Global {
		sb.WriteString("::")
	}
	for i := range p.Segments {
		seg := &p.Segments[i]
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Name.Name)
		if seg.Args != nil {
			done := sb.String()
			sb.WriteString(r.genericArgs(seg.Args, r.shiftAfter(done, shape), expr))
		}
	}
	return sb.String()
}

// shiftAfter: shape для текста, который продолжает уже выведенное done.
func (r *rewriter) shiftAfter(done string, shape Shape) Shape {
	if !multiline(done) {
		return shape.Shift(r.width(done))
	}
	used := r.width(lastLine(done))
	return Shape{Indent: shape.Indent, Offset: used - shape.Indent, Width: r.maxWidth - used}
}

func (r *rewriter) genericArgs(ga *ast.GenericArgs, shape Shape, expr bool) string {
	if ga.Parenthesized {
		ret := ""
		if ga.Output.IsValid() {
			ret = " -> " + r.typ(ga.Output, shape)
		}
		return r.list(listSpec{
			open: "(", close: ")",
			lo: ga.Span.Start, hi: ga.Span.End,
			spans:    r.typeSpans(ga.Inputs),
			render:   func(i int, s Shape) string { return r.typ(ga.Inputs[i], s) },
			tactic:   TacticHorizontalVertical,
			trailing: r.cfg.TrailingComma(),
			suffix:   r.width(ret),
			visual:   true,
		}, shape) + ret
	}
	open := "<"
	if expr || ga.Turbofish {
		open = "::<"
	}
	spans := make([]source.Span, len(ga.Args))
	for i := range ga.Args {
		spans[i] = ga.Args[i].Span
	}
	return r.list(listSpec{
		open: open, close: ">",
		lo: ga.Span.Start, hi: ga.Span.End,
		spans:    spans,
		render:   func(i int, s Shape) string { return r.genericArg(&ga.Args[i], s) },
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		visual:   true,
	}, shape)
}

func (r *rewriter) genericArg(a *ast.GenericArg, shape Shape) string {
	switch {
	case a.Lifetime != "":
		return a.Lifetime
	case a.Binding != "":
		eq := r.punct("=")
		return a.Binding + eq + r.typ(a.Type, shape.Shift(r.width(a.Binding+eq)))
	case a.Type.IsValid():
		return r.typ(a.Type, shape)
	case a.Const.IsValid():
		return r.expr(a.Const, shape)
	}
	return r.malformed(a.Span, "generic argument")
}
