package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/parser"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

func (r *rewriter) expr(id ast.ExprID, shape Shape) string {
	e := r.b.Exprs.Get(id)
	if e == nil {
		return r.malformed(source.Span{}, "expression")
	}
	exprs := r.b.Exprs
	switch e.Kind {
	case ast.ExprPath:
		d, _ := exprs.Path(id)
		return r.path(&d.Path, shape, true)
	case ast.ExprLit:
		d, _ := exprs.Literal(id)
		if d.Kind == token.StringLit {
			return r.stringLit(d.Text, shape)
		}
		return d.Text
	case ast.ExprUnary:
		d, _ := exprs.Unary(id)
		op := d.Op.Text()
		return op + r.expr(d.X, shape.Shift(len(op)))
	case ast.ExprBinary:
		return r.binary(id, shape)
	case ast.ExprAssign:
		d, _ := exprs.Binary(id)
		lhs := r.expr(d.Left, shape)
		return r.assignRHS(lhs+" "+d.Op.Text(), d.Right, shape)
	case ast.ExprCast:
		d, _ := exprs.Cast(id)
		head := r.expr(d.X, shape) + " as "
		return head + r.typ(d.Type, r.shiftAfter(head, shape))
	case ast.ExprRange:
		return r.rangeExpr(id, shape)
	case ast.ExprCall:
		d, _ := exprs.Call(id)
		callee := r.expr(d.Fn, shape)
		return callee + r.args(d.Args, d.ArgsSpan, r.shiftAfter(callee, shape))
	case ast.ExprMethodCall, ast.ExprField, ast.ExprTry, ast.ExprAwait:
		return r.chain(id, shape)
	case ast.ExprIndex:
		d, _ := exprs.Index(id)
		x := r.expr(d.X, shape) + "["
		return x + r.expr(d.Index, r.shiftAfter(x, shape).Sub(1)) + "]"
	case ast.ExprParen:
		d, _ := exprs.Wrap(id)
		return "(" + r.expr(d.X, shape.Shift(1).Sub(1)) + ")"
	case ast.ExprStruct:
		return r.structLit(id, shape)
	case ast.ExprTuple, ast.ExprArray:
		return r.exprList(id, e, shape)
	case ast.ExprRepeat:
		d, _ := exprs.Repeat(id)
		elem := "[" + r.expr(d.Elem, shape.Shift(1)) + "; "
		return elem + r.expr(d.Len, r.shiftAfter(elem, shape).Sub(1)) + "]"
	case ast.ExprClosure:
		return r.closure(id, shape)
	case ast.ExprBlock:
		d, _ := exprs.Block(id)
		return r.blockPrefix(d) + r.blockText(d.Block, shape.Indent)
	case ast.ExprIf:
		return r.ifExpr(id, shape)
	case ast.ExprLet:
		d, _ := exprs.Let(id)
		head := "let " + r.pat(d.Pat, shape.Shift(4)) + " ="
		return r.assignRHS(head, d.Init, shape)
	case ast.ExprMatch:
		return r.match(id, shape)
	case ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
		return r.loop(e, id, shape)
	case ast.ExprReturn, ast.ExprBreak, ast.ExprContinue:
		return r.jump(e, id, shape)
	case ast.ExprMacro:
		d, _ := exprs.Macro(id)
		return r.macroCall(d.Macro, shape)
	}
	return r.malformed(e.Span, "expression")
}

func (r *rewriter) exprSpans(ids []ast.ExprID) []source.Span {
	spans := make([]source.Span, len(ids))
	for i, id := range ids {
		spans[i] = r.b.ExprSpan(id)
	}
	return spans
}

// blockLike: выражения, которые заканчиваются `}` и сами уходят на новые строки.
func (r *rewriter) blockLike(id ast.ExprID) bool {
	e := r.b.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprBlock, ast.ExprIf, ast.ExprMatch, ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
		return true
	case ast.ExprMacro:
		d, _ := r.b.Exprs.Macro(id)
		return d.Macro.Delim == token.LBrace
	}
	return false
}

// overflowable reports whether the last of n arguments may start on the
// line of the opening paren and continue below.
func (r *rewriter) overflowable(id ast.ExprID, n int) bool {
	e := r.b.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprClosure, ast.ExprBlock, ast.ExprMatch, ast.ExprStruct:
		return true
	case ast.ExprCall, ast.ExprMethodCall, ast.ExprMacro, ast.ExprArray, ast.ExprTuple:
		return n == 1
	}
	return false
}

func (r *rewriter) args(args []ast.ExprID, span source.Span, shape Shape) string {
	overflow := len(args) > 0 && r.overflowable(args[len(args)-1], len(args))
	return r.list(listSpec{
		open: "(", close: ")",
		lo: span.Start + 1, hi: span.End - 1,
		spans:        r.exprSpans(args),
		render:       func(i int, s Shape) string { return r.expr(args[i], s) },
		tactic:       TacticHorizontalVertical,
		trailing:     r.cfg.TrailingComma(),
		limit:        r.cfg.FnCallWidth(),
		visual:       true,
		overflowLast: overflow,
	}, shape)
}

// assignRHS renders `lhs rhs`, moving rhs one block deeper on the next
// line when its first line does not fit after lhs.
func (r *rewriter) assignRHS(lhs string, rhs ast.ExprID, shape Shape) string {
	head := lhs + " "
	after := r.shiftAfter(head, shape)
	same := r.expr(rhs, after)
	if r.blockLike(rhs) || r.fits(same, after) {
		return head + same
	}
	next := r.block(shape)
	below := r.expr(rhs, next)
	if !r.fits(below, next) && strings.Count(below, "\n") >= strings.Count(same, "\n") {
		return head + same
	}
	return lhs + r.newline(next.Indent) + below
}

func (r *rewriter) rangeExpr(id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Range(id)
	sp := ""
	if r.cfg.SpacesAroundRanges() {
		sp = " "
	}
	var sb strings.Builder
	if d.Lo.IsValid() {
		sb.WriteString(r.expr(d.Lo, shape))
		sb.WriteString(sp)
	}
	sb.WriteString(d.Op.Text())
	if d.Hi.IsValid() {
		sb.WriteString(sp)
		sb.WriteString(r.expr(d.Hi, r.shiftAfter(sb.String(), shape)))
	}
	return sb.String()
}

// flattenBinary collects a left-leaning run of operators of equal precedence:
// a + b - c yields [a b c] and [+ -].
func (r *rewriter) flattenBinary(id ast.ExprID) ([]ast.ExprID, []string) {
	d, _ := r.b.Exprs.Binary(id)
	prec := parser.BinaryPrecedence(d.Op)
	var operands []ast.ExprID
	var ops []string
	for {
		left, ok := r.b.Exprs.Binary(d.Left)
		if !ok || r.b.Exprs.Get(d.Left).Kind != ast.ExprBinary || parser.BinaryPrecedence(left.Op) != prec {
			break
		}
		operands = append(operands, d.Right)
		ops = append(ops, d.Op.Text())
		d = left
	}
	operands = append(operands, d.Right, d.Left)
	ops = append(ops, d.Op.Text())
	for i, j := 0, len(operands)-1; i < j; i, j = i+1, j-1 {
		operands[i], operands[j] = operands[j], operands[i]
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return operands, ops
}

func (r *rewriter) binary(id ast.ExprID, shape Shape) string {
	operands, ops := r.flattenBinary(id)

	var sb strings.Builder
	sb.WriteString(r.expr(operands[0], shape))
	for i, op := range ops {
		sb.WriteString(" " + op + " ")
		sb.WriteString(r.expr(operands[i+1], r.shiftAfter(sb.String(), shape)))
	}
	if one := sb.String(); r.fitsLine(one, shape) {
		return one
	}

	cont := shape.Indent + r.tab
	if r.cfg.IndentStyle() == config.IndentVisual {
		cont = shape.Used()
	}
	front := r.cfg.BinopSeparator() == config.SeparatorFront
	sb.Reset()
	sb.WriteString(r.expr(operands[0], shape))
	for i, op := range ops {
		line := r.lineShape(cont)
		if front {
			sb.WriteString(r.newline(cont) + op + " ")
			sb.WriteString(r.expr(operands[i+1], line.Shift(len(op)+1)))
			continue
		}
		sb.WriteString(" " + op + r.newline(cont))
		sb.WriteString(r.expr(operands[i+1], line))
	}
	return sb.String()
}

func (r *rewriter) structLit(id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Struct(id)
	head := r.path(&d.Path, shape, true) + " "
	spans := make([]source.Span, len(d.Fields))
	for i := range d.Fields {
		spans[i] = d.Fields[i].Span
	}
	ls := listSpec{
		open: "{", close: "}",
		lo: d.BodySpan.Start + 1, hi: d.BodySpan.End - 1,
		spans:  spans,
		padded: true,
		render: func(i int, s Shape) string {
			f := &d.Fields[i]
			attrs := r.inlineAttrs(f.Attrs)
			if f.Shorthand {
				return attrs + f.Name.Name
			}
			prefix := attrs + f.Name.Name + r.colon()
			return prefix + r.expr(f.Value, s.Shift(r.width(prefix)))
		},
		tactic:   r.cfg.StructLitMultilineStyle().ToListTactic(),
		trailing: r.cfg.TrailingComma(),
		limit:    r.cfg.StructLitWidth(),
	}
	if d.HasBase {
		ls.extra = ".." + r.expr(d.Base, r.block(shape).Shift(2))
	}
	return head + r.list(ls, r.shiftAfter(head, shape))
}

// simpleElem: литерал или короткий путь; массивы таких элементов пакуются плотно.
func (r *rewriter) simpleElem(id ast.ExprID) bool {
	e := r.b.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprLit:
		return true
	case ast.ExprUnary:
		d, _ := r.b.Exprs.Unary(id)
		return d.Op == ast.ExprUnaryNeg && r.simpleElem(d.X)
	case ast.ExprPath:
		d, _ := r.b.Exprs.Path(id)
		return d.Path.IsSingle()
	}
	return false
}

func (r *rewriter) exprList(id ast.ExprID, e *ast.Expr, shape Shape) string {
	d, _ := r.b.Exprs.List(id)
	ls := listSpec{
		open: "(", close: ")",
		lo: e.Span.Start + 1, hi: e.Span.End - 1,
		spans:    r.exprSpans(d.Elems),
		render:   func(i int, s Shape) string { return r.expr(d.Elems[i], s) },
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		visual:   true,
	}
	if e.Kind == ast.ExprArray {
		ls.open, ls.close = "[", "]"
		mixed := len(d.Elems) > 1
		for _, el := range d.Elems {
			mixed = mixed && r.simpleElem(el)
		}
		if mixed {
			ls.tactic = TacticMixed
		}
	} else if len(d.Elems) == 1 {
		ls.trailing = config.SeparatorAlways
	}
	if len(d.Elems) == 1 {
		ls.overflowLast = r.overflowable(d.Elems[0], 1)
	}
	return r.list(ls, shape)
}

func (r *rewriter) closure(id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Closure(id)
	var prefix string
	if d.Async {
		prefix += "async "
	}
	if d.Move {
		prefix += "move "
	}
	spans := make([]source.Span, len(d.Params))
	for i := range d.Params {
		spans[i] = d.Params[i].Span
	}
	head := prefix + r.list(listSpec{
		open: "|", close: "|",
		lo: d.ParamsSpan.Start + 1, hi: d.ParamsSpan.End - 1,
		spans: spans,
		render: func(i int, s Shape) string {
			p := &d.Params[i]
			text := r.pat(p.Pat, s)
			if p.Type.IsValid() {
				text += r.colon()
				text += r.typ(p.Type, r.shiftAfter(text, s))
			}
			return text
		},
		tactic:   TacticHorizontalVertical,
		trailing: config.SeparatorNever,
		visual:   true,
	}, shape.Shift(len(prefix)))
	if d.Output.IsValid() {
		head += " -> " + r.typ(d.Output, r.shiftAfter(head+" -> ", shape))
	}
	head += " "
	return head + r.expr(d.Body, r.shiftAfter(head, shape))
}

func (r *rewriter) blockPrefix(d *ast.ExprBlockData) string {
	var prefix string
	if d.Label != "" {
		prefix = d.Label + ": "
	}
	if d.Unsafe {
		prefix += "unsafe "
	}
	if d.Async {
		prefix += "async "
	}
	if d.Move {
		prefix += "move "
	}
	return prefix
}

func (r *rewriter) jump(e *ast.Expr, id ast.ExprID, shape Shape) string {
	d, _ := r.b.Exprs.Jump(id)
	var kw string
	switch e.Kind {
	case ast.ExprReturn:
		kw = "return"
	case ast.ExprBreak:
		kw = "break"
	default:
		kw = "continue"
	}
	if d.Label != "" {
		kw += " " + d.Label
	}
	if !d.X.IsValid() {
		return kw
	}
	kw += " "
	return kw + r.expr(d.X, shape.Shift(r.width(kw)))
}
