package format

import (
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/source"
)

// itemElem renders one item at indent; comments it would lose keep the item verbatim.
func (r *rewriter) itemElem(id ast.ItemID, indent int) seqElem {
	it := r.b.Items.Get(id)
	if it == nil {
		return seqElem{text: r.malformed(source.Span{}, "item")}
	}
	return seqElem{span: it.Span, text: r.guarded(it.Span, r.item(id, it, indent))}
}

func (r *rewriter) item(id ast.ItemID, it *ast.Item, indent int) string {
	attrs := r.outerAttrs(it.Attrs, indent)
	vis := r.vis(it.Vis)
	shape := r.lineShape(indent).Shift(r.width(vis))
	items := r.b.Items

	var body string
	switch it.Kind {
	case ast.ItemFn:
		fn, _ := items.Fn(id)
		body = r.fn(fn, shape)
	case ast.ItemStruct:
		s, _ := items.Struct(id)
		body = r.structItem(s, shape)
	case ast.ItemEnum:
		e, _ := items.Enum(id)
		body = r.enumItem(e, shape)
	case ast.ItemImpl:
		im, _ := items.Impl(id)
		body = r.implItem(im, shape)
	case ast.ItemTrait:
		tr, _ := items.Trait(id)
		body = r.traitItem(tr, shape)
	case ast.ItemMod:
		m, _ := items.Mod(id)
		body = "mod " + m.Name.Name
		if !m.Inline {
			body += ";"
			break
		}
		body += " " + r.itemBody(m.InnerAttrs, m.Items, m.BodySpan, indent, true)
	case ast.ItemConst, ast.ItemStatic:
		c, _ := items.Const(id)
		body = r.constItem(it.Kind, c, shape)
	case ast.ItemTypeAlias:
		ta, _ := items.TypeAlias(id)
		body = r.typeAlias(ta, shape)
	case ast.ItemExternCrate:
		ec, _ := items.ExternCrate(id)
		body = "extern crate " + ec.Name.Name
		if ec.Alias != "" {
			body += " as " + ec.Alias
		}
		body += ";"
	case ast.ItemExternBlock:
		eb, _ := items.ExternBlock(id)
		body = "extern "
		if abi := r.abi(eb.Abi); abi != "" {
			body += abi + " "
		}
		body += r.itemBody(eb.InnerAttrs, eb.Items, eb.BodySpan, indent, true)
	case ast.ItemUse:
		u, _ := items.Use(id)
		body = r.useItem(&u.Tree, shape)
	case ast.ItemMacro:
		m, _ := items.Macro(id)
		body = r.macroCall(m.Macro, shape)
		if m.Semi {
			body += ";"
		}
	default:
		return r.malformed(it.Span, "item")
	}
	return attrs + vis + body
}

func (r *rewriter) attr(a ast.Attr) string {
	if multiline(a.Body) {
		return r.verbatim(a.Span)
	}
	if a.Inner {
		return "#![" + a.Body + "]"
	}
	return "#[" + a.Body + "]"
}

// outerAttrs puts every attribute on its own line, keeping comments that
// sit between them; the result ends with the line break before the item.
func (r *rewriter) outerAttrs(attrs []ast.Attr, indent int) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	nl := r.newline(indent)
	for i, a := range attrs {
		sb.WriteString(r.attr(a))
		next := r.comments.skipTrivia(a.Span.End)
		if i+1 < len(attrs) {
			next = attrs[i+1].Span.Start
		}
		for _, c := range r.comments.between(a.Span.End, next) {
			text := reindentTail(r.rewriteComment(c, true, indent), r.indent(indent))
			if r.comments.sameLine(a.Span.End, c.Start) {
				sb.WriteString(" " + text)
				continue
			}
			sb.WriteString(nl + text)
		}
		sb.WriteString(nl)
	}
	return sb.String()
}

// inlineAttrs: атрибуты параметров и полей литералов: в строку через пробел.
func (r *rewriter) inlineAttrs(attrs []ast.Attr) string {
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString(r.attr(a) + " ")
	}
	return sb.String()
}

func (r *rewriter) vis(v ast.Visibility) string {
	switch v.Kind {
	case ast.VisPub:
		return "pub "
	case ast.VisRestricted:
		scope := strings.Join(strings.Fields(v.Scope), " ")
		scope = strings.ReplaceAll(scope, " :: ", "::")
		return "pub(" + scope + ") "
	}
	return ""
}

// braceSep returns what goes between an item header and its `{`.
func (r *rewriter) braceSep(whereVertical bool, indent int) string {
	switch r.cfg.BraceStyle() {
	case config.BraceAlwaysNextLine:
		return r.newline(indent)
	case config.BracePreferSameLine:
		return " "
	}
	if whereVertical {
		return r.newline(indent)
	}
	return " "
}

// itemBody renders `{ inner attrs; items }` of impl, trait, mod and extern blocks.
func (r *rewriter) itemBody(inner []ast.Attr, ids []ast.ItemID, span source.Span, indent int, emptySingle bool) string {
	lo, hi := span.Start+1, span.End-1
	if len(inner) == 0 && len(ids) == 0 && !r.comments.any(lo, hi) {
		if emptySingle {
			return "{}"
		}
		return "{" + r.newline(indent) + "}"
	}
	elems := make([]seqElem, 0, len(inner)+len(ids))
	for _, a := range inner {
		elems = append(elems, seqElem{span: a.Span, text: r.attr(a)})
	}
	elems = append(elems, r.itemSeq(ids, indent+r.tab)...)
	return "{" + r.joinSeq(lo, hi, elems, indent+r.tab) + r.newline(indent) + "}"
}

func (r *rewriter) fn(fn *ast.FnItem, shape Shape) string {
	sig := &fn.Sig
	var sb strings.Builder
	if sig.Const {
		sb.WriteString("const ")
	}
	if sig.Async {
		sb.WriteString("async ")
	}
	if sig.Unsafe {
		sb.WriteString("unsafe ")
	}
	if sig.HasExtern {
		sb.WriteString("extern ")
		if abi := r.abi(sig.Abi); abi != "" {
			sb.WriteString(abi + " ")
		}
	}
	sb.WriteString("fn " + sig.Name.Name)
	if !sig.Generics.Empty() {
		space := r.cfg.FnGenericsSpace()
		if space.Before() {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.generics(&sig.Generics, r.shiftAfter(sb.String(), shape)))
		if space.After() {
			sb.WriteByte(' ')
		}
	}

	ret := ""
	if sig.Output.IsValid() {
		ret = " -> " + r.typ(sig.Output, r.lineShape(shape.Indent+r.tab))
	}
	suffix := r.width(ret)
	if fn.Body != nil {
		suffix += 2
	} else {
		suffix++
	}
	head := sb.String()
	text := head + r.fnParams(sig, r.shiftAfter(head, shape), suffix)
	if ret != "" {
		if r.lastLineWidth(text, shape)+r.width(ret)+2 <= r.maxWidth || multiline(ret) {
			text += ret
		} else {
			retIndent := shape.Indent + r.tab
			if r.cfg.FnReturnIndent() == config.ReturnWithWhereClause && sig.Generics.Where != nil {
				retIndent = shape.Indent
			}
			text += r.newline(retIndent) + strings.TrimPrefix(ret, " ")
		}
	}
	where, vertical := r.whereClause(sig.Generics.Where, r.lineShape(shape.Indent), fn.Body != nil)
	text += where
	if fn.Body == nil {
		return text + ";"
	}

	if one, ok := r.fnSingleLine(text, fn.Body, shape); ok {
		return one
	}
	body := r.blockText(fn.Body, shape.Indent)
	style := r.cfg.BraceStyle()
	if body == "{}" && (style == config.BraceAlwaysNextLine || !r.cfg.FnEmptySingleLine()) {
		body = "{" + r.newline(shape.Indent) + "}"
	}
	return text + r.braceSep(vertical, shape.Indent) + body
}

// fnSingleLine tries `fn f() -> T { x }` and the empty `fn f() {}`.
func (r *rewriter) fnSingleLine(sig string, body *ast.Block, shape Shape) (string, bool) {
	if multiline(sig) || r.cfg.BraceStyle() == config.BraceAlwaysNextLine {
		return "", false
	}
	if !r.cfg.FnSingleLine() || r.comments.any(body.Span.Start, body.Span.End) {
		return "", false
	}
	x, ok := r.singleExpr(body)
	if !ok {
		return "", false
	}
	inner := r.expr(x, shape.Shift(r.width(sig)+3))
	one := sig + " { " + inner + " }"
	if !r.fitsLine(one, shape) {
		return "", false
	}
	return one, true
}

func (r *rewriter) fnParams(sig *ast.FnSig, shape Shape, suffix int) string {
	spans := make([]source.Span, len(sig.Params))
	for i := range sig.Params {
		spans[i] = sig.Params[i].Span
	}
	ls := listSpec{
		open: "(", close: ")",
		lo: sig.ParamsSpan.Start + 1, hi: sig.ParamsSpan.End - 1,
		spans:    spans,
		render:   func(i int, s Shape) string { return r.param(&sig.Params[i], s) },
		tactic:   r.cfg.FnArgsLayout().ToListTactic(len(sig.Params)),
		trailing: r.cfg.TrailingComma(),
		suffix:   suffix,
		visual:   true,
	}
	if sig.Variadic {
		ls.extra = "..."
	}
	return r.list(ls, shape)
}

func (r *rewriter) param(p *ast.Param, shape Shape) string {
	text := r.inlineAttrs(p.Attrs)
	switch p.Self {
	case ast.SelfRef:
		text += "&"
		if p.SelfLifetime != "" {
			text += p.SelfLifetime + " "
		}
		if p.SelfMut {
			text += "mut "
		}
		return text + "self"
	case ast.SelfValue:
		if p.SelfMut {
			text += "mut "
		}
		text += "self"
	default:
		if p.Pat.IsValid() {
			text += r.pat(p.Pat, shape.Shift(r.width(text)))
		} else {
			return text + r.typ(p.Type, shape.Shift(r.width(text)))
		}
	}
	if p.Type.IsValid() {
		text += r.colon()
		text += r.typ(p.Type, r.shiftAfter(text, shape))
	}
	return text
}

func (r *rewriter) fieldSpans(fields []ast.FieldDef) []source.Span {
	spans := make([]source.Span, len(fields))
	for i := range fields {
		spans[i] = fields[i].Span
	}
	return spans
}

// namedFields: `{ a: A, b: B }` of structs (always vertical) and of enum
// variants (horizontal when it fits).
func (r *rewriter) namedFields(fields []ast.FieldDef, body source.Span, shape Shape, vertical bool) string {
	tactic := TacticHorizontalVertical
	if vertical {
		tactic = TacticVertical
	}
	return r.list(listSpec{
		open: "{", close: "}",
		lo: body.Start + 1, hi: body.End - 1,
		spans: r.fieldSpans(fields),
		render: func(i int, s Shape) string {
			f := &fields[i]
			text := r.outerAttrs(f.Attrs, s.Indent) + r.vis(f.Vis) + f.Name.Name + r.colon()
			return text + r.typ(f.Type, r.shiftAfter(text, s))
		},
		tactic:        tactic,
		trailing:      r.cfg.TrailingComma(),
		padded:        !vertical,
		preserveBlank: true,
	}, shape)
}

func (r *rewriter) tupleFields(fields []ast.FieldDef, body source.Span, shape Shape) string {
	return r.list(listSpec{
		open: "(", close: ")",
		lo: body.Start + 1, hi: body.End - 1,
		spans: r.fieldSpans(fields),
		render: func(i int, s Shape) string {
			f := &fields[i]
			text := r.inlineAttrs(f.Attrs) + r.vis(f.Vis)
			return text + r.typ(f.Type, s.Shift(r.width(text)))
		},
		tactic:   TacticHorizontalVertical,
		trailing: r.cfg.TrailingComma(),
		visual:   true,
	}, shape)
}

func (r *rewriter) structItem(s *ast.StructItem, shape Shape) string {
	head := "struct " + s.Name.Name
	head += r.generics(&s.Generics, r.shiftAfter(head, shape))
	line := r.lineShape(shape.Indent)
	switch s.Kind {
	case ast.StructUnit:
		where, _ := r.whereClause(s.Generics.Where, line, false)
		return head + where + ";"
	case ast.StructTuple:
		head += r.tupleFields(s.Fields, s.BodySpan, r.shiftAfter(head, shape).Sub(1))
		where, _ := r.whereClause(s.Generics.Where, line, false)
		return head + where + ";"
	}
	where, vertical := r.whereClause(s.Generics.Where, line, true)
	head += where + r.braceSep(vertical, shape.Indent)
	return head + r.namedFields(s.Fields, s.BodySpan, r.shiftAfter(head, shape), true)
}

func (r *rewriter) enumItem(e *ast.EnumItem, shape Shape) string {
	head := "enum " + e.Name.Name
	head += r.generics(&e.Generics, r.shiftAfter(head, shape))
	where, vertical := r.whereClause(e.Generics.Where, r.lineShape(shape.Indent), true)
	head += where + r.braceSep(vertical, shape.Indent)
	spans := make([]source.Span, len(e.Variants))
	for i := range e.Variants {
		spans[i] = e.Variants[i].Span
	}
	return head + r.list(listSpec{
		open: "{", close: "}",
		lo: e.BodySpan.Start + 1, hi: e.BodySpan.End - 1,
		spans:         spans,
		render:        func(i int, s Shape) string { return r.variant(&e.Variants[i], s) },
		tactic:        TacticVertical,
		trailing:      r.cfg.TrailingComma(),
		preserveBlank: true,
	}, r.shiftAfter(head, shape))
}

func (r *rewriter) variant(v *ast.Variant, shape Shape) string {
	text := r.outerAttrs(v.Attrs, shape.Indent) + v.Name.Name
	switch v.Kind {
	case ast.StructTuple:
		text += r.tupleFields(v.Fields, v.BodySpan, r.shiftAfter(text, shape))
	case ast.StructNamed:
		text += " "
		text += r.namedFields(v.Fields, v.BodySpan, r.shiftAfter(text, shape), false)
	}
	if v.Discriminant.IsValid() {
		text += " = "
		text += r.expr(v.Discriminant, r.shiftAfter(text, shape))
	}
	return text
}

func (r *rewriter) implItem(im *ast.ImplItem, shape Shape) string {
	var head string
	if im.Unsafe {
		head = "unsafe "
	}
	head += "impl"
	head += r.generics(&im.Generics, r.shiftAfter(head, shape)) + " "
	if im.Trait.IsValid() {
		if im.Negative {
			head += "!"
		}
		head += r.typ(im.Trait, r.shiftAfter(head, shape)) + " for "
	}
	head += r.typ(im.SelfType, r.shiftAfter(head, shape))
	where, vertical := r.whereClause(im.Generics.Where, r.lineShape(shape.Indent), true)
	head += where + r.braceSep(vertical, shape.Indent)
	return head + r.itemBody(im.InnerAttrs, im.Items, im.BodySpan, shape.Indent, r.cfg.ImplEmptySingleLine())
}

func (r *rewriter) traitItem(tr *ast.TraitItem, shape Shape) string {
	var head string
	if tr.Unsafe {
		head = "unsafe "
	}
	if tr.Auto {
		head += "auto "
	}
	head += "trait " + tr.Name.Name
	head += r.generics(&tr.Generics, r.shiftAfter(head, shape))
	if len(tr.Supertraits) > 0 {
		head += r.colon()
		head += r.bounds(tr.Supertraits, r.shiftAfter(head, shape))
	}
	where, vertical := r.whereClause(tr.Generics.Where, r.lineShape(shape.Indent), true)
	head += where + r.braceSep(vertical, shape.Indent)
	return head + r.itemBody(tr.InnerAttrs, tr.Items, tr.BodySpan, shape.Indent, true)
}

func (r *rewriter) constItem(kind ast.ItemKind, c *ast.ConstItem, shape Shape) string {
	head := "const "
	if kind == ast.ItemStatic {
		head = "static "
		if c.Mut {
			head += "mut "
		}
	}
	head += c.Name.Name
	if c.Type.IsValid() {
		head += r.colon()
		head += r.typ(c.Type, r.shiftAfter(head, shape))
	}
	if !c.Value.IsValid() {
		return head + ";"
	}
	return r.assignRHS(head+" =", c.Value, shape.Sub(1)) + ";"
}

func (r *rewriter) typeAlias(ta *ast.TypeAliasItem, shape Shape) string {
	head := "type " + ta.Name.Name
	head += r.generics(&ta.Generics, r.shiftAfter(head, shape))
	if len(ta.Bounds) > 0 {
		head += r.colon()
		head += r.bounds(ta.Bounds, r.shiftAfter(head, shape))
	}
	where, _ := r.whereClause(ta.Generics.Where, r.lineShape(shape.Indent), false)
	head += where
	if !ta.Type.IsValid() {
		return head + ";"
	}
	head += " = "
	return head + r.typ(ta.Type, r.shiftAfter(head, shape).Sub(1)) + ";"
}
