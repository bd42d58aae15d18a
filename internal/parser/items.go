package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// itemStart: то, что уже прочитано до ключевого слова элемента.
type itemStart struct {
	pos   int
	attrs []ast.Attr
	vis   ast.Visibility
}

func (st itemStart) head(p *Parser) ast.ItemHead {
	return ast.ItemHead{Span: p.spanFrom(st.pos), Attrs: st.attrs, Vis: st.vis}
}

// parseItem выбирает по первому токену нужный распознаватель конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	st := itemStart{pos: p.pos}
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoItemID, false
	}
	st.attrs = attrs
	st.vis = p.parseVisibility()
	return p.parseItemAfterHead(st)
}

func (p *Parser) parseItemAfterHead(st itemStart) (ast.ItemID, bool) {
	tok := p.peek()
	next := p.peekN(1)
	switch tok.Kind {
	case token.KwUse:
		return p.parseUseItem(st)
	case token.KwFn:
		return p.parseFnItem(st)
	case token.KwConst:
		if p.atFnQualifiers() {
			return p.parseFnItem(st)
		}
		return p.parseConstItem(st, ast.ItemConst)
	case token.KwStatic:
		return p.parseConstItem(st, ast.ItemStatic)
	case token.KwAsync:
		if p.atFnQualifiers() {
			return p.parseFnItem(st)
		}
	case token.KwUnsafe:
		if p.atFnQualifiers() {
			return p.parseFnItem(st)
		}
		switch {
		case next.Kind == token.KwImpl:
			return p.parseImplItem(st)
		case next.Kind == token.KwTrait, next.Kind == token.Ident && next.Text == "auto":
			return p.parseTraitItem(st)
		}
	case token.KwExtern:
		if next.Kind == token.KwCrate {
			return p.parseExternCrate(st)
		}
		if p.atFnQualifiers() {
			return p.parseFnItem(st)
		}
		return p.parseExternBlock(st)
	case token.KwStruct:
		return p.parseStructItem(st)
	case token.KwEnum:
		return p.parseEnumItem(st)
	case token.KwType:
		return p.parseTypeAlias(st)
	case token.KwTrait:
		return p.parseTraitItem(st)
	case token.KwImpl:
		return p.parseImplItem(st)
	case token.KwMod:
		return p.parseModItem(st)
	case token.Ident:
		if tok.Text == "auto" && next.Kind == token.KwTrait {
			return p.parseTraitItem(st)
		}
		if p.atMacroCall() {
			return p.parseMacroItem(st)
		}
	case token.ColonColon:
		if p.atMacroCall() {
			return p.parseMacroItem(st)
		}
	}
	p.err(diag.SynExpectItem, "expected item, found \""+tok.Text+"\"")
	return ast.NoItemID, false
}

// atFnQualifiers: const/async/unsafe/extern "abi" ... fn
func (p *Parser) atFnQualifiers() bool {
	for i := 0; ; i++ {
		switch p.peekN(i).Kind {
		case token.KwConst, token.KwAsync, token.KwUnsafe:
		case token.KwExtern:
			if k := p.peekN(i + 1).Kind; k == token.StringLit || k == token.RawStringLit {
				i++
			}
		case token.KwFn:
			return true
		default:
			return false
		}
	}
}

// isItemStart: может ли текущая позиция в блоке начинать вложенный элемент.
func (p *Parser) isItemStart() bool {
	tok := p.peek()
	next := p.peekN(1)
	switch tok.Kind {
	case token.KwUse, token.KwFn, token.KwStruct, token.KwEnum, token.KwTrait,
		token.KwImpl, token.KwMod, token.KwStatic, token.KwPub:
		return true
	case token.KwType:
		return next.Kind == token.Ident
	case token.KwConst:
		return next.Kind == token.Ident || next.Kind == token.Underscore || p.atFnQualifiers()
	case token.KwUnsafe:
		return next.Kind == token.KwImpl || next.Kind == token.KwTrait || p.atFnQualifiers()
	case token.KwAsync:
		return p.atFnQualifiers()
	case token.KwExtern:
		return true
	case token.Ident:
		return tok.Text == "macro_rules" && next.Kind == token.Bang
	default:
		return false
	}
}

func (p *Parser) parseFnItem(st itemStart) (ast.ItemID, bool) {
	sig, ok := p.parseFnSig()
	if !ok {
		return ast.NoItemID, false
	}
	var body *ast.Block
	if !p.eat(token.Semicolon) {
		if body, ok = p.parseBlock(); !ok {
			return ast.NoItemID, false
		}
	}
	return p.arenas.Items.NewFn(st.head(p), ast.FnItem{Sig: sig, Body: body}), true
}

func (p *Parser) parseConstItem(st itemStart, kind ast.ItemKind) (ast.ItemID, bool) {
	p.advance() // const | static
	var c ast.ConstItem
	if kind == ast.ItemStatic {
		c.Mut = p.eat(token.KwMut)
	}
	if p.at(token.Underscore) {
		tok := p.advance()
		c.Name = ast.Ident{Name: tok.Text, Span: tok.Span}
	} else {
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		c.Name = ast.Ident{Name: name.Text, Span: name.Span}
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and a type"); !ok {
		return ast.NoItemID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	c.Type = ty
	if p.eat(token.Assign) {
		if c.Value, ok = p.parseExpr(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+kind.String()+" item"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewConst(kind, st.head(p), c), true
}

func (p *Parser) parseExternCrate(st itemStart) (ast.ItemID, bool) {
	p.advance() // extern
	p.advance() // crate
	var ec ast.ExternCrateItem
	if p.at(token.KwSelfValue) {
		tok := p.advance()
		ec.Name = ast.Ident{Name: tok.Text, Span: tok.Span}
	} else {
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		ec.Name = ast.Ident{Name: name.Text, Span: name.Span}
	}
	if p.eat(token.KwAs) {
		if p.at(token.Underscore) {
			ec.Alias = p.advance().Text
		} else {
			alias, ok := p.parseIdent()
			if !ok {
				return ast.NoItemID, false
			}
			ec.Alias = alias.Text
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern crate"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewExternCrate(st.head(p), ec), true
}

// parseItemList читает `{ #![..] items }` для mod, impl, trait и extern-блоков.
func (p *Parser) parseItemList(what string) ([]ast.Attr, []ast.ItemID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open "+what); !ok {
		return nil, nil, false
	}
	inner := p.parseInnerAttrs()
	var items []ast.ItemID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed '{' in "+what)
			return nil, nil, false
		}
		id, ok := p.parseItem()
		if !ok {
			return nil, nil, false
		}
		items = append(items, id)
	}
	p.advance()
	return inner, items, true
}

func (p *Parser) parseModItem(st itemStart) (ast.ItemID, bool) {
	p.advance() // mod
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	m := ast.ModItem{Name: ast.Ident{Name: name.Text, Span: name.Span}}
	if p.eat(token.Semicolon) {
		return p.arenas.Items.NewMod(st.head(p), m), true
	}
	bodyStart := p.pos
	inner, items, ok := p.parseItemList("module")
	if !ok {
		return ast.NoItemID, false
	}
	m.Inline = true
	m.InnerAttrs = inner
	m.Items = items
	m.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Items.NewMod(st.head(p), m), true
}

func (p *Parser) parseExternBlock(st itemStart) (ast.ItemID, bool) {
	p.advance() // extern
	var eb ast.ExternBlockItem
	if p.at_or(token.StringLit, token.RawStringLit) {
		eb.Abi = p.advance().Text
	}
	bodyStart := p.pos
	inner, items, ok := p.parseItemList("extern block")
	if !ok {
		return ast.NoItemID, false
	}
	eb.InnerAttrs = inner
	eb.Items = items
	eb.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Items.NewExternBlock(st.head(p), eb), true
}

func (p *Parser) parseImplItem(st itemStart) (ast.ItemID, bool) {
	var im ast.ImplItem
	im.Unsafe = p.eat(token.KwUnsafe)
	p.advance() // impl
	var ok bool
	if p.atLt() {
		if im.Generics, ok = p.parseGenerics(); !ok {
			return ast.NoItemID, false
		}
	}
	im.Negative = p.eat(token.Bang)
	first, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	if p.eat(token.KwFor) {
		im.Trait = first
		if im.SelfType, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	} else {
		im.SelfType = first
	}
	if im.Generics.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	bodyStart := p.pos
	inner, items, ok := p.parseItemList("impl block")
	if !ok {
		return ast.NoItemID, false
	}
	im.InnerAttrs = inner
	im.Items = items
	im.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Items.NewImpl(st.head(p), im), true
}

func (p *Parser) parseTraitItem(st itemStart) (ast.ItemID, bool) {
	var tr ast.TraitItem
	tr.Unsafe = p.eat(token.KwUnsafe)
	if p.at(token.Ident) && p.peek().Text == "auto" {
		p.advance()
		tr.Auto = true
	}
	p.advance() // trait
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	tr.Name = ast.Ident{Name: name.Text, Span: name.Span}
	if tr.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if p.eat(token.Colon) {
		if tr.Supertraits, ok = p.parseBounds(); !ok {
			return ast.NoItemID, false
		}
	}
	if tr.Generics.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	bodyStart := p.pos
	inner, items, ok := p.parseItemList("trait")
	if !ok {
		return ast.NoItemID, false
	}
	tr.InnerAttrs = inner
	tr.Items = items
	tr.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Items.NewTrait(st.head(p), tr), true
}
