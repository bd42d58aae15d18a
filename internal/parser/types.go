package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

func (p *Parser) newType(start int, ty ast.Type) ast.TypeID {
	ty.Span = p.spanFrom(start)
	return p.arenas.Types.New(ty)
}

// parseType разбирает тип. Для `impl`/`dyn` границы читаются жадно.
func (p *Parser) parseType() (ast.TypeID, bool) {
	start := p.pos
	tok := p.peek()
	switch tok.Kind {
	case token.Amp, token.AndAnd:
		if tok.Kind == token.AndAnd {
			p.splitFirst(token.Amp, token.Amp)
		} else {
			p.advance()
		}
		ty := ast.Type{Kind: ast.TypeRef}
		if p.at(token.Lifetime) {
			ty.Lifetime = p.advance().Text
		}
		ty.Mut = p.eat(token.KwMut)
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		ty.Elem = elem
		return p.newType(start, ty), true

	case token.Star:
		p.advance()
		ty := ast.Type{Kind: ast.TypePtr}
		switch {
		case p.eat(token.KwMut):
			ty.Mut = true
		case p.eat(token.KwConst):
		default:
			p.unexpected("'const' or 'mut' after '*'")
			return ast.NoTypeID, false
		}
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		ty.Elem = elem
		return p.newType(start, ty), true

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		ty := ast.Type{Kind: ast.TypeSlice, Elem: elem}
		if p.eat(token.Semicolon) {
			ty.Kind = ast.TypeArray
			if ty.Len, ok = p.parseExpr(); !ok {
				return ast.NoTypeID, false
			}
		}
		if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
			return ast.NoTypeID, false
		}
		return p.newType(start, ty), true

	case token.LParen:
		return p.parseTupleType()

	case token.Bang:
		p.advance()
		return p.newType(start, ast.Type{Kind: ast.TypeNever}), true

	case token.Underscore:
		p.advance()
		return p.newType(start, ast.Type{Kind: ast.TypeInfer}), true

	case token.KwFn, token.KwUnsafe, token.KwExtern, token.KwFor:
		return p.parseFnPtrType()

	case token.KwImpl, token.KwDyn:
		p.advance()
		kind := ast.TypeImpl
		if tok.Kind == token.KwDyn {
			kind = ast.TypeDyn
		}
		bounds, ok := p.parseBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		if len(bounds) == 0 {
			p.err(diag.SynExpectType, "expected at least one bound after '"+tok.Text+"'")
			return ast.NoTypeID, false
		}
		return p.newType(start, ast.Type{Kind: kind, Bounds: bounds}), true
	}

	if p.atLt() {
		return p.parseTypePath()
	}
	if tok.IsPathSegment() || tok.Kind == token.ColonColon {
		if p.atMacroCall() {
			m, ok := p.parseMacroCall()
			if !ok {
				return ast.NoTypeID, false
			}
			return p.newType(start, ast.Type{Kind: ast.TypeMacro, Macro: m}), true
		}
		return p.parseTypePath()
	}
	p.err(diag.SynExpectType, "expected type, found \""+tok.Text+"\"")
	return ast.NoTypeID, false
}

func (p *Parser) parseTypePath() (ast.TypeID, bool) {
	start := p.pos
	path, ok := p.parsePath(true)
	if !ok {
		return ast.NoTypeID, false
	}
	return p.newType(start, ast.Type{Kind: ast.TypePath, Path: path}), true
}

// parseTupleType: () | (T) | (T,) | (A, B)
func (p *Parser) parseTupleType() (ast.TypeID, bool) {
	start := p.pos
	var elems []ast.TypeID
	trailing := false
	_, ok := p.parseDelimited(token.LParen, token.RParen, "tuple type", func() bool {
		elem, ok := p.parseType()
		if ok {
			elems = append(elems, elem)
			trailing = p.at(token.Comma)
		}
		return ok
	})
	if !ok {
		return ast.NoTypeID, false
	}
	if len(elems) == 1 && !trailing {
		return p.newType(start, ast.Type{Kind: ast.TypeParen, Elem: elems[0]}), true
	}
	return p.newType(start, ast.Type{Kind: ast.TypeTuple, Elems: elems}), true
}

// parseFnPtrType: [for<'a>] [unsafe] [extern "abi"] fn(A, name: B) -> C
func (p *Parser) parseFnPtrType() (ast.TypeID, bool) {
	start := p.pos
	ty := ast.Type{Kind: ast.TypeFn}
	if p.at(token.KwFor) {
		lts, ok := p.parseForLifetimes()
		if !ok {
			return ast.NoTypeID, false
		}
		ty.ForLifetimes = lts
		if !p.at_or(token.KwFn, token.KwUnsafe, token.KwExtern) {
			// for<'a> Trait: граница, а не fn-указатель
			p.unexpected("'fn' after for<..>")
			return ast.NoTypeID, false
		}
	}
	ty.Unsafe = p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		ty.HasExtern = true
		if p.at_or(token.StringLit, token.RawStringLit) {
			ty.Abi = p.advance().Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn'"); !ok {
		return ast.NoTypeID, false
	}
	_, ok := p.parseDelimited(token.LParen, token.RParen, "fn pointer parameters", func() bool {
		name := ""
		if p.at_or(token.Ident, token.Underscore) && p.peekN(1).Kind == token.Colon {
			name = p.advance().Text
			p.advance()
		}
		elem, ok := p.parseType()
		if ok {
			ty.Elems = append(ty.Elems, elem)
			ty.ElemNames = append(ty.ElemNames, name)
		}
		return ok
	})
	if !ok {
		return ast.NoTypeID, false
	}
	if p.eat(token.Arrow) {
		if ty.Output, ok = p.parseType(); !ok {
			return ast.NoTypeID, false
		}
	}
	return p.newType(start, ty), true
}

// parsePath разбирает путь. В выражениях generic-аргументы допустимы
// только после `::` (turbofish), в типах: сразу после сегмента.
func (p *Parser) parsePath(typeMode bool) (ast.Path, bool) {
	start := p.pos
	var path ast.Path
	if p.atLt() {
		qs, ok := p.parseQSelf()
		if !ok {
			return path, false
		}
		path.QSelf = qs
		if _, ok = p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected '::' after qualified self type"); !ok {
			return path, false
		}
	} else {
		path.Global = p.eat(token.ColonColon)
	}
	for {
		tok := p.peek()
		if !tok.IsPathSegment() {
			p.err(diag.SynExpectIdentifier, "expected path segment, found \""+tok.Text+"\"")
			return path, false
		}
		p.advance()
		seg := ast.PathSegment{Name: ast.Ident{Name: tok.Text, Span: tok.Span}}
		if typeMode {
			switch {
			case p.atLt():
				args, ok := p.parseGenericArgs(false)
				if !ok {
					return path, false
				}
				seg.Args = args
			case p.at(token.LParen):
				args, ok := p.parseFnSugarArgs()
				if !ok {
					return path, false
				}
				seg.Args = args
			}
		}
		path.Segments = append(path.Segments, seg)

		if !p.at(token.ColonColon) {
			break
		}
		next := p.peekN(1)
		if next.Kind == token.Lt || next.Kind == token.Shl {
			p.advance() // ::
			args, ok := p.parseGenericArgs(true)
			if !ok {
				return path, false
			}
			path.Segments[len(path.Segments)-1].Args = args
			if p.at(token.ColonColon) && p.peekN(1).IsPathSegment() {
				p.advance()
				continue
			}
			break
		}
		if !next.IsPathSegment() {
			break
		}
		p.advance()
	}
	path.Span = p.spanFrom(start)
	return path, true
}

// parseQSelf: <T> или <T as Trait>
func (p *Parser) parseQSelf() (*ast.QSelf, bool) {
	start := p.pos
	p.eatLt()
	qs := &ast.QSelf{}
	var ok bool
	if qs.Type, ok = p.parseType(); !ok {
		return nil, false
	}
	if p.eat(token.KwAs) {
		if qs.Trait, ok = p.parseTypePath(); !ok {
			return nil, false
		}
	}
	if !p.eatGt() {
		p.unexpected("'>' to close qualified path")
		return nil, false
	}
	qs.Span = p.spanFrom(start)
	return qs, true
}

// parseGenericArgs: <'a, T, Item = U, 3, { N + 1 }>
func (p *Parser) parseGenericArgs(turbofish bool) (*ast.GenericArgs, bool) {
	start := p.pos
	p.eatLt()
	ga := &ast.GenericArgs{Turbofish: turbofish}
	for !p.eatGt() {
		argStart := p.pos
		var arg ast.GenericArg
		var ok bool
		switch {
		case p.at(token.Lifetime):
			arg.Lifetime = p.advance().Text
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			arg.Binding = p.advance().Text
			p.advance()
			if arg.Type, ok = p.parseType(); !ok {
				return nil, false
			}
		case p.at(token.LBrace), p.at(token.Minus), p.peek().IsLiteral():
			if arg.Const, ok = p.parseConstArg(); !ok {
				return nil, false
			}
		default:
			if arg.Type, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		arg.Span = p.spanFrom(argStart)
		ga.Args = append(ga.Args, arg)
		if !p.eat(token.Comma) {
			if !p.eatGt() {
				p.unexpected("',' or '>' in generic arguments")
				return nil, false
			}
			break
		}
	}
	ga.Span = p.spanFrom(start)
	return ga, true
}

// parseFnSugarArgs: Fn(A, B) -> C
func (p *Parser) parseFnSugarArgs() (*ast.GenericArgs, bool) {
	start := p.pos
	ga := &ast.GenericArgs{Parenthesized: true}
	_, ok := p.parseDelimited(token.LParen, token.RParen, "parenthesized arguments", func() bool {
		ty, ok := p.parseType()
		if ok {
			ga.Inputs = append(ga.Inputs, ty)
		}
		return ok
	})
	if !ok {
		return nil, false
	}
	if p.eat(token.Arrow) {
		if ga.Output, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	ga.Span = p.spanFrom(start)
	return ga, true
}
