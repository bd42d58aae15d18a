package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// parseGenerics читает <..>; без '<' возвращает пустые Generics.
func (p *Parser) parseGenerics() (ast.Generics, bool) {
	var g ast.Generics
	if !p.atLt() {
		return g, true
	}
	start := p.pos
	p.eatLt()
	for !p.eatGt() {
		param, ok := p.parseGenericParam()
		if !ok {
			return g, false
		}
		g.Params = append(g.Params, param)
		if !p.eat(token.Comma) {
			if !p.eatGt() {
				p.unexpected("',' or '>' in generic parameters")
				return g, false
			}
			break
		}
	}
	g.Span = p.spanFrom(start)
	return g, true
}

func (p *Parser) parseGenericParam() (ast.GenericParam, bool) {
	start := p.pos
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.GenericParam{}, false
	}
	param := ast.GenericParam{Attrs: attrs}
	tok := p.peek()
	switch tok.Kind {
	case token.Lifetime:
		p.advance()
		param.Kind = ast.GenericLifetime
		param.Name = ast.Ident{Name: tok.Text, Span: tok.Span}
		if p.eat(token.Colon) {
			if param.Bounds, ok = p.parseBounds(); !ok {
				return param, false
			}
		}
	case token.KwConst:
		p.advance()
		param.Kind = ast.GenericConst
		name, ok := p.parseIdent()
		if !ok {
			return param, false
		}
		param.Name = ast.Ident{Name: name.Text, Span: name.Span}
		if _, ok = p.expect(token.Colon, diag.SynExpectType, "expected ':' after const parameter"); !ok {
			return param, false
		}
		if param.ConstType, ok = p.parseType(); !ok {
			return param, false
		}
		if p.eat(token.Assign) {
			if param.ConstDefault, ok = p.parseConstArg(); !ok {
				return param, false
			}
		}
	default:
		name, ok := p.parseIdent()
		if !ok {
			return param, false
		}
		param.Kind = ast.GenericType
		param.Name = ast.Ident{Name: name.Text, Span: name.Span}
		if p.eat(token.Colon) {
			if param.Bounds, ok = p.parseBounds(); !ok {
				return param, false
			}
		}
		if p.eat(token.Assign) {
			if param.Default, ok = p.parseType(); !ok {
				return param, false
			}
		}
	}
	param.Span = p.spanFrom(start)
	return param, true
}

// parseConstArg: константа в generic-позиции: блок, литерал или путь.
func (p *Parser) parseConstArg() (ast.ExprID, bool) {
	switch {
	case p.at(token.LBrace):
		return p.parseBlockExpr()
	case p.at(token.Minus), p.peek().IsLiteral():
		return p.parseUnaryExpr()
	default:
		return p.parsePathExpr()
	}
}

func (p *Parser) atBoundStart() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.Question, token.KwFor, token.ColonColon:
		return true
	default:
		return p.peek().IsPathSegment()
	}
}

// parseBounds: A + 'b + ?Sized + for<'c> Fn(&'c u8). Пустой список допустим.
func (p *Parser) parseBounds() ([]ast.Bound, bool) {
	var bounds []ast.Bound
	for p.atBoundStart() {
		start := p.pos
		var b ast.Bound
		switch {
		case p.at(token.Lifetime):
			b.Lifetime = p.advance().Text
		default:
			if p.at(token.KwFor) {
				lts, ok := p.parseForLifetimes()
				if !ok {
					return nil, false
				}
				b.ForLifetimes = lts
			}
			b.Maybe = p.eat(token.Question)
			trait, ok := p.parseTypePath()
			if !ok {
				return nil, false
			}
			b.Trait = trait
		}
		b.Span = p.spanFrom(start)
		bounds = append(bounds, b)
		if !p.eat(token.Plus) {
			break
		}
	}
	return bounds, true
}

// parseForLifetimes: for<'a, 'b>
func (p *Parser) parseForLifetimes() ([]string, bool) {
	p.advance() // for
	if !p.eatLt() {
		p.unexpected("'<' after 'for'")
		return nil, false
	}
	var lts []string
	for !p.eatGt() {
		tok, ok := p.expect(token.Lifetime, diag.SynUnexpectedToken, "expected lifetime in for<..>")
		if !ok {
			return nil, false
		}
		lts = append(lts, tok.Text)
		if !p.eat(token.Comma) {
			if !p.eatGt() {
				p.unexpected("'>'")
				return nil, false
			}
			break
		}
	}
	return lts, true
}

func (p *Parser) parseWhereClause() (*ast.WhereClause, bool) {
	if !p.at(token.KwWhere) {
		return nil, true
	}
	start := p.pos
	p.advance()
	wc := &ast.WhereClause{}
	for p.atWherePredicateStart() {
		predStart := p.pos
		var pred ast.WherePredicate
		if p.at(token.Lifetime) {
			pred.Lifetime = p.advance().Text
		} else {
			if p.at(token.KwFor) {
				lts, ok := p.parseForLifetimes()
				if !ok {
					return nil, false
				}
				pred.ForLifetimes = lts
			}
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			pred.Bounded = ty
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in where predicate"); !ok {
			return nil, false
		}
		bounds, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		pred.Bounds = bounds
		pred.Span = p.spanFrom(predStart)
		wc.Predicates = append(wc.Predicates, pred)
		if !p.eat(token.Comma) {
			break
		}
	}
	wc.Span = p.spanFrom(start)
	return wc, true
}

func (p *Parser) atWherePredicateStart() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.KwFor, token.Amp, token.AndAnd, token.LParen, token.LBracket,
		token.Star, token.ColonColon, token.KwDyn, token.KwImpl:
		return true
	default:
		return p.peek().IsPathSegment()
	}
}
