package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// parseFnSig: [const] [async] [unsafe] [extern "abi"] fn name<..>(..) -> T where ..
func (p *Parser) parseFnSig() (ast.FnSig, bool) {
	var sig ast.FnSig
	for qualifiers := true; qualifiers; {
		switch {
		case p.eat(token.KwConst):
			sig.Const = true
		case p.eat(token.KwAsync):
			sig.Async = true
		case p.eat(token.KwUnsafe):
			sig.Unsafe = true
		case p.eat(token.KwExtern):
			sig.HasExtern = true
			if p.at_or(token.StringLit, token.RawStringLit) {
				sig.Abi = p.advance().Text
			}
		default:
			qualifiers = false
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn'"); !ok {
		return sig, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return sig, false
	}
	sig.Name = ast.Ident{Name: name.Text, Span: name.Span}
	if sig.Generics, ok = p.parseGenerics(); !ok {
		return sig, false
	}
	if !p.parseParams(&sig) {
		return sig, false
	}
	if p.eat(token.Arrow) {
		if sig.Output, ok = p.parseType(); !ok {
			return sig, false
		}
	}
	if sig.Generics.Where, ok = p.parseWhereClause(); !ok {
		return sig, false
	}
	return sig, true
}

func (p *Parser) parseParams(sig *ast.FnSig) bool {
	span, ok := p.parseDelimited(token.LParen, token.RParen, "parameter list", func() bool {
		start := p.pos
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return false
		}
		if p.at(token.DotDotDot) {
			p.advance()
			sig.Variadic = true
			return true
		}
		param := ast.Param{Attrs: attrs}
		matched, ok := p.parseSelfParam(&param)
		if !ok {
			return false
		}
		if !matched {
			if param.Pat, ok = p.parsePatNoAlt(); !ok {
				return false
			}
			if _, ok = p.expect(token.Colon, diag.SynExpectType, "expected ':' and a parameter type"); !ok {
				return false
			}
			if param.Type, ok = p.parseType(); !ok {
				return false
			}
		}
		param.Span = p.spanFrom(start)
		sig.Params = append(sig.Params, param)
		return true
	})
	sig.ParamsSpan = span
	return ok
}

// parseSelfParam распознаёт self, mut self, &self, &'a mut self и self: T.
func (p *Parser) parseSelfParam(param *ast.Param) (matched, ok bool) {
	i := 0
	byRef := p.at(token.Amp)
	if byRef {
		i = 1
		if p.peekN(i).Kind == token.Lifetime {
			i++
		}
	}
	if p.peekN(i).Kind == token.KwMut {
		i++
	}
	if p.peekN(i).Kind != token.KwSelfValue || p.peekN(i+1).Kind == token.ColonColon {
		return false, true
	}

	if byRef {
		p.advance()
		param.Self = ast.SelfRef
		if p.at(token.Lifetime) {
			param.SelfLifetime = p.advance().Text
		}
	} else {
		param.Self = ast.SelfValue
	}
	param.SelfMut = p.eat(token.KwMut)
	p.advance() // self
	if !byRef && p.eat(token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return true, false
		}
		param.Type = ty
	}
	return true, true
}
