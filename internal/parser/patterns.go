package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

func (p *Parser) newPat(start int, pat ast.Pat) ast.PatID {
	pat.Span = p.spanFrom(start)
	return p.arenas.Pats.New(pat)
}

// parsePat разбирает образец с альтернативами `A | B` (ведущая '|' допустима).
func (p *Parser) parsePat() (ast.PatID, bool) {
	start := p.pos
	p.eat(token.Pipe)
	first, ok := p.parsePatNoAlt()
	if !ok {
		return ast.NoPatID, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	alts := []ast.PatID{first}
	for p.eat(token.Pipe) {
		alt, ok := p.parsePatNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		alts = append(alts, alt)
	}
	return p.newPat(start, ast.Pat{Kind: ast.PatOr, Elems: alts}), true
}

func (p *Parser) parsePatNoAlt() (ast.PatID, bool) {
	start := p.pos
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.newPat(start, ast.Pat{Kind: ast.PatWild}), true

	case token.DotDot:
		p.advance()
		return p.newPat(start, ast.Pat{Kind: ast.PatRest}), true

	case token.Amp, token.AndAnd:
		if tok.Kind == token.AndAnd {
			p.splitFirst(token.Amp, token.Amp)
		} else {
			p.advance()
		}
		mut := p.eat(token.KwMut)
		elem, ok := p.parsePatNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		return p.newPat(start, ast.Pat{Kind: ast.PatRef, Mut: mut, Elem: elem}), true

	case token.LParen:
		var elems []ast.PatID
		trailing := false
		_, ok := p.parseDelimited(token.LParen, token.RParen, "tuple pattern", func() bool {
			elem, ok := p.parsePat()
			if ok {
				elems = append(elems, elem)
				trailing = p.at(token.Comma)
			}
			return ok
		})
		if !ok {
			return ast.NoPatID, false
		}
		if len(elems) == 1 && !trailing {
			return p.newPat(start, ast.Pat{Kind: ast.PatParen, Elem: elems[0]}), true
		}
		return p.newPat(start, ast.Pat{Kind: ast.PatTuple, Elems: elems}), true

	case token.LBracket:
		elems, ok := p.parsePatList(token.LBracket, token.RBracket, "slice pattern")
		if !ok {
			return ast.NoPatID, false
		}
		return p.newPat(start, ast.Pat{Kind: ast.PatSlice, Elems: elems}), true

	case token.KwRef, token.KwMut:
		return p.parseBindingPat()

	case token.Minus, token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit,
		token.CharLit, token.KwTrue, token.KwFalse:
		lit, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoPatID, false
		}
		return p.finishRangePat(start, lit, ast.Pat{Kind: ast.PatLit, Lo: lit})
	}

	if tok.Kind == token.Ident && !p.atPathContinuation(1) {
		return p.parseBindingPat()
	}
	if tok.IsPathSegment() || tok.Kind == token.ColonColon {
		return p.parsePathPat()
	}
	p.err(diag.SynExpectPattern, "expected pattern, found \""+tok.Text+"\"")
	return ast.NoPatID, false
}

// atPathContinuation: идентификатор на позиции n продолжается как путь,
// tuple-struct, struct-образец или макрос.
func (p *Parser) atPathContinuation(n int) bool {
	switch p.peekN(n).Kind {
	case token.ColonColon, token.LParen, token.LBrace, token.Bang, token.DotDot, token.DotDotEq, token.DotDotDot:
		return true
	default:
		return false
	}
}

// parseBindingPat: [ref] [mut] name [@ pat]
func (p *Parser) parseBindingPat() (ast.PatID, bool) {
	start := p.pos
	pat := ast.Pat{Kind: ast.PatIdent}
	pat.ByRef = p.eat(token.KwRef)
	pat.Mut = p.eat(token.KwMut)
	var name token.Token
	if p.at(token.KwSelfValue) {
		name = p.advance()
	} else {
		var ok bool
		if name, ok = p.parseIdent(); !ok {
			return ast.NoPatID, false
		}
	}
	pat.Name = ast.Ident{Name: name.Text, Span: name.Span}
	if p.eat(token.At) {
		sub, ok := p.parsePatNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		pat.Sub = sub
	}
	return p.newPat(start, pat), true
}

func (p *Parser) parsePathPat() (ast.PatID, bool) {
	start := p.pos
	if p.atMacroCall() {
		m, ok := p.parseMacroCall()
		if !ok {
			return ast.NoPatID, false
		}
		return p.newPat(start, ast.Pat{Kind: ast.PatMacro, Macro: m}), true
	}
	path, ok := p.parsePath(false)
	if !ok {
		return ast.NoPatID, false
	}
	switch {
	case p.at(token.LParen):
		elems, ok := p.parsePatList(token.LParen, token.RParen, "tuple struct pattern")
		if !ok {
			return ast.NoPatID, false
		}
		return p.newPat(start, ast.Pat{Kind: ast.PatTupleStruct, Path: path, Elems: elems}), true
	case p.at(token.LBrace):
		return p.parseStructPat(start, path)
	}
	pathExpr := p.arenas.Exprs.NewPath(path.Span, path)
	return p.finishRangePat(start, pathExpr, ast.Pat{Kind: ast.PatPath, Path: path})
}

// finishRangePat превращает уже прочитанную границу в диапазон, если дальше `..=`.
func (p *Parser) finishRangePat(start int, lo ast.ExprID, plain ast.Pat) (ast.PatID, bool) {
	if !p.at_or(token.DotDotEq, token.DotDotDot, token.DotDot) {
		return p.newPat(start, plain), true
	}
	op := p.advance()
	pat := ast.Pat{Kind: ast.PatRange, Lo: lo, RangeOp: op.Text}
	if p.at_or(token.Minus, token.IntLit, token.FloatLit, token.CharLit) || p.peek().IsPathSegment() {
		var hi ast.ExprID
		var ok bool
		if p.peek().IsPathSegment() {
			hi, ok = p.parsePathExpr()
		} else {
			hi, ok = p.parseUnaryExpr()
		}
		if !ok {
			return ast.NoPatID, false
		}
		pat.Hi = hi
	}
	return p.newPat(start, pat), true
}

func (p *Parser) parsePatList(lk, rk token.Kind, what string) ([]ast.PatID, bool) {
	var elems []ast.PatID
	_, ok := p.parseDelimited(lk, rk, what, func() bool {
		elem, ok := p.parsePat()
		if ok {
			elems = append(elems, elem)
		}
		return ok
	})
	return elems, ok
}

func (p *Parser) parseStructPat(start int, path ast.Path) (ast.PatID, bool) {
	pat := ast.Pat{Kind: ast.PatStruct, Path: path}
	_, ok := p.parseDelimited(token.LBrace, token.RBrace, "struct pattern", func() bool {
		fieldStart := p.pos
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return false
		}
		if p.at(token.DotDot) {
			p.advance()
			pat.HasRest = true
			return true
		}
		f := ast.FieldPat{Attrs: attrs}
		if p.at_or(token.Ident, token.IntLit) && p.peekN(1).Kind == token.Colon {
			name := p.advance()
			p.advance() // :
			f.Name = ast.Ident{Name: name.Text, Span: name.Span}
			if f.Pat, ok = p.parsePat(); !ok {
				return false
			}
		} else {
			if f.Pat, ok = p.parseBindingPat(); !ok {
				return false
			}
			f.Shorthand = true
			f.Name = p.arenas.Pats.Get(f.Pat).Name
		}
		f.Span = p.spanFrom(fieldStart)
		pat.Fields = append(pat.Fields, f)
		return true
	})
	if !ok {
		return ast.NoPatID, false
	}
	return p.newPat(start, pat), true
}
