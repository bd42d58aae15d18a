package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// parsePrimaryExpr разбирает базовое выражение без префиксов и постфиксов.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	start := p.pos
	tok := p.peek()
	next := p.peekN(1)
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit, token.CharLit,
		token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, tok.Kind, tok.Text), true

	case token.LParen:
		return p.parseParenOrTuple()

	case token.LBracket:
		return p.parseArrayExpr()

	case token.LBrace:
		return p.parseBlockExpr()

	case token.KwUnsafe:
		if next.Kind == token.LBrace {
			p.advance()
			return p.finishBlockExpr(start, ast.ExprBlockData{Unsafe: true})
		}

	case token.KwAsync:
		switch {
		case next.Kind == token.LBrace:
			p.advance()
			return p.finishBlockExpr(start, ast.ExprBlockData{Async: true})
		case next.Kind == token.KwMove && p.peekN(2).Kind == token.LBrace:
			p.advance()
			p.advance()
			return p.finishBlockExpr(start, ast.ExprBlockData{Async: true, Move: true})
		default:
			return p.parseClosureExpr()
		}

	case token.KwMove, token.Pipe, token.OrOr:
		return p.parseClosureExpr()

	case token.KwIf:
		return p.parseIfExpr()

	case token.KwMatch:
		return p.parseMatchExpr()

	case token.KwLoop, token.KwWhile, token.KwFor:
		return p.parseLoopExpr(start, "")

	case token.Lifetime:
		if next.Kind == token.Colon {
			return p.parseLabeledExpr()
		}

	case token.KwReturn, token.KwBreak, token.KwContinue:
		return p.parseJumpExpr()

	case token.KwLet:
		return p.parseLetExpr()
	}

	if tok.IsPathSegment() || tok.Kind == token.ColonColon || p.atLt() {
		return p.parsePathLikeExpr()
	}
	p.err(diag.SynExpectExpression, "expected expression, found \""+tok.Text+"\"")
	return ast.NoExprID, false
}

// parsePathExpr: путь без struct-литерала и макроса.
func (p *Parser) parsePathExpr() (ast.ExprID, bool) {
	path, ok := p.parsePath(false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewPath(path.Span, path), true
}

func (p *Parser) parsePathLikeExpr() (ast.ExprID, bool) {
	start := p.pos
	if p.atMacroCall() {
		m, ok := p.parseMacroCall()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewMacro(m.Span, m), true
	}
	path, ok := p.parsePath(false)
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LBrace) && !p.noStruct && p.looksLikeStructLit() {
		return p.parseStructLit(start, path)
	}
	return p.arenas.Exprs.NewPath(path.Span, path), true
}

// looksLikeStructLit: `{}`, `{ a: ..`, `{ a, ..`, `{ a }`, `{ ..base }`.
func (p *Parser) looksLikeStructLit() bool {
	first := p.peekN(1)
	switch first.Kind {
	case token.RBrace, token.DotDot, token.Pound:
		return true
	case token.Ident, token.IntLit:
		switch p.peekN(2).Kind {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}

func (p *Parser) parseStructLit(start int, path ast.Path) (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	data := ast.ExprStructData{Path: path}
	bodyStart := p.pos
	p.advance() // {
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed '{' in struct literal")
			return ast.NoExprID, false
		}
		fieldStart := p.pos
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return ast.NoExprID, false
		}
		if p.eat(token.DotDot) {
			data.HasBase = true
			if !p.at(token.RBrace) {
				if data.Base, ok = p.parseExpr(); !ok {
					return ast.NoExprID, false
				}
			}
			break
		}
		var name token.Token
		if p.at(token.IntLit) {
			name = p.advance()
		} else if name, ok = p.parseIdent(); !ok {
			return ast.NoExprID, false
		}
		f := ast.FieldInit{Attrs: attrs, Name: ast.Ident{Name: name.Text, Span: name.Span}}
		if p.eat(token.Colon) {
			if f.Value, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		} else {
			f.Shorthand = true
			f.Value = p.arenas.Exprs.NewPath(name.Span, ast.Path{
				Span:     name.Span,
				Segments: []ast.PathSegment{{Name: f.Name}},
			})
		}
		f.Span = p.spanFrom(fieldStart)
		data.Fields = append(data.Fields, f)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct literal"); !ok {
		return ast.NoExprID, false
	}
	data.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Exprs.NewStruct(p.spanFrom(start), data), true
}

// parseParenOrTuple: () | (x) | (x,) | (a, b)
func (p *Parser) parseParenOrTuple() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	start := p.pos
	var elems []ast.ExprID
	trailing := false
	span, ok := p.parseDelimited(token.LParen, token.RParen, "parenthesized expression", func() bool {
		elem, ok := p.parseExpr()
		if ok {
			elems = append(elems, elem)
			trailing = p.at(token.Comma)
		}
		return ok
	})
	if !ok {
		return ast.NoExprID, false
	}
	if len(elems) == 1 && !trailing {
		return p.arenas.Exprs.NewWrap(ast.ExprParen, span, elems[0]), true
	}
	return p.arenas.Exprs.NewList(ast.ExprTuple, p.spanFrom(start), elems), true
}

// parseArrayExpr: [] | [a, b] | [x; n]
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	start := p.pos
	p.advance() // [
	var elems []ast.ExprID
	for !p.at(token.RBracket) {
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if len(elems) == 0 && p.eat(token.Semicolon) {
			n, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after repeat length"); !ok {
				return ast.NoExprID, false
			}
			return p.arenas.Exprs.NewRepeat(p.spanFrom(start), elem, n), true
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewList(ast.ExprArray, p.spanFrom(start), elems), true
}

// parseClosureExpr: [async] [move] |a, b: T| body | || body | |x| -> T { .. }
func (p *Parser) parseClosureExpr() (ast.ExprID, bool) {
	start := p.pos
	var data ast.ExprClosureData
	data.Async = p.eat(token.KwAsync)
	data.Move = p.eat(token.KwMove)
	paramsStart := p.pos
	if !p.eat(token.OrOr) {
		if _, ok := p.expect(token.Pipe, diag.SynUnexpectedToken, "expected '|' to open closure parameters"); !ok {
			return ast.NoExprID, false
		}
		for !p.at(token.Pipe) {
			paramStart := p.pos
			if _, ok := p.parseOuterAttrs(); !ok {
				return ast.NoExprID, false
			}
			pat, ok := p.parsePatNoAlt()
			if !ok {
				return ast.NoExprID, false
			}
			param := ast.ClosureParam{Pat: pat}
			if p.eat(token.Colon) {
				if param.Type, ok = p.parseType(); !ok {
					return ast.NoExprID, false
				}
			}
			param.Span = p.spanFrom(paramStart)
			data.Params = append(data.Params, param)
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(token.Pipe, diag.SynUnclosedDelimiter, "expected '|' to close closure parameters"); !ok {
			return ast.NoExprID, false
		}
	}
	data.ParamsSpan = p.spanFrom(paramsStart)

	var ok bool
	if p.eat(token.Arrow) {
		if data.Output, ok = p.parseType(); !ok {
			return ast.NoExprID, false
		}
		data.Body, ok = p.parseBlockExpr()
	} else {
		data.Body, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClosure(p.spanFrom(start), data), true
}

// parseBlock читает `{ #![..] stmts }`.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	start := p.pos
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, false
	}
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	blk := &ast.Block{InnerAttrs: p.parseInnerAttrs()}
	failed := false
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, p.toks[start].Span, "unclosed '{'")
			return nil, false
		}
		stmtStart := p.pos
		st, ok := p.parseStmt()
		if ok {
			blk.Stmts = append(blk.Stmts, st)
			continue
		}
		// ошибка в инструкции: восстанавливаемся до следующей
		failed = true
		if p.opts.Enough() {
			return nil, false
		}
		p.resyncStatement(stmtStart)
	}
	p.advance()
	if failed {
		return nil, false
	}
	blk.Span = p.spanFrom(start)
	return blk, true
}

func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	return p.finishBlockExpr(p.pos, ast.ExprBlockData{})
}

// finishBlockExpr дочитывает блок после уже съеденных модификаторов.
func (p *Parser) finishBlockExpr(start int, data ast.ExprBlockData) (ast.ExprID, bool) {
	blk, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	data.Block = blk
	return p.arenas.Exprs.NewBlock(p.spanFrom(start), data), true
}
