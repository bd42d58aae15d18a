package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// parseIfExpr: if cond { .. } [else if .. | else { .. }]
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	start := p.pos
	p.advance() // if
	cond, ok := p.parseCond()
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			els, ok = p.parseIfExpr()
		} else {
			els, ok = p.parseBlockExpr()
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewIf(p.spanFrom(start), cond, then, els), true
}

// parseLetExpr: `let PAT = EXPR` внутри условия.
// Инициализатор не может содержать || и &&: они связывают цепочку let.
func (p *Parser) parseLetExpr() (ast.ExprID, bool) {
	start := p.pos
	p.advance() // let
	pat, ok := p.parsePat()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let expression"); !ok {
		return ast.NoExprID, false
	}
	init, ok := p.parseBinaryExpr(precComparison)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLet(p.spanFrom(start), pat, init), true
}

func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	start := p.pos
	p.advance() // match
	data := ast.ExprMatchData{}
	var ok bool
	if data.Scrutinee, ok = p.parseCond(); !ok {
		return ast.NoExprID, false
	}
	bodyStart := p.pos
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after match scrutinee"); !ok {
		return ast.NoExprID, false
	}
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	data.InnerAttrs = p.parseInnerAttrs()
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, p.toks[bodyStart].Span, "unclosed '{' in match")
			return ast.NoExprID, false
		}
		arm, ok := p.parseMatchArm()
		if !ok {
			return ast.NoExprID, false
		}
		data.Arms = append(data.Arms, arm)
	}
	p.advance()
	data.BodySpan = p.spanFrom(bodyStart)
	return p.arenas.Exprs.NewMatch(p.spanFrom(start), data), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	start := p.pos
	arm := ast.MatchArm{}
	var ok bool
	if arm.Attrs, ok = p.parseOuterAttrs(); !ok {
		return arm, false
	}
	if arm.Pat, ok = p.parsePat(); !ok {
		return arm, false
	}
	if p.eat(token.KwIf) {
		if arm.Guard, ok = p.parseExpr(); !ok {
			return arm, false
		}
	}
	if _, ok = p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm"); !ok {
		return arm, false
	}
	if arm.Body, ok = p.parseStmtExpr(); !ok {
		return arm, false
	}
	arm.Span = p.spanFrom(start)
	arm.Comma = p.eat(token.Comma)
	if !arm.Comma && !p.at(token.RBrace) && !p.isBlockLike(arm.Body) {
		p.unexpected("',' after match arm")
		return arm, false
	}
	return arm, true
}

// parseLabeledExpr: 'a: loop { .. } | 'a: { .. }
func (p *Parser) parseLabeledExpr() (ast.ExprID, bool) {
	start := p.pos
	label := p.advance().Text
	p.advance() // :
	switch p.peek().Kind {
	case token.KwLoop, token.KwWhile, token.KwFor:
		return p.parseLoopExpr(start, label)
	case token.LBrace:
		return p.finishBlockExpr(start, ast.ExprBlockData{Label: label})
	}
	p.unexpected("loop or block after label")
	return ast.NoExprID, false
}

func (p *Parser) parseLoopExpr(start int, label string) (ast.ExprID, bool) {
	data := ast.ExprLoopData{Label: label}
	kw := p.advance()
	kind := ast.ExprLoop
	var ok bool
	switch kw.Kind {
	case token.KwWhile:
		kind = ast.ExprWhile
		if data.Cond, ok = p.parseCond(); !ok {
			return ast.NoExprID, false
		}
	case token.KwFor:
		kind = ast.ExprFor
		if data.Pat, ok = p.parsePat(); !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in for loop"); !ok {
			return ast.NoExprID, false
		}
		if data.Iter, ok = p.parseCond(); !ok {
			return ast.NoExprID, false
		}
	}
	if data.Body, ok = p.parseBlock(); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLoop(kind, p.spanFrom(start), data), true
}

// parseJumpExpr: return [x] | break ['a] [x] | continue ['a]
func (p *Parser) parseJumpExpr() (ast.ExprID, bool) {
	start := p.pos
	kw := p.advance()
	kind := ast.ExprReturn
	switch kw.Kind {
	case token.KwBreak:
		kind = ast.ExprBreak
	case token.KwContinue:
		kind = ast.ExprContinue
	}
	label := ""
	if kind != ast.ExprReturn && p.at(token.Lifetime) {
		label = p.advance().Text
	}
	x := ast.NoExprID
	if kind != ast.ExprContinue && p.canStartRangeEnd() {
		var ok bool
		if x, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewJump(kind, p.spanFrom(start), label, x), true
}
