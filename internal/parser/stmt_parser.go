package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.pos
	if p.eat(token.Semicolon) {
		return p.arenas.Stmts.New(ast.Stmt{Kind: ast.StmtEmpty, Span: p.spanFrom(start)}), true
	}
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.NoStmtID, false
	}

	switch {
	case p.at(token.KwLet):
		return p.parseLetStmt(start, attrs)
	case p.isItemStart():
		st := itemStart{pos: start, attrs: attrs}
		st.vis = p.parseVisibility()
		itemID, ok := p.parseItemAfterHead(st)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.New(ast.Stmt{
			Kind: ast.StmtItem,
			Span: p.spanFrom(start),
			Item: itemID,
		}), true
	}
	return p.parseExprStmt(start, attrs)
}

// parseLetStmt: let PAT [: TYPE] [= EXPR [else { .. }]];
func (p *Parser) parseLetStmt(start int, attrs []ast.Attr) (ast.StmtID, bool) {
	p.advance() // let
	st := ast.Stmt{Kind: ast.StmtLet, Attrs: attrs}
	var ok bool
	if st.Pat, ok = p.parsePat(); !ok {
		return ast.NoStmtID, false
	}
	if p.eat(token.Colon) {
		if st.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if p.eat(token.Assign) {
		if st.Init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
		if p.eat(token.KwElse) {
			if st.Else, ok = p.parseBlock(); !ok {
				return ast.NoStmtID, false
			}
		}
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
		return ast.NoStmtID, false
	}
	st.Span = p.spanFrom(start)
	return p.arenas.Stmts.New(st), true
}

// parseExprStmt: ';' обязательна, кроме блочных выражений и хвоста блока.
func (p *Parser) parseExprStmt(start int, attrs []ast.Attr) (ast.StmtID, bool) {
	x, ok := p.parseStmtExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	st := ast.Stmt{Kind: ast.StmtExpr, Attrs: attrs, Expr: x}
	st.Semi = p.eat(token.Semicolon)
	if !st.Semi && !p.at(token.RBrace) && !p.isBlockLike(x) {
		p.err(diag.SynExpectSemicolon, "expected ';' after expression, found \""+p.peek().Text+"\"")
		return ast.NoStmtID, false
	}
	st.Span = p.spanFrom(start)
	return p.arenas.Stmts.New(st), true
}

// resyncStatement прокручивает до ';' или '}' текущего блока.
// Хотя бы один токен съедается, если мы не стоим на '}'.
func (p *Parser) resyncStatement(start int) {
	if p.pos == start && !p.at_or(token.RBrace, token.EOF) {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
