package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// atMacroCall: path ! (..) | path ! [..] | path ! {..} | macro_rules! name {..}
func (p *Parser) atMacroCall() bool {
	i := 0
	if p.peekN(i).Kind == token.ColonColon {
		i++
	}
	for {
		if !p.peekN(i).IsPathSegment() {
			return false
		}
		i++
		if p.peekN(i).Kind != token.ColonColon {
			break
		}
		i++
	}
	if p.peekN(i).Kind != token.Bang {
		return false
	}
	switch p.peekN(i + 1).Kind {
	case token.LParen, token.LBracket, token.LBrace:
		return true
	case token.Ident:
		return p.peekN(i+2).Kind == token.LBrace || p.peekN(i+2).Kind == token.LParen
	default:
		return false
	}
}

func (p *Parser) parseMacroCall() (*ast.MacroCall, bool) {
	start := p.pos
	path, ok := p.parsePath(false)
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Bang, diag.SynUnexpectedToken, "expected '!' in macro invocation"); !ok {
		return nil, false
	}
	m := &ast.MacroCall{Path: path}
	if p.at(token.Ident) {
		tok := p.advance()
		m.Ident = ast.Ident{Name: tok.Text, Span: tok.Span}
	}
	openTok := p.peek()
	switch openTok.Kind {
	case token.LParen, token.LBracket, token.LBrace:
	default:
		p.unexpected("macro delimiter")
		return nil, false
	}
	body, closeTok, ok := p.parseTokenTree()
	if !ok {
		return nil, false
	}
	m.Delim = openTok.Kind
	m.Body = body
	m.BodySpan = source.Span{File: openTok.Span.File, Start: openTok.Span.End, End: closeTok.Span.Start}
	m.Span = p.spanFrom(start)
	return m, true
}

// parseMacroItem: вызов макроса на уровне элементов; для (..) и [..] нужна ';'.
func (p *Parser) parseMacroItem(st itemStart) (ast.ItemID, bool) {
	m, ok := p.parseMacroCall()
	if !ok {
		return ast.NoItemID, false
	}
	item := ast.MacroItem{Macro: m}
	if m.Delim == token.LBrace {
		item.Semi = p.eat(token.Semicolon)
	} else {
		if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro invocation"); !ok {
			return ast.NoItemID, false
		}
		item.Semi = true
	}
	return p.arenas.Items.NewMacro(st.head(p), item), true
}

// MacroArgs: тело макроса, разобранное как список выражений.
type MacroArgs struct {
	Exprs []ast.ExprID
	// Repeat: форма [x; n]: Exprs содержит ровно два выражения.
	Repeat bool
	// Trailing: в исходнике после последнего аргумента стояла запятая.
	Trailing bool
}

// ParseMacroArgs пробует разобрать тело макроса как `expr, expr, ..`
// (или `expr; expr` для [..]). Комментарии внутри тела не поддерживаются:
// такой макрос остаётся как есть.
func ParseMacroArgs(m *ast.MacroCall, arenas *ast.Builder, opts Options) (MacroArgs, bool) {
	var args MacroArgs
	if m == nil || m.Ident.Name != "" || m.Delim == token.LBrace {
		return args, false
	}
	toks := make([]token.Token, 0, len(m.Body)+1)
	for i, tok := range m.Body {
		if i > 0 && len(tok.Comments()) > 0 {
			return args, false
		}
		toks = append(toks, tok)
	}
	if len(toks) > 0 && len(toks[0].Comments()) > 0 {
		return args, false
	}
	toks = append(toks, token.Token{
		Kind: token.EOF,
		Span: source.Span{File: m.BodySpan.File, Start: m.BodySpan.End, End: m.BodySpan.End},
	})

	opts.CurrentErrors = 0
	p := newParser(toks, arenas, opts)
	for !p.at(token.EOF) {
		x, ok := p.parseExpr()
		if !ok {
			return args, false
		}
		args.Exprs = append(args.Exprs, x)
		if m.Delim == token.LBracket && len(args.Exprs) == 1 && p.eat(token.Semicolon) {
			args.Repeat = true
			n, ok := p.parseExpr()
			if !ok || !p.at(token.EOF) {
				return args, false
			}
			args.Exprs = append(args.Exprs, n)
			return args, true
		}
		if !p.eat(token.Comma) {
			break
		}
		args.Trailing = p.at(token.EOF)
	}
	if !p.at(token.EOF) || p.IsError() {
		return args, false
	}
	return args, true
}
