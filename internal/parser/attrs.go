package parser

import (
	"slices"
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

func (p *Parser) atOuterAttr() bool {
	return p.at(token.Pound) && p.peekN(1).Kind == token.LBracket
}

func (p *Parser) atInnerAttr() bool {
	return p.at(token.Pound) && p.peekN(1).Kind == token.Bang && p.peekN(2).Kind == token.LBracket
}

func (p *Parser) parseOuterAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.atOuterAttr() {
		attr, ok := p.parseAttr()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseInnerAttrs читает #![..] в начале файла, модуля или блока.
func (p *Parser) parseInnerAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.atInnerAttr() {
		attr, ok := p.parseAttr()
		if !ok {
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	start := p.pos
	p.advance() // #
	inner := p.eat(token.Bang)
	if !p.at(token.LBracket) {
		p.unexpected("'['")
		return ast.Attr{}, false
	}
	body, _, ok := p.parseTokenTree()
	if !ok {
		return ast.Attr{}, false
	}
	return ast.Attr{
		Span:  p.spanFrom(start),
		Inner: inner,
		Body:  strings.TrimSpace(tokensText(body)),
	}, true
}

// parseTokenTree съедает сбалансированную группу (..), [..] или {..}
// и возвращает токены внутри неё и закрывающий токен.
func (p *Parser) parseTokenTree() ([]token.Token, token.Token, bool) {
	openTok := p.advance()
	stack := []token.Kind{closerOf(openTok.Kind)}
	begin := p.pos
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, openTok.Span, "unclosed delimiter '"+openTok.Text+"'")
			return nil, token.Token{}, false
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, closerOf(tok.Kind))
		case token.RParen, token.RBracket, token.RBrace:
			if tok.Kind != stack[len(stack)-1] {
				p.err(diag.SynUnclosedDelimiter, "mismatched closing delimiter '"+tok.Text+"'")
				return nil, token.Token{}, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				inner := slices.Clone(p.toks[begin:p.pos])
				return inner, p.advance(), true
			}
		}
		p.advance()
	}
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

// tokensText восстанавливает исходный текст токенов вместе с trivia между ними.
func tokensText(toks []token.Token) string {
	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 {
			for _, tv := range tok.Leading {
				sb.WriteString(tv.Text)
			}
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func (p *Parser) parseVisibility() ast.Visibility {
	if !p.at(token.KwPub) {
		return ast.Visibility{}
	}
	start := p.pos
	p.advance()
	vis := ast.Visibility{Kind: ast.VisPub}
	if p.at(token.LParen) {
		next := p.peekN(1).Kind
		restricted := next == token.KwIn ||
			((next == token.KwCrate || next == token.KwSuper || next == token.KwSelfValue) && p.peekN(2).Kind == token.RParen)
		if restricted {
			inner, _, ok := p.parseTokenTree()
			if ok {
				vis.Kind = ast.VisRestricted
				vis.Scope = strings.Join(strings.Fields(tokensText(inner)), " ")
			}
		}
	}
	vis.Span = p.spanFrom(start)
	return vis
}
