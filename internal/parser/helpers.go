package parser

import (
	"slices"

	"rfmt/internal/diag"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// spanFrom покрывает токены от start до последнего съеденного.
func (p *Parser) spanFrom(start int) source.Span {
	first := p.toks[start].Span
	if p.pos == start {
		return source.Span{File: first.File, Start: first.Start, End: first.Start}
	}
	return first.Cover(p.lastSpan)
}

// splitFirst отрезает первый символ составного токена: `>>` → `>` `>`.
// Оба куска остаются в потоке, так что индексы токенов до p.pos не сдвигаются.
func (p *Parser) splitFirst(first, rest token.Kind) token.Token {
	tok := p.toks[p.pos]
	head := token.Token{
		Kind:    first,
		Text:    tok.Text[:1],
		Span:    source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1},
		Leading: tok.Leading,
	}
	tail := token.Token{
		Kind: rest,
		Text: tok.Text[1:],
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
	}
	p.toks[p.pos] = head
	p.toks = slices.Insert(p.toks, p.pos+1, tail)
	return p.advance()
}

// eatGt съедает '>' закрывающий generic-список, расщепляя >>, >=, >>=.
func (p *Parser) eatGt() bool {
	switch p.peek().Kind {
	case token.Gt:
		p.advance()
	case token.Shr:
		p.splitFirst(token.Gt, token.Gt)
	case token.GtEq:
		p.splitFirst(token.Gt, token.Assign)
	case token.ShrAssign:
		p.splitFirst(token.Gt, token.GtEq)
	default:
		return false
	}
	return true
}

// eatLt съедает '<', расщепляя '<<'.
func (p *Parser) eatLt() bool {
	switch p.peek().Kind {
	case token.Lt:
		p.advance()
	case token.Shl:
		p.splitFirst(token.Lt, token.Lt)
	default:
		return false
	}
	return true
}

func (p *Parser) atLt() bool {
	return p.at_or(token.Lt, token.Shl)
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) unexpected(what string) bool {
	tok := p.peek()
	text := tok.Text
	if tok.Kind == token.EOF {
		text = "end of file"
	}
	return p.err(diag.SynUnexpectedToken, "expected "+what+", found \""+text+"\"")
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(diag.New(sev, code, sp, msg))
	return true
}

// parseIdent: ожидает идентификатор.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	return token.Token{}, false
}

// parseDelimited разбирает список `open item, item, close` с необязательной
// завершающей запятой. each вызывается на каждом элементе.
func (p *Parser) parseDelimited(lk, rk token.Kind, what string, each func() bool) (source.Span, bool) {
	start := p.pos
	if _, ok := p.expect(lk, diag.SynUnexpectedToken, "expected '"+lk.Text()+"'"); !ok {
		return source.Span{}, false
	}
	for !p.at(rk) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed '"+lk.Text()+"' in "+what)
			return source.Span{}, false
		}
		if !each() {
			return source.Span{}, false
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(rk, diag.SynUnclosedDelimiter, "expected '"+rk.Text()+"' to close "+what); !ok {
		return source.Span{}, false
	}
	return p.spanFrom(start), true
}
