package parser

import (
	"slices"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/lexer"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	// Errors: число ошибок (лексера и парсера), увиденных при разборе.
	Errors uint
}

// Parser: состояние парсера на один поток токенов
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// noStruct запрещает struct-литералы: в условиях if/while/match
	// `x {` начинает блок, а не литерал.
	noStruct bool
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	if opts.Reporter != nil {
		opts.Reporter = diag.NewDedupReporter(opts.Reporter)
	}
	counter := &errorCounter{next: opts.Reporter}
	toks := lexer.New(file, lexer.Options{Reporter: counter}).All()

	p := newParser(toks, arenas, opts)
	p.opts.CurrentErrors = counter.errors
	p.file = arenas.NewFile(source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))})

	f := arenas.Files.Get(p.file)
	f.Comments = collectComments(toks)
	f.InnerAttrs = p.parseInnerAttrs()
	p.parseItems()

	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func newParser(toks []token.Token, arenas *ast.Builder, opts Options) *Parser {
	p := &Parser{
		toks:   toks,
		arenas: arenas,
		opts:   opts,
	}
	if len(toks) > 0 {
		p.lastSpan = source.Span{File: toks[0].Span.File, Start: toks[0].Span.Start, End: toks[0].Span.Start}
	}
	return p
}

func collectComments(toks []token.Token) []token.Trivia {
	var out []token.Trivia
	for _, tok := range toks {
		out = append(out, tok.Comments()...)
	}
	return out
}

// errorCounter пропускает диагностики лексера дальше и считает ошибки.
type errorCounter struct {
	next   diag.Reporter
	errors uint
}

func (c *errorCounter) Report(d diag.Diagnostic) {
	if d.IsError() {
		c.errors++
	}
	if c.next != nil {
		c.next.Report(d)
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		start := p.pos
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop(start)
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' или '}' на нулевой глубине, либо до стартового
// токена следующего item. Хотя бы один токен съедается всегда.
func (p *Parser) resyncTop(start int) {
	if p.pos == start && !p.at(token.EOF) {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
				p.advance()
				continue
			}
			depth--
			if depth == 0 && p.at(token.RBrace) {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && p.peek().HasNewlineBefore() && isTopLevelStarter(p.peek().Kind) {
				return
			}
		}
		p.advance()
	}
}

// isTopLevelStarter reports whether k usually begins an item.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwUse, token.KwFn, token.KwPub, token.KwStruct, token.KwEnum, token.KwImpl,
		token.KwTrait, token.KwMod, token.KwConst, token.KwStatic, token.KwType,
		token.KwExtern, token.Pound:
		return true
	default:
		return false
	}
}
