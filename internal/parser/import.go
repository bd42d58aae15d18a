package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// parseUseItem распознаёт формы:
//
//	use a::b;              // простой путь
//	use a::b as c;         // с алиасом (в том числе `as _`)
//	use a::*;              // glob
//	use a::{b, c::d};      // вложенная группа
//	use ::a::{self, *};    // глобальный путь, self и glob внутри группы
func (p *Parser) parseUseItem(st itemStart) (ast.ItemID, bool) {
	p.advance() // use
	tree, ok := p.parseUseTree()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use declaration"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewUse(st.head(p), ast.UseItem{Tree: tree}), true
}

func (p *Parser) parseUseTree() (ast.UseTree, bool) {
	start := p.pos
	tree := ast.UseTree{}
	tree.Global = p.eat(token.ColonColon)

	// префикс: seg (:: seg)*
	for p.peek().IsPathSegment() {
		tok := p.advance()
		tree.Prefix = append(tree.Prefix, ast.Ident{Name: tok.Text, Span: tok.Span})
		if !p.at(token.ColonColon) {
			break
		}
		p.advance()
		if !p.peek().IsPathSegment() {
			break
		}
	}
	// после "::" (или в начале) допустимы только '*' и '{'
	afterSep := len(tree.Prefix) == 0 || p.toks[p.pos-1].Kind == token.ColonColon

	switch {
	case afterSep && p.at(token.Star):
		p.advance()
		tree.Kind = ast.UseGlob

	case afterSep && p.at(token.LBrace):
		tree.Kind = ast.UseNested
		braceStart := p.pos
		_, ok := p.parseDelimited(token.LBrace, token.RBrace, "use group", func() bool {
			child, ok := p.parseUseTree()
			if ok {
				tree.Children = append(tree.Children, child)
			}
			return ok
		})
		if !ok {
			return tree, false
		}
		tree.BraceSpan = p.spanFrom(braceStart)

	case len(tree.Prefix) > 0 && !afterSep:
		tree.Kind = ast.UseSimple
		if p.eat(token.KwAs) {
			if p.eat(token.Underscore) {
				tree.Alias = "_"
			} else {
				name, ok := p.parseIdent()
				if !ok {
					return tree, false
				}
				tree.Alias = name.Text
			}
		}

	default:
		p.err(diag.SynBadUseTree, "expected identifier, '*' or '{' in use tree, found \""+p.peek().Text+"\"")
		return tree, false
	}
	tree.Span = p.spanFrom(start)
	return tree, true
}
