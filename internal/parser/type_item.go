package parser

import (
	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

func (p *Parser) parseStructItem(st itemStart) (ast.ItemID, bool) {
	p.advance() // struct
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	s := ast.StructItem{Name: ast.Ident{Name: name.Text, Span: name.Span}}
	if s.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if s.Generics.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	switch {
	case p.at(token.LBrace):
		s.Kind = ast.StructNamed
		if s.Fields, s.BodySpan, ok = p.parseNamedFields(); !ok {
			return ast.NoItemID, false
		}
	case p.at(token.LParen):
		s.Kind = ast.StructTuple
		if s.Fields, s.BodySpan, ok = p.parseTupleFields(); !ok {
			return ast.NoItemID, false
		}
		if s.Generics.Where == nil {
			if s.Generics.Where, ok = p.parseWhereClause(); !ok {
				return ast.NoItemID, false
			}
		}
		if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct"); !ok {
			return ast.NoItemID, false
		}
	default:
		s.Kind = ast.StructUnit
		if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after unit struct"); !ok {
			return ast.NoItemID, false
		}
	}
	return p.arenas.Items.NewStruct(st.head(p), s), true
}

func (p *Parser) parseNamedFields() ([]ast.FieldDef, source.Span, bool) {
	var fields []ast.FieldDef
	span, ok := p.parseDelimited(token.LBrace, token.RBrace, "field list", func() bool {
		start := p.pos
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return false
		}
		f := ast.FieldDef{Attrs: attrs, Vis: p.parseVisibility()}
		name, ok := p.parseIdent()
		if !ok {
			return false
		}
		f.Name = ast.Ident{Name: name.Text, Span: name.Span}
		if _, ok = p.expect(token.Colon, diag.SynExpectType, "expected ':' after field name"); !ok {
			return false
		}
		if f.Type, ok = p.parseType(); !ok {
			return false
		}
		f.Span = p.spanFrom(start)
		fields = append(fields, f)
		return true
	})
	return fields, span, ok
}

func (p *Parser) parseTupleFields() ([]ast.FieldDef, source.Span, bool) {
	var fields []ast.FieldDef
	span, ok := p.parseDelimited(token.LParen, token.RParen, "tuple field list", func() bool {
		start := p.pos
		attrs, ok := p.parseOuterAttrs()
		if !ok {
			return false
		}
		f := ast.FieldDef{Attrs: attrs, Vis: p.parseVisibility()}
		if f.Type, ok = p.parseType(); !ok {
			return false
		}
		f.Span = p.spanFrom(start)
		fields = append(fields, f)
		return true
	})
	return fields, span, ok
}

func (p *Parser) parseEnumItem(st itemStart) (ast.ItemID, bool) {
	p.advance() // enum
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	e := ast.EnumItem{Name: ast.Ident{Name: name.Text, Span: name.Span}}
	if e.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if e.Generics.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	e.BodySpan, ok = p.parseDelimited(token.LBrace, token.RBrace, "enum body", func() bool {
		v, ok := p.parseVariant()
		if ok {
			e.Variants = append(e.Variants, v)
		}
		return ok
	})
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewEnum(st.head(p), e), true
}

func (p *Parser) parseVariant() (ast.Variant, bool) {
	start := p.pos
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return ast.Variant{}, false
	}
	p.parseVisibility()
	name, ok := p.parseIdent()
	if !ok {
		return ast.Variant{}, false
	}
	v := ast.Variant{Attrs: attrs, Name: ast.Ident{Name: name.Text, Span: name.Span}, Kind: ast.StructUnit}
	switch {
	case p.at(token.LBrace):
		v.Kind = ast.StructNamed
		v.Fields, v.BodySpan, ok = p.parseNamedFields()
	case p.at(token.LParen):
		v.Kind = ast.StructTuple
		v.Fields, v.BodySpan, ok = p.parseTupleFields()
	}
	if !ok {
		return v, false
	}
	if p.eat(token.Assign) {
		if v.Discriminant, ok = p.parseExpr(); !ok {
			return v, false
		}
	}
	v.Span = p.spanFrom(start)
	return v, true
}

func (p *Parser) parseTypeAlias(st itemStart) (ast.ItemID, bool) {
	p.advance() // type
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	t := ast.TypeAliasItem{Name: ast.Ident{Name: name.Text, Span: name.Span}}
	if t.Generics, ok = p.parseGenerics(); !ok {
		return ast.NoItemID, false
	}
	if p.eat(token.Colon) {
		if t.Bounds, ok = p.parseBounds(); !ok {
			return ast.NoItemID, false
		}
	}
	if t.Generics.Where, ok = p.parseWhereClause(); !ok {
		return ast.NoItemID, false
	}
	if p.eat(token.Assign) {
		if t.Type, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
		if t.Generics.Where == nil {
			if t.Generics.Where, ok = p.parseWhereClause(); !ok {
				return ast.NoItemID, false
			}
		}
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewTypeAlias(st.head(p), t), true
}
