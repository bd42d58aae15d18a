package ast

import (
	"rfmt/internal/source"
)

type PatKind uint8

const (
	PatWild PatKind = iota
	PatIdent
	PatLit
	PatRange
	PatTuple
	PatSlice
	PatPath
	PatTupleStruct
	PatStruct
	PatRef
	PatOr
	PatRest
	PatParen
	PatMacro
)

// Pat: образец. Поля используются в зависимости от Kind.
type Pat struct {
	Kind PatKind
	Span source.Span

	// PatIdent: ref mut name @ Sub
	Name  Ident
	ByRef bool
	Mut   bool
	Sub   PatID

	// PatLit хранит литерал (возможно с унарным минусом) в Lo.
	Lo, Hi  ExprID
	RangeOp string

	Path Path
	// Elems: кортеж, срез, tuple-struct и альтернативы PatOr.
	Elems   []PatID
	Fields  []FieldPat
	HasRest bool
	// Elem: PatRef и PatParen.
	Elem  PatID
	Macro *MacroCall
}

// FieldPat: поле образца структуры; Shorthand для `Foo { x, ref y }`.
type FieldPat struct {
	Span      source.Span
	Attrs     []Attr
	Name      Ident
	Pat       PatID
	Shorthand bool
}

type Pats struct {
	Arena *Arena[Pat]
}

func NewPats(capHint uint) *Pats {
	return &Pats{Arena: NewArena[Pat](capHint)}
}

func (p *Pats) New(pat Pat) PatID {
	return PatID(p.Arena.Allocate(pat))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}
