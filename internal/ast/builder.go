package ast

import (
	"rfmt/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder владеет всеми аренами одного дерева разбора.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
	Types *Types
	Pats  *Pats
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Items: NewItems(hints.Items),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Types: NewTypes(hints.Exprs),
		Pats:  NewPats(hints.Exprs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// ExprSpan, TypeSpan и PatSpan возвращают пустой span для невалидного ID.
func (b *Builder) ExprSpan(id ExprID) source.Span {
	if e := b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (b *Builder) TypeSpan(id TypeID) source.Span {
	if t := b.Types.Get(id); t != nil {
		return t.Span
	}
	return source.Span{}
}

func (b *Builder) PatSpan(id PatID) source.Span {
	if p := b.Pats.Get(id); p != nil {
		return p.Span
	}
	return source.Span{}
}

func (b *Builder) ItemSpan(id ItemID) source.Span {
	if it := b.Items.Get(id); it != nil {
		return it.Span
	}
	return source.Span{}
}

func (b *Builder) StmtSpan(id StmtID) source.Span {
	if st := b.Stmts.Get(id); st != nil {
		return st.Span
	}
	return source.Span{}
}
