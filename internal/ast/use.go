package ast

import "rfmt/internal/source"

type UseTreeKind uint8

const (
	// UseSimple: a::b или a::b as c.
	UseSimple UseTreeKind = iota
	// UseGlob: a::*.
	UseGlob
	// UseNested: a::{..}.
	UseNested
)

// UseTree: дерево импорта. Prefix может быть пустым (`{a, b}`, `*`).
type UseTree struct {
	Span     source.Span
	Global   bool
	Prefix   []Ident
	Kind     UseTreeKind
	Alias    string
	Children []UseTree
	// BraceSpan: {..} для UseNested.
	BraceSpan source.Span
}

type UseItem struct {
	Tree UseTree
}

func (i *Items) NewUse(head ItemHead, u UseItem) ItemID {
	return i.new(ItemUse, head, i.Uses.Allocate(u))
}

func (i *Items) Use(id ItemID) (*UseItem, bool) {
	return itemPayload(i, i.Uses, id, ItemUse)
}
