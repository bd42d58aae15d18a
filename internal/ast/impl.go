package ast

import "rfmt/internal/source"

type ImplItem struct {
	Unsafe   bool
	Generics Generics
	Negative bool
	// Trait: NoTypeID для inherent impl.
	Trait      TypeID
	SelfType   TypeID
	InnerAttrs []Attr
	Items      []ItemID
	BodySpan   source.Span
}

type TraitItem struct {
	Unsafe      bool
	Auto        bool
	Name        Ident
	Generics    Generics
	Supertraits []Bound
	InnerAttrs  []Attr
	Items       []ItemID
	BodySpan    source.Span
}

// ModItem: Inline == false для `mod x;`.
type ModItem struct {
	Name       Ident
	Inline     bool
	InnerAttrs []Attr
	Items      []ItemID
	BodySpan   source.Span
}

type ExternCrateItem struct {
	Name  Ident
	Alias string
}

type ExternBlockItem struct {
	Abi        string
	InnerAttrs []Attr
	Items      []ItemID
	BodySpan   source.Span
}

type MacroItem struct {
	Macro *MacroCall
	Semi  bool
}

func (i *Items) NewImpl(head ItemHead, im ImplItem) ItemID {
	return i.new(ItemImpl, head, i.Impls.Allocate(im))
}

func (i *Items) Impl(id ItemID) (*ImplItem, bool) {
	return itemPayload(i, i.Impls, id, ItemImpl)
}

func (i *Items) NewTrait(head ItemHead, tr TraitItem) ItemID {
	return i.new(ItemTrait, head, i.Traits.Allocate(tr))
}

func (i *Items) Trait(id ItemID) (*TraitItem, bool) {
	return itemPayload(i, i.Traits, id, ItemTrait)
}

func (i *Items) NewMod(head ItemHead, m ModItem) ItemID {
	return i.new(ItemMod, head, i.Mods.Allocate(m))
}

func (i *Items) Mod(id ItemID) (*ModItem, bool) {
	return itemPayload(i, i.Mods, id, ItemMod)
}

func (i *Items) NewExternCrate(head ItemHead, ec ExternCrateItem) ItemID {
	return i.new(ItemExternCrate, head, i.ExternCrates.Allocate(ec))
}

func (i *Items) ExternCrate(id ItemID) (*ExternCrateItem, bool) {
	return itemPayload(i, i.ExternCrates, id, ItemExternCrate)
}

func (i *Items) NewExternBlock(head ItemHead, eb ExternBlockItem) ItemID {
	return i.new(ItemExternBlock, head, i.ExternBlocks.Allocate(eb))
}

func (i *Items) ExternBlock(id ItemID) (*ExternBlockItem, bool) {
	return itemPayload(i, i.ExternBlocks, id, ItemExternBlock)
}

func (i *Items) NewMacro(head ItemHead, m MacroItem) ItemID {
	return i.new(ItemMacro, head, i.Macros.Allocate(m))
}

func (i *Items) Macro(id ItemID) (*MacroItem, bool) {
	return itemPayload(i, i.Macros, id, ItemMacro)
}
