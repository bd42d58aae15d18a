package ast

import (
	"rfmt/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemImpl
	ItemTrait
	ItemMod
	ItemConst
	ItemStatic
	ItemTypeAlias
	ItemExternCrate
	ItemExternBlock
	ItemUse
	ItemMacro
)

var itemKindNames = [...]string{
	ItemFn:          "fn",
	ItemStruct:      "struct",
	ItemEnum:        "enum",
	ItemImpl:        "impl",
	ItemTrait:       "trait",
	ItemMod:         "mod",
	ItemConst:       "const",
	ItemStatic:      "static",
	ItemTypeAlias:   "type",
	ItemExternCrate: "extern crate",
	ItemExternBlock: "extern block",
	ItemUse:         "use",
	ItemMacro:       "macro",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "item?"
}

// Item: элемент модуля, impl-блока, трейта или extern-блока.
// Span начинается с первого внешнего атрибута.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Attrs   []Attr
	Vis     Visibility
	Payload PayloadID
}

type Items struct {
	Arena        *Arena[Item]
	Fns          *Arena[FnItem]
	Structs      *Arena[StructItem]
	Enums        *Arena[EnumItem]
	Impls        *Arena[ImplItem]
	Traits       *Arena[TraitItem]
	Mods         *Arena[ModItem]
	Consts       *Arena[ConstItem]
	TypeAliases  *Arena[TypeAliasItem]
	ExternCrates *Arena[ExternCrateItem]
	ExternBlocks *Arena[ExternBlockItem]
	Uses         *Arena[UseItem]
	Macros       *Arena[MacroItem]
}

// NewItems creates and returns an *Items with per-kind arenas initialized to capHint.
// If capHint is 0, NewItems uses a default initial capacity of 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Items{
		Arena:        NewArena[Item](capHint),
		Fns:          NewArena[FnItem](capHint),
		Structs:      NewArena[StructItem](small),
		Enums:        NewArena[EnumItem](small),
		Impls:        NewArena[ImplItem](small),
		Traits:       NewArena[TraitItem](small),
		Mods:         NewArena[ModItem](small),
		Consts:       NewArena[ConstItem](small),
		TypeAliases:  NewArena[TypeAliasItem](small),
		ExternCrates: NewArena[ExternCrateItem](small),
		ExternBlocks: NewArena[ExternBlockItem](small),
		Uses:         NewArena[UseItem](capHint),
		Macros:       NewArena[MacroItem](small),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, head ItemHead, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    head.Span,
		Attrs:   head.Attrs,
		Vis:     head.Vis,
		Payload: PayloadID(payload),
	}))
}

// ItemHead: общие части любого элемента.
type ItemHead struct {
	Span  source.Span
	Attrs []Attr
	Vis   Visibility
}

func itemPayload[T any](i *Items, arena *Arena[T], id ItemID, kinds ...ItemKind) (*T, bool) {
	item := i.Get(id)
	if item == nil {
		return nil, false
	}
	for _, k := range kinds {
		if item.Kind == k {
			return arena.Get(uint32(item.Payload)), true
		}
	}
	return nil, false
}
