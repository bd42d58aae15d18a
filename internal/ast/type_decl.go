package ast

import "rfmt/internal/source"

type StructKind uint8

const (
	StructNamed StructKind = iota
	StructTuple
	StructUnit
)

type FieldDef struct {
	Span  source.Span
	Attrs []Attr
	Vis   Visibility
	// Name пустой у полей tuple-структур.
	Name Ident
	Type TypeID
}

type StructItem struct {
	Name     Ident
	Generics Generics
	Kind     StructKind
	Fields   []FieldDef
	// BodySpan: {..} или (..); пустой для unit.
	BodySpan source.Span
}

type Variant struct {
	Span         source.Span
	Attrs        []Attr
	Name         Ident
	Kind         StructKind
	Fields       []FieldDef
	BodySpan     source.Span
	Discriminant ExprID
}

type EnumItem struct {
	Name     Ident
	Generics Generics
	Variants []Variant
	BodySpan source.Span
}

type TypeAliasItem struct {
	Name     Ident
	Generics Generics
	// Bounds: type Item: Clone; внутри трейтов.
	Bounds []Bound
	Type   TypeID
}

type ConstItem struct {
	Name Ident
	// Mut: static mut.
	Mut   bool
	Type  TypeID
	Value ExprID
}

func (i *Items) NewStruct(head ItemHead, s StructItem) ItemID {
	return i.new(ItemStruct, head, i.Structs.Allocate(s))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	return itemPayload(i, i.Structs, id, ItemStruct)
}

func (i *Items) NewEnum(head ItemHead, e EnumItem) ItemID {
	return i.new(ItemEnum, head, i.Enums.Allocate(e))
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	return itemPayload(i, i.Enums, id, ItemEnum)
}

func (i *Items) NewTypeAlias(head ItemHead, t TypeAliasItem) ItemID {
	return i.new(ItemTypeAlias, head, i.TypeAliases.Allocate(t))
}

func (i *Items) TypeAlias(id ItemID) (*TypeAliasItem, bool) {
	return itemPayload(i, i.TypeAliases, id, ItemTypeAlias)
}

// NewConst creates ItemConst or ItemStatic.
func (i *Items) NewConst(kind ItemKind, head ItemHead, c ConstItem) ItemID {
	return i.new(kind, head, i.Consts.Allocate(c))
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	return itemPayload(i, i.Consts, id, ItemConst, ItemStatic)
}
