package ast

import "rfmt/internal/source"

type SelfKind uint8

const (
	// SelfNone: обычный параметр.
	SelfNone SelfKind = iota
	SelfValue
	SelfRef
)

// Param: параметр функции; для self-параметров Pat не задан.
type Param struct {
	Span  source.Span
	Attrs []Attr
	Pat   PatID
	Type  TypeID

	Self         SelfKind
	SelfMut      bool
	SelfLifetime string
}

type FnSig struct {
	Const     bool
	Async     bool
	Unsafe    bool
	HasExtern bool
	Abi       string
	Name      Ident
	Generics  Generics
	Params    []Param
	// ParamsSpan: от '(' до ')' включительно.
	ParamsSpan source.Span
	Variadic   bool
	Output     TypeID
}

type FnItem struct {
	Sig FnSig
	// Body == nil для объявлений, завершённых ';'.
	Body *Block
}

func (i *Items) NewFn(head ItemHead, fn FnItem) ItemID {
	return i.new(ItemFn, head, i.Fns.Allocate(fn))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	return itemPayload(i, i.Fns, id, ItemFn)
}
