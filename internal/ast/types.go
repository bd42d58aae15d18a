package ast

import (
	"rfmt/internal/source"
)

type TypeKind uint8

const (
	TypePath TypeKind = iota
	TypeRef
	TypePtr
	TypeSlice
	TypeArray
	TypeTuple
	TypeParen
	TypeFn
	TypeImpl
	TypeDyn
	TypeNever
	TypeInfer
	TypeMacro
)

// Type: синтаксический тип. Поля используются в зависимости от Kind.
type Type struct {
	Kind TypeKind
	Span source.Span

	Path Path // TypePath
	// Elem: Ref/Ptr/Slice/Array/Paren.
	Elem     TypeID
	Lifetime string // TypeRef
	Mut      bool   // &mut T, *mut T
	Len      ExprID // TypeArray

	// Elems: элементы кортежа или параметры fn-указателя.
	Elems []TypeID
	// ElemNames: необязательные имена параметров fn-указателя ("" если нет).
	ElemNames []string
	Output    TypeID
	Unsafe    bool
	Abi       string
	HasExtern bool

	// ForLifetimes: for<'a> перед fn-указателем.
	ForLifetimes []string

	Bounds []Bound // TypeImpl, TypeDyn
	Macro  *MacroCall
}

type Types struct {
	Arena *Arena[Type]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[Type](capHint)}
}

func (t *Types) New(ty Type) TypeID {
	return TypeID(t.Arena.Allocate(ty))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}
