package ast

import (
	"rfmt/internal/source"
)

type GenericParamKind uint8

const (
	GenericLifetime GenericParamKind = iota
	GenericType
	GenericConst
)

// Generics: параметры <..> и необязательный where.
type Generics struct {
	Span   source.Span
	Params []GenericParam
	Where  *WhereClause
}

func (g Generics) Empty() bool { return len(g.Params) == 0 }

type GenericParam struct {
	Span  source.Span
	Kind  GenericParamKind
	Attrs []Attr
	Name  Ident
	// Bounds для типов и лайфтаймов ('a: 'b + 'c).
	Bounds []Bound
	// Default: тип по умолчанию (T = U) или константа для const-параметров.
	Default      TypeID
	ConstType    TypeID
	ConstDefault ExprID
}

// Bound is one element of `T: A + 'b + ?Sized`.
type Bound struct {
	Span     source.Span
	Lifetime string
	Maybe    bool
	// ForLifetimes: for<'a, 'b> перед трейтом.
	ForLifetimes []string
	Trait        TypeID
}

type WhereClause struct {
	Span       source.Span
	Predicates []WherePredicate
}

type WherePredicate struct {
	Span         source.Span
	ForLifetimes []string
	// Lifetime заполнен для 'a: 'b, иначе Bounded.
	Lifetime string
	Bounded  TypeID
	Bounds   []Bound
}
