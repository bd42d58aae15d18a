package ast

import (
	"rfmt/internal/source"
)

// Ident: имя вместе с его положением в исходнике.
type Ident struct {
	Name string
	Span source.Span
}

// Path: a::b::<T>::c. Global означает ведущий "::".
type Path struct {
	Span   source.Span
	Global bool
	// QSelf: <T as Trait>:: перед сегментами.
	QSelf    *QSelf
	Segments []PathSegment
}

// QSelf: <Type> или <Type as Trait>. Trait == NoTypeID без `as`.
type QSelf struct {
	Span  source.Span
	Type  TypeID
	Trait TypeID
}

type PathSegment struct {
	Name Ident
	// Args == nil, если у сегмента нет generic-аргументов.
	Args *GenericArgs
}

// GenericArgs covers both <A, B = C> and the Fn(A, B) -> C sugar.
type GenericArgs struct {
	Span source.Span
	// Turbofish is set for ::<..> in expression position.
	Turbofish bool
	Args      []GenericArg

	Parenthesized bool
	Inputs        []TypeID
	Output        TypeID
}

type GenericArg struct {
	Span     source.Span
	Lifetime string
	// Binding: имя ассоциированного типа в Item = T.
	Binding string
	Type    TypeID
	Const   ExprID
}

// IsSingle reports whether the path is one plain identifier.
func (p Path) IsSingle() bool {
	return !p.Global && p.QSelf == nil && len(p.Segments) == 1 && p.Segments[0].Args == nil
}

// Last returns the last segment name or "".
func (p Path) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Name.Name
}
