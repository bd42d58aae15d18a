package ast

import (
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// MacroCall: name!(..), name![..], name!{..}. Содержимое не разбирается
// парсером: форматтер пробует разобрать его сам и иначе печатает как есть.
type MacroCall struct {
	Span source.Span
	Path Path
	// Delim: LParen, LBracket или LBrace.
	Delim token.Kind
	// Body: токены между разделителями (без них), с leading trivia.
	Body     []token.Token
	BodySpan source.Span
	// Ident: имя после !, как в macro_rules! name { .. }.
	Ident Ident
}
