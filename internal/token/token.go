package token

import (
	"rfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPathSegment reports whether the token may start or continue a path.
func (t Token) IsPathSegment() bool {
	switch t.Kind {
	case Ident, KwSelfValue, KwSelfType, KwSuper, KwCrate:
		return true
	default:
		return false
	}
}

// HasNewlineBefore reports whether the leading trivia contains a line break.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// Comments returns the comment trivia attached before the token.
func (t Token) Comments() []Trivia {
	var out []Trivia
	for _, tv := range t.Leading {
		if tv.IsComment() {
			out = append(out, tv)
		}
	}
	return out
}
