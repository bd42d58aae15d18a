package token

import (
	"strings"

	"rfmt/internal/source"
)

// TriviaKind classifies whitespace and comments that precede a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine covers /// and //! comments.
	TriviaDocLine
	// TriviaDocBlock covers /** */ and /*! */ comments.
	TriviaDocBlock
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (tv Trivia) IsComment() bool {
	switch tv.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock:
		return true
	default:
		return false
	}
}

// IsLineStyle reports whether the comment runs to the end of the line.
func (tv Trivia) IsLineStyle() bool {
	return tv.Kind == TriviaLineComment || tv.Kind == TriviaDocLine
}

// Newlines counts the line breaks in a newline trivia.
func (tv Trivia) Newlines() int {
	if tv.Kind != TriviaNewline {
		return 0
	}
	return strings.Count(tv.Text, "\n")
}
