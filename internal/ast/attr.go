package ast

import (
	"rfmt/internal/source"
)

// Attr is #[..] or #![..]. Body keeps the source text between the brackets.
type Attr struct {
	Span  source.Span
	Inner bool
	Body  string
}
