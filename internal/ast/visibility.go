package ast

import (
	"rfmt/internal/source"
)

type VisKind uint8

const (
	VisInherited VisKind = iota
	VisPub
	// VisRestricted: pub(crate), pub(super), pub(in path).
	VisRestricted
)

type Visibility struct {
	Kind VisKind
	Span source.Span
	// Scope: содержимое скобок для VisRestricted, без пробелов по краям.
	Scope string
}
