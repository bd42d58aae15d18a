package ast

import (
	"rfmt/internal/source"
	"rfmt/internal/token"
)

type File struct {
	Span source.Span
	// InnerAttrs: #![..] в начале файла.
	InnerAttrs []Attr
	Items      []ItemID
	// Comments: все комментарии файла в порядке появления.
	Comments []token.Trivia
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
