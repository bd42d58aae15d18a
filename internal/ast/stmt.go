package ast

import (
	"rfmt/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtItem
	StmtExpr
	// StmtEmpty: одиночная ';'.
	StmtEmpty
)

type Stmt struct {
	Kind  StmtKind
	Span  source.Span
	Attrs []Attr

	// StmtLet: let Pat: Type = Init else { .. };
	Pat  PatID
	Type TypeID
	Init ExprID
	Else *Block

	Item ItemID

	// StmtExpr; Semi: выражение завершено ';'.
	Expr ExprID
	Semi bool
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
	}
}

func (s *Stmts) New(st Stmt) StmtID {
	return StmtID(s.Arena.Allocate(st))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
