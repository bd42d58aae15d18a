package ast

import (
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprPath represents a path or a plain identifier.
	ExprPath ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprUnary represents -x, !x, *x, &x and &mut x.
	ExprUnary
	// ExprBinary represents a binary operator expression.
	ExprBinary
	// ExprAssign represents = and compound assignment.
	ExprAssign
	// ExprCast represents x as T.
	ExprCast
	ExprRange
	ExprCall
	ExprMethodCall
	ExprField
	ExprIndex
	ExprTry
	ExprAwait
	ExprParen
	ExprStruct
	ExprTuple
	ExprArray
	ExprRepeat
	ExprClosure
	ExprBlock
	ExprIf
	// ExprLet: `let PAT = EXPR` в условии if/while.
	ExprLet
	ExprMatch
	ExprWhile
	ExprLoop
	ExprFor
	ExprReturn
	ExprBreak
	ExprContinue
	ExprMacro
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryNot
	ExprUnaryDeref
	ExprUnaryRef
	ExprUnaryRefMut
)

// Text returns the operator as written.
func (op ExprUnaryOp) Text() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryDeref:
		return "*"
	case ExprUnaryRef:
		return "&"
	case ExprUnaryRefMut:
		return "&mut "
	default:
		return "?"
	}
}

type ExprPathData struct {
	Path Path
}

type ExprLitData struct {
	Kind token.Kind
	Text string
}

type ExprUnaryData struct {
	Op ExprUnaryOp
	X  ExprID
}

// ExprBinaryData also serves ExprAssign; Op is the operator token kind.
type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

type ExprCastData struct {
	X    ExprID
	Type TypeID
}

// ExprRangeData: Lo или Hi могут отсутствовать.
type ExprRangeData struct {
	Lo, Hi ExprID
	Op     token.Kind
}

type ExprCallData struct {
	Fn       ExprID
	Args     []ExprID
	ArgsSpan source.Span
}

type ExprMethodCallData struct {
	Recv     ExprID
	Name     Ident
	Generics *GenericArgs
	Args     []ExprID
	ArgsSpan source.Span
}

// ExprFieldData: Name может быть числом (x.0).
type ExprFieldData struct {
	X    ExprID
	Name Ident
}

type ExprIndexData struct {
	X     ExprID
	Index ExprID
}

// ExprWrapData: общий payload для ExprTry, ExprAwait и ExprParen.
type ExprWrapData struct {
	X ExprID
}

type FieldInit struct {
	Span      source.Span
	Attrs     []Attr
	Name      Ident
	Value     ExprID
	Shorthand bool
}

type ExprStructData struct {
	Path     Path
	Fields   []FieldInit
	Base     ExprID
	HasBase  bool
	BodySpan source.Span
}

// ExprListData: общий payload для ExprTuple и ExprArray.
type ExprListData struct {
	Elems []ExprID
}

type ExprRepeatData struct {
	Elem ExprID
	Len  ExprID
}

type ClosureParam struct {
	Span source.Span
	Pat  PatID
	Type TypeID
}

type ExprClosureData struct {
	Move       bool
	Async      bool
	Params     []ClosureParam
	ParamsSpan source.Span
	Output     TypeID
	Body       ExprID
}

// Block: { stmts } вместе с внутренними атрибутами.
type Block struct {
	Span       source.Span
	InnerAttrs []Attr
	Stmts      []StmtID
}

type ExprBlockData struct {
	Block  *Block
	Unsafe bool
	Async  bool
	Move   bool
	Label  string
}

type ExprIfData struct {
	Cond ExprID
	Then *Block
	// Else: ExprBlock или вложенный ExprIf.
	Else ExprID
}

type ExprLetData struct {
	Pat  PatID
	Init ExprID
}

type MatchArm struct {
	Span  source.Span
	Attrs []Attr
	Pat   PatID
	Guard ExprID
	Body  ExprID
	Comma bool
}

type ExprMatchData struct {
	Scrutinee  ExprID
	Arms       []MatchArm
	BodySpan   source.Span
	InnerAttrs []Attr
}

// ExprLoopData: общий payload для while, loop и for.
type ExprLoopData struct {
	Label string
	Cond  ExprID
	Pat   PatID
	Iter  ExprID
	Body  *Block
}

// ExprJumpData: общий payload для return, break и continue.
type ExprJumpData struct {
	Label string
	X     ExprID
}

type ExprMacroData struct {
	Macro *MacroCall
}
