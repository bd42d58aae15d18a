package ast

import (
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Paths       *Arena[ExprPathData]
	Literals    *Arena[ExprLitData]
	Unaries     *Arena[ExprUnaryData]
	Binaries    *Arena[ExprBinaryData]
	Casts       *Arena[ExprCastData]
	Ranges      *Arena[ExprRangeData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Fields      *Arena[ExprFieldData]
	Indices     *Arena[ExprIndexData]
	Wraps       *Arena[ExprWrapData]
	Structs     *Arena[ExprStructData]
	Lists       *Arena[ExprListData]
	Repeats     *Arena[ExprRepeatData]
	Closures    *Arena[ExprClosureData]
	Blocks      *Arena[ExprBlockData]
	Ifs         *Arena[ExprIfData]
	Lets        *Arena[ExprLetData]
	Matches     *Arena[ExprMatchData]
	Loops       *Arena[ExprLoopData]
	Jumps       *Arena[ExprJumpData]
	Macros      *Arena[ExprMacroData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Paths:       NewArena[ExprPathData](capHint),
		Literals:    NewArena[ExprLitData](capHint),
		Unaries:     NewArena[ExprUnaryData](small),
		Binaries:    NewArena[ExprBinaryData](small),
		Casts:       NewArena[ExprCastData](small),
		Ranges:      NewArena[ExprRangeData](small),
		Calls:       NewArena[ExprCallData](small),
		MethodCalls: NewArena[ExprMethodCallData](small),
		Fields:      NewArena[ExprFieldData](small),
		Indices:     NewArena[ExprIndexData](small),
		Wraps:       NewArena[ExprWrapData](small),
		Structs:     NewArena[ExprStructData](small),
		Lists:       NewArena[ExprListData](small),
		Repeats:     NewArena[ExprRepeatData](small),
		Closures:    NewArena[ExprClosureData](small),
		Blocks:      NewArena[ExprBlockData](small),
		Ifs:         NewArena[ExprIfData](small),
		Lets:        NewArena[ExprLetData](small),
		Matches:     NewArena[ExprMatchData](small),
		Loops:       NewArena[ExprLoopData](small),
		Jumps:       NewArena[ExprJumpData](small),
		Macros:      NewArena[ExprMacroData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payloadOf достаёт payload, если вид выражения входит в kinds.
func payloadOf[T any](e *Exprs, arena *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return arena.Get(uint32(expr.Payload)), true
		}
	}
	return nil, false
}

func (e *Exprs) NewPath(span source.Span, path Path) ExprID {
	return e.new(ExprPath, span, e.Paths.Allocate(ExprPathData{Path: path}))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	return payloadOf(e, e.Paths, id, ExprPath)
}

func (e *Exprs) NewLiteral(span source.Span, kind token.Kind, text string) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLitData{Kind: kind, Text: text}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	return payloadOf(e, e.Literals, id, ExprLit)
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, x ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, X: x}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) NewAssign(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return e.new(ExprAssign, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

// Binary returns the payload of ExprBinary and ExprAssign nodes.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, e.Binaries, id, ExprBinary, ExprAssign)
}

func (e *Exprs) NewCast(span source.Span, x ExprID, ty TypeID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{X: x, Type: ty}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	return payloadOf(e, e.Casts, id, ExprCast)
}

func (e *Exprs) NewRange(span source.Span, op token.Kind, lo, hi ExprID) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(ExprRangeData{Lo: lo, Hi: hi, Op: op}))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	return payloadOf(e, e.Ranges, id, ExprRange)
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, argsSpan source.Span) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Fn: fn, Args: args, ArgsSpan: argsSpan}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewMethodCall(span source.Span, data ExprMethodCallData) ExprID {
	return e.new(ExprMethodCall, span, e.MethodCalls.Allocate(data))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	return payloadOf(e, e.MethodCalls, id, ExprMethodCall)
}

func (e *Exprs) NewField(span source.Span, x ExprID, name Ident) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(ExprFieldData{X: x, Name: name}))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	return payloadOf(e, e.Fields, id, ExprField)
}

func (e *Exprs) NewIndex(span source.Span, x, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{X: x, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	return payloadOf(e, e.Indices, id, ExprIndex)
}

// NewWrap creates ExprTry, ExprAwait or ExprParen.
func (e *Exprs) NewWrap(kind ExprKind, span source.Span, x ExprID) ExprID {
	return e.new(kind, span, e.Wraps.Allocate(ExprWrapData{X: x}))
}

func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	return payloadOf(e, e.Wraps, id, ExprTry, ExprAwait, ExprParen)
}

func (e *Exprs) NewStruct(span source.Span, data ExprStructData) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payloadOf(e, e.Structs, id, ExprStruct)
}

// NewList creates ExprTuple or ExprArray.
func (e *Exprs) NewList(kind ExprKind, span source.Span, elems []ExprID) ExprID {
	return e.new(kind, span, e.Lists.Allocate(ExprListData{Elems: elems}))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	return payloadOf(e, e.Lists, id, ExprTuple, ExprArray)
}

func (e *Exprs) NewRepeat(span source.Span, elem, n ExprID) ExprID {
	return e.new(ExprRepeat, span, e.Repeats.Allocate(ExprRepeatData{Elem: elem, Len: n}))
}

func (e *Exprs) Repeat(id ExprID) (*ExprRepeatData, bool) {
	return payloadOf(e, e.Repeats, id, ExprRepeat)
}

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	return e.new(ExprClosure, span, e.Closures.Allocate(data))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	return payloadOf(e, e.Closures, id, ExprClosure)
}

func (e *Exprs) NewBlock(span source.Span, data ExprBlockData) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	return payloadOf(e, e.Blocks, id, ExprBlock)
}

func (e *Exprs) NewIf(span source.Span, cond ExprID, then *Block, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, e.Ifs, id, ExprIf)
}

func (e *Exprs) NewLet(span source.Span, pat PatID, init ExprID) ExprID {
	return e.new(ExprLet, span, e.Lets.Allocate(ExprLetData{Pat: pat, Init: init}))
}

func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	return payloadOf(e, e.Lets, id, ExprLet)
}

func (e *Exprs) NewMatch(span source.Span, data ExprMatchData) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	return payloadOf(e, e.Matches, id, ExprMatch)
}

// NewLoop creates ExprWhile, ExprLoop or ExprFor.
func (e *Exprs) NewLoop(kind ExprKind, span source.Span, data ExprLoopData) ExprID {
	return e.new(kind, span, e.Loops.Allocate(data))
}

func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	return payloadOf(e, e.Loops, id, ExprWhile, ExprLoop, ExprFor)
}

// NewJump creates ExprReturn, ExprBreak or ExprContinue.
func (e *Exprs) NewJump(kind ExprKind, span source.Span, label string, x ExprID) ExprID {
	return e.new(kind, span, e.Jumps.Allocate(ExprJumpData{Label: label, X: x}))
}

func (e *Exprs) Jump(id ExprID) (*ExprJumpData, bool) {
	return payloadOf(e, e.Jumps, id, ExprReturn, ExprBreak, ExprContinue)
}

func (e *Exprs) NewMacro(span source.Span, m *MacroCall) ExprID {
	return e.new(ExprMacro, span, e.Macros.Allocate(ExprMacroData{Macro: m}))
}

func (e *Exprs) Macro(id ExprID) (*ExprMacroData, bool) {
	return payloadOf(e, e.Macros, id, ExprMacro)
}
