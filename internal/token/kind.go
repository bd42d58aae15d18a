package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including raw identifiers r#x).
	Ident
	// Lifetime represents a lifetime or label such as 'a.
	Lifetime

	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwCrate represents the 'crate' keyword.
	KwCrate // crate
	// KwDyn represents the 'dyn' keyword.
	KwDyn // dyn
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwMove represents the 'move' keyword.
	KwMove // move
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwRef represents the 'ref' keyword.
	KwRef // ref
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwSelfValue represents the 'self' keyword.
	KwSelfValue // self
	// KwSelfType represents the 'Self' keyword.
	KwSelfType // Self
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUnsafe represents the 'unsafe' keyword.
	KwUnsafe // unsafe
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// IntLit represents an integer literal, suffix included (1u8, 0xff).
	IntLit
	// FloatLit represents a float literal, suffix included.
	FloatLit
	// StringLit represents "..." and b"..." literals.
	StringLit
	// RawStringLit represents r"...", r#"..."# and br"..." literals.
	RawStringLit
	// CharLit represents 'x' and b'x' literals.
	CharLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Caret represents the caret operator token.
	Caret // ^
	// Bang represents the bang operator token.
	Bang // !
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// AndAnd represents the logical and operator token.
	AndAnd // &&
	// OrOr represents the logical or operator token.
	OrOr // ||
	// Shl represents the shift left operator token.
	Shl // <<
	// Shr represents the shift right operator token.
	Shr // >>
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// ShlAssign represents the shl assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shr assign operator token.
	ShrAssign // >>=
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// At represents the at token.
	At // @
	// Underscore represents the wildcard token.
	Underscore // _
	// Dot represents the dot token.
	Dot // .
	// DotDot represents the exclusive range token.
	DotDot // ..
	// DotDotDot represents the legacy inclusive range and variadic token.
	DotDotDot // ...
	// DotDotEq represents the inclusive range token.
	DotDotEq // ..=
	// Comma represents the comma token.
	Comma // ,
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the path separator token.
	ColonColon // ::
	// Arrow represents the return type arrow token.
	Arrow // ->
	// FatArrow represents the match arm arrow token.
	FatArrow // =>
	// Pound represents the attribute sigil.
	Pound // #
	// Dollar represents the macro metavariable sigil.
	Dollar // $
	// Question represents the try operator token.
	Question // ?
	// Tilde represents the tilde token.
	Tilde // ~
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", Lifetime: "Lifetime",
	IntLit: "IntLit", FloatLit: "FloatLit", StringLit: "StringLit",
	RawStringLit: "RawStringLit", CharLit: "CharLit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if text, ok := fixedText[k]; ok {
		return "'" + text + "'"
	}
	return "Kind(?)"
}

// Text returns the fixed spelling of keywords and punctuation, or "".
func (k Kind) Text() string {
	return fixedText[k]
}

var fixedText = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^",
	Bang: "!", Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", CaretAssign: "^=", AmpAssign: "&=", PipeAssign: "|=",
	ShlAssign: "<<=", ShrAssign: ">>=", Assign: "=", EqEq: "==", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", At: "@", Underscore: "_",
	Dot: ".", DotDot: "..", DotDotDot: "...", DotDotEq: "..=", Comma: ",",
	Semicolon: ";", Colon: ":", ColonColon: "::", Arrow: "->", FatArrow: "=>",
	Pound: "#", Dollar: "$", Question: "?", Tilde: "~",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func init() {
	for text, k := range keywords {
		fixedText[k] = text
	}
}
