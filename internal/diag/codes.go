package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Синтаксические
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectType        Code = 2005
	SynExpectExpression  Code = 2006
	SynExpectPattern     Code = 2007
	SynExpectItem        Code = 2008
	SynBadUseTree        Code = 2009
	SynTooManyErrors     Code = 2010

	// Форматирование
	FmtUnformattable   Code = 4001
	FmtTodo            Code = 4002
	FmtFixme           Code = 4003
	FmtNeedsFormatting Code = 4004
	FmtLostComment     Code = 4005

	// Ввод-вывод
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed number literal",
		LexUnterminatedChar:         "Unterminated character literal",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynExpectPattern:            "Expected pattern",
		SynExpectItem:               "Expected item",
		SynBadUseTree:               "Malformed use tree",
		SynTooManyErrors:            "Too many syntax errors",
		FmtUnformattable:            "Construct left unformatted",
		FmtTodo:                     "TODO comment",
		FmtFixme:                    "FIXME comment",
		FmtNeedsFormatting:          "File is not formatted",
		FmtLostComment:              "Comment could not be placed",
		IOLoadFileError:             "Failed to read file",
		IOWriteFileError:            "Failed to write file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsSyntax reports whether the code comes from the lexer or the parser.
func (c Code) IsSyntax() bool {
	return c >= 1000 && c < 3000
}
