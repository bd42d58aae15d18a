package lexer

import (
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment, /// и //! -> TriviaDocLine
// - /* ... */ -> TriviaBlockComment (вложенность поддерживается), /** и /*! -> TriviaDocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch {
	case lx.cursor.HasPrefix("//"):
		kind := token.TriviaLineComment
		// "///x" и "//!": документация, "////": обычный комментарий
		if (lx.cursor.HasPrefix("///") && lx.cursor.PeekAt(3) != '/') || lx.cursor.HasPrefix("//!") {
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return true

	case lx.cursor.HasPrefix("/*"):
		kind := token.TriviaBlockComment
		if (lx.cursor.HasPrefix("/**") && !lx.cursor.HasPrefix("/***") && !lx.cursor.HasPrefix("/**/")) ||
			lx.cursor.HasPrefix("/*!") {
			kind = token.TriviaDocBlock
		}
		lx.cursor.BumpN(2)
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			switch {
			case lx.cursor.HasPrefix("/*"):
				lx.cursor.BumpN(2)
				depth++
			case lx.cursor.HasPrefix("*/"):
				lx.cursor.BumpN(2)
				depth--
			default:
				lx.cursor.Bump()
			}
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(kind, start)
		return true
	}
	return false
}
