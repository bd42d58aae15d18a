// Package token defines lexical token kinds and trivia for the formatter front end.
// Invariants:
//   - Token.Text is the exact source text of Token.Span.
//   - Whitespace and comments never appear in the token stream; they are
//     attached to the following token as Leading trivia. Trivia after the
//     last token is attached to EOF.
//   - `>>`, `>=` and `>>=` are lexed greedily; the parser splits them when
//     closing generic argument lists.
package token
