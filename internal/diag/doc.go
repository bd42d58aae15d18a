// Package diag defines the diagnostic model shared by the lexer, the parser,
// the formatting engine and the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX/SYN/FMT/IO ranges), a message, a primary span and
// optional notes. Producers talk to a Reporter; BagReporter
// collects into a Bag, DedupReporter filters repeats, and the formatting
// session (internal/session) implements Reporter itself so that every
// diagnostic passes through its emission policy.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
