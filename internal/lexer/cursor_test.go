package lexer

import (
	"testing"

	"rfmt/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("cursor must be exhausted")
	}
}

func TestPeekAtAndPrefix(t *testing.T) {
	cursor := NewCursor(createFile("r#\"x\""))
	if cursor.PeekAt(1) != '#' || cursor.PeekAt(10) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
	if !cursor.HasPrefix("r#\"") || cursor.HasPrefix("r#\"x\"y") {
		t.Fatalf("HasPrefix mismatch")
	}
	m := cursor.Mark()
	cursor.BumpN(3)
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 3 {
		t.Fatalf("SpanFrom() = %+v", sp)
	}
	cursor.BumpN(100)
	if !cursor.EOF() {
		t.Fatalf("BumpN must clamp to the end")
	}
	cursor.Reset(m)
	if !cursor.Eat('r') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch after Reset")
	}
}
