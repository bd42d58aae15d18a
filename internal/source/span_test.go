package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Between(t *testing.T) {
	a := Span{File: 3, Start: 0, End: 5}
	b := Span{File: 3, Start: 9, End: 12}
	if got := Between(a, b); got != (Span{File: 3, Start: 5, End: 9}) {
		t.Fatalf("Between() = %+v", got)
	}
	// overlapping spans produce an empty gap at a.End
	if got := Between(b, a); !got.Empty() || got.Start != 12 {
		t.Fatalf("Between() on reversed spans = %+v", got)
	}
}

func TestSpan_ContainsEncloses(t *testing.T) {
	s := Span{File: 1, Start: 4, End: 8}
	if !s.Contains(4) || s.Contains(8) {
		t.Fatalf("Contains must be half-open")
	}
	if !s.Encloses(Span{File: 1, Start: 5, End: 8}) {
		t.Fatalf("expected inner span to be enclosed")
	}
	if s.Encloses(Span{File: 2, Start: 5, End: 6}) {
		t.Fatalf("spans of other files are never enclosed")
	}
	if s.Len() != 4 || s.Empty() {
		t.Fatalf("unexpected len/empty for %v", s)
	}
}
