package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans of different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Encloses reports whether other lies entirely inside s.
func (s Span) Encloses(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

// Between returns the gap from the end of a to the start of b.
func Between(a, b Span) Span {
	if b.Start < a.End {
		return Span{File: a.File, Start: a.End, End: a.End}
	}
	return Span{File: a.File, Start: a.End, End: b.Start}
}
