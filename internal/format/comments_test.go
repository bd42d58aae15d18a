package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	require.Equal(t, []string{"aaa bbb", "ccc"}, wrapText("aaa bbb ccc", 7))
	require.Equal(t, []string{"aaa bbb ccc"}, wrapText("aaa bbb ccc", 40))
	// слово длиннее ширины не режется
	require.Equal(t, []string{"abcdefgh", "x"}, wrapText("abcdefgh x", 4))
}

func TestReflowBlockComment(t *testing.T) {
	in := "/* a\n      * b\n      */"
	require.Equal(t, "/* a\n * b\n */", reflowBlockComment(in))
	require.Equal(t, "/* one line */", reflowBlockComment("/* one line */"))

	// продолжения без `*` сдвигаются на один пробел, относительный отступ сохраняется
	plain := "/* first\n       second\n         nested\n       last */"
	want := "/* first\n second\n   nested\n last */"
	require.Equal(t, want, reflowBlockComment(plain))
	require.Equal(t, want, reflowBlockComment(want))
}

func TestCommentWords(t *testing.T) {
	require.Equal(t, []string{"foo", "bar"}, commentWords("/* foo bar */"))
	require.Equal(t, []string{"doc", "text"}, commentWords("/// doc text"))
	require.Equal(t, []string{"a", "b"}, commentWords("/*\n * a\n * b\n */"))
}

func TestTodoNumbered(t *testing.T) {
	tests := []struct {
		rest string
		want bool
	}{
		{"(#12) later", true},
		{"(12)", true},
		{": fix me", false},
		{"()", false},
		{"(#12", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, todoNumbered(tt.rest), tt.rest)
	}
}

func TestBreakPoint(t *testing.T) {
	w := func(s string) int { return len(s) }
	require.Equal(t, 4, breakPoint("aaa bbb ccc", 5, w))
	require.Equal(t, 8, breakPoint("aaaaaaa bbb", 3, w))
	require.Equal(t, 0, breakPoint("aaaa", 2, w))
	// после пробела должен идти непробельный символ
	require.Equal(t, 0, breakPoint("a  ", 10, w))
}
