package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rfmt/internal/config"
)

func items(texts ...string) []ListItem {
	out := make([]ListItem, len(texts))
	for i, t := range texts {
		out[i] = ListItem{Item: t}
	}
	return out
}

func TestDefinitiveTactic(t *testing.T) {
	tests := []struct {
		name   string
		items  []ListItem
		tactic ListTactic
		width  int
		want   ListTactic
	}{
		{"fits", items("a", "b", "c"), TacticHorizontalVertical, 10, TacticHorizontal},
		{"too wide", items("a", "b", "c"), TacticHorizontalVertical, 5, TacticVertical},
		{"mixed too wide", items("a", "b", "c"), TacticMixed, 5, TacticMixed},
		{"fixed vertical", items("a"), TacticVertical, 80, TacticVertical},
		{"comment forces vertical", []ListItem{{Item: "a", PostComment: "// x"}, {Item: "b"}}, TacticHorizontalVertical, 80, TacticVertical},
		{"multiline forces vertical", items("a", "b {\n}"), TacticHorizontal, 80, TacticVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DefinitiveTactic(tt.items, tt.tactic, 2, tt.width))
		})
	}
}

func TestWriteList(t *testing.T) {
	t.Run("horizontal drops vertical trailing comma", func(t *testing.T) {
		f := &ListFormatting{Tactic: TacticHorizontal, Separator: ",", Trailing: config.SeparatorVertical}
		require.Equal(t, "a, b", WriteList(items("a", "b"), f))
	})
	t.Run("vertical", func(t *testing.T) {
		f := &ListFormatting{
			Tactic: TacticVertical, Separator: ",", Trailing: config.SeparatorVertical,
			Indent: "    ", EndsWithNewline: true,
		}
		require.Equal(t, "a,\n    b,", WriteList(items("a", "b"), f))
	})
	t.Run("never trailing", func(t *testing.T) {
		f := &ListFormatting{
			Tactic: TacticVertical, Separator: ",", Trailing: config.SeparatorNever,
			Indent: "  ", EndsWithNewline: true,
		}
		require.Equal(t, "a,\n  b", WriteList(items("a", "b"), f))
	})
	t.Run("mixed fills lines", func(t *testing.T) {
		f := &ListFormatting{Tactic: TacticMixed, Separator: ",", Trailing: config.SeparatorVertical, Indent: "    ", Width: 6}
		require.Equal(t, "aa,\n    bb, cc", WriteList(items("aa", "bb", "cc"), f))
	})
	t.Run("comments", func(t *testing.T) {
		f := &ListFormatting{Tactic: TacticVertical, Separator: ",", Trailing: config.SeparatorAlways, Indent: "    "}
		in := []ListItem{
			{Item: "a", PreComment: []string{"// first"}},
			{Item: "b", PostComment: "/* tail */"},
		}
		require.Equal(t, "// first\n    a,\n    b, /* tail */", WriteList(in, f))
	})
	t.Run("line comment breaks horizontal", func(t *testing.T) {
		f := &ListFormatting{Tactic: TacticHorizontal, Separator: ",", Trailing: config.SeparatorNever, Indent: " "}
		in := []ListItem{{Item: "a", PostComment: "// c"}, {Item: "b"}}
		require.Equal(t, "a, // c\n b", WriteList(in, f))
	})
	t.Run("blank lines", func(t *testing.T) {
		f := &ListFormatting{Tactic: TacticVertical, Separator: ",", Trailing: config.SeparatorNever, PreserveBlankLines: true}
		in := []ListItem{{Item: "a"}, {Item: "b", BlankBefore: true}}
		require.Equal(t, "a,\n\nb", WriteList(in, f))
	})
}

func TestSourceHintsVertical(t *testing.T) {
	require.False(t, sourceHintsVertical([]ListItem{{Item: "a", NewlineBefore: true}}))
	require.True(t, sourceHintsVertical([]ListItem{{Item: "a", NewlineBefore: true}, {Item: "b", NewlineBefore: true}}))
	require.False(t, sourceHintsVertical([]ListItem{{Item: "a"}, {Item: "b", NewlineBefore: true}}))
}

func TestReindentTail(t *testing.T) {
	require.Equal(t, "a\n  b\n  c", reindentTail("a\nb\nc", "  "))
	require.Equal(t, "a", reindentTail("a", "    "))
}
