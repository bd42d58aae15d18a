package format

import (
	"strings"

	"rfmt/internal/config"
)

type (
	ListTactic      = config.ListTactic
	SeparatorTactic = config.SeparatorTactic
	Density         = config.Density
	MultilineStyle  = config.MultilineStyle
)

const (
	TacticHorizontal         = config.TacticHorizontal
	TacticVertical           = config.TacticVertical
	TacticHorizontalVertical = config.TacticHorizontalVertical
	TacticMixed              = config.TacticMixed
)

// ListItem: один элемент списка перед раскладкой.
type ListItem struct {
	// PreComment: комментарии перед элементом, по одному на строку.
	PreComment []string
	Item       string
	// PostComment: комментарий после элемента на той же строке.
	PostComment string
	// NewlineBefore: в исходнике элемент начинался с новой строки.
	NewlineBefore bool
	// BlankBefore: перед элементом в исходнике была пустая строка.
	BlankBefore bool
	// NoSeparator: элемент не получает разделитель (например, `..base`).
	NoSeparator bool
}

func (it ListItem) hasComment() bool {
	return len(it.PreComment) > 0 || it.PostComment != ""
}

// hasLineComment: после такого комментария элемент не может продолжать строку.
func (it ListItem) hasLineComment() bool {
	for _, c := range it.PreComment {
		if strings.HasPrefix(c, "//") {
			return true
		}
	}
	return strings.HasPrefix(it.PostComment, "//")
}

func (it ListItem) multiline() bool {
	if strings.Contains(it.Item, "\n") || strings.Contains(it.PostComment, "\n") {
		return true
	}
	for _, c := range it.PreComment {
		if strings.Contains(c, "\n") {
			return true
		}
	}
	return false
}

// ListFormatting описывает, как WriteList раскладывает элементы.
type ListFormatting struct {
	Tactic    ListTactic
	Separator string
	Trailing  SeparatorTactic
	// Indent: строка отступа для второй и последующих строк списка.
	Indent string
	// Width: ширина строки при Mixed, начиная после Indent.
	Width int
	// EndsWithNewline: после списка закрывающая скобка идёт с новой строки.
	EndsWithNewline bool
	// PreserveBlankLines keeps single blank lines between vertical items.
	PreserveBlankLines bool
	TabSpaces          int
}

// DefinitiveTactic resolves tactic into Horizontal, Vertical or Mixed.
// sepLen is the width a separator adds between two horizontal items.
func DefinitiveTactic(items []ListItem, tactic ListTactic, sepLen, width int) ListTactic {
	return definitiveTactic(items, tactic, sepLen, width, 4)
}

func definitiveTactic(items []ListItem, tactic ListTactic, sepLen, width, tab int) ListTactic {
	forced := false
	for _, it := range items {
		if it.hasComment() || it.multiline() {
			forced = true
			break
		}
	}
	if forced {
		if tactic == TacticMixed {
			return TacticMixed
		}
		return TacticVertical
	}
	switch tactic {
	case TacticHorizontal, TacticVertical:
		return tactic
	}
	total := 0
	for i, it := range items {
		if i > 0 {
			total += sepLen
		}
		total += textWidth(it.Item, tab)
	}
	if total <= width {
		return TacticHorizontal
	}
	if tactic == TacticMixed {
		return TacticMixed
	}
	return TacticVertical
}

// sourceHintsVertical: каждый элемент списка из 2+ элементов начинался с новой строки.
func sourceHintsVertical(items []ListItem) bool {
	if len(items) < 2 {
		return false
	}
	for _, it := range items {
		if !it.NewlineBefore {
			return false
		}
	}
	return true
}

// needsTrailing: ставить ли разделитель после последнего элемента.
func (f *ListFormatting) needsTrailing(tactic ListTactic) bool {
	switch f.Trailing {
	case config.SeparatorAlways:
		return true
	case config.SeparatorVertical:
		return tactic != TacticHorizontal && f.EndsWithNewline
	default:
		return false
	}
}

// WriteList renders items with the tactic already resolved in f.Tactic.
// The first item starts at the current position; other lines start with f.Indent.
// Item texts carry their own indentation, comment texts do not.
func WriteList(items []ListItem, f *ListFormatting) string {
	if len(items) == 0 {
		return ""
	}
	sep := f.Separator
	tactic := f.Tactic
	if tactic == TacticHorizontalVertical {
		tactic = TacticVertical
	}
	if tactic == TacticHorizontal {
		for _, it := range items {
			if it.hasLineComment() {
				tactic = TacticVertical
				break
			}
		}
	}
	trailing := f.needsTrailing(tactic)

	var sb strings.Builder
	lineWidth := 0
	prevBreaks := false
	for i, it := range items {
		last := i == len(items)-1
		text := it.Item
		if !it.NoSeparator && (!last || trailing) {
			text += sep
		}

		switch tactic {
		case TacticHorizontal:
			if i > 0 {
				sb.WriteByte(' ')
			}
			for _, c := range it.PreComment {
				sb.WriteString(c)
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
			if it.PostComment != "" {
				sb.WriteByte(' ')
				sb.WriteString(it.PostComment)
			}
			continue

		case TacticVertical:
			if i > 0 {
				if it.BlankBefore && f.PreserveBlankLines {
					sb.WriteByte('\n')
				}
				sb.WriteString("\n" + f.Indent)
			}
			writePreComments(&sb, it.PreComment, f.Indent)

		case TacticMixed:
			w := textWidth(text, f.TabSpaces)
			ownLine := it.hasComment() || it.multiline()
			if i > 0 {
				if ownLine || prevBreaks || lineWidth+1+w > f.Width {
					sb.WriteString("\n" + f.Indent)
					lineWidth = 0
				} else {
					sb.WriteByte(' ')
					lineWidth++
				}
			}
			writePreComments(&sb, it.PreComment, f.Indent)
			lineWidth += w
			prevBreaks = ownLine
		}

		sb.WriteString(text)
		if it.PostComment != "" {
			sb.WriteByte(' ')
			sb.WriteString(reindentTail(it.PostComment, f.Indent))
		}
	}
	return sb.String()
}

func writePreComments(sb *strings.Builder, comments []string, indent string) {
	for _, c := range comments {
		sb.WriteString(reindentTail(c, indent))
		sb.WriteString("\n" + indent)
	}
}

// reindentTail puts indent before every line of s but the first.
// Lines of s are expected to carry no indentation of their own.
func reindentTail(s, indent string) string {
	if !strings.Contains(s, "\n") || indent == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}
