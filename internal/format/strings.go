package format

import "strings"

// stringLit wraps a long "..." literal with `\` line continuations.
// format_strings wraps only a literal that would not fit even on a fresh
// line; force_format_strings wraps whatever overflows the current shape.
func (r *rewriter) stringLit(text string, shape Shape) string {
	force := r.cfg.ForceFormatStrings()
	if !force && !r.cfg.FormatStrings() {
		return text
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' || strings.ContainsAny(text, "\r\n") {
		return text
	}
	if r.fitsLine(text, shape) {
		return text
	}
	if !force && r.width(text) <= r.maxWidth-shape.Indent {
		return text
	}

	cont := shape.Used() + 1
	content := text[1 : len(text)-1]
	// `"` в начале и `\` в конце первой строки
	limit := shape.Width - 2
	var lines []string
	for content != "" {
		if r.width(content)+1 <= limit {
			break
		}
		cut := breakPoint(content, limit, r.width)
		if cut <= 0 {
			break
		}
		lines = append(lines, content[:cut])
		content = content[cut:]
		limit = r.maxWidth - cont - 1
	}
	if len(lines) == 0 {
		return text
	}
	lines = append(lines, content)
	return `"` + strings.Join(lines, `\`+r.newline(cont)) + `"`
}

// breakPoint returns the byte offset of the last break that keeps the line
// within limit columns; a break goes after a space followed by a non-blank.
// When no break fits, the first possible one is used; 0 means none.
func breakPoint(s string, limit int, width func(string) int) int {
	best := 0
	for i := 1; i < len(s); i++ {
		if s[i-1] != ' ' || s[i] == ' ' || s[i] == '\t' {
			continue
		}
		if width(s[:i]) > limit {
			if best == 0 {
				return i
			}
			return best
		}
		best = i
	}
	return best
}
