package diagfmt

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff writes a unified diff from original to formatted for path.
// Nothing is written when the texts are equal.
func Diff(w io.Writer, path string, original, formatted []byte, opts DiffOpts) error {
	ctx := opts.Context
	if ctx <= 0 {
		ctx = 3
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(formatted),
		FromFile: path,
		ToFile:   path,
		Context:  ctx,
	})
	if err != nil || text == "" {
		return err
	}
	if !opts.Color {
		_, err = io.WriteString(w, text)
		return err
	}

	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	head := color.New(color.Bold)
	for _, c := range []*color.Color{add, del, hunk, head} {
		c.EnableColor()
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = head.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			line = hunk.Sprint(line)
		case strings.HasPrefix(line, "+"):
			line = add.Sprint(line)
		case strings.HasPrefix(line, "-"):
			line = del.Sprint(line)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

// splitLines keeps the line endings and, unlike difflib.SplitLines, adds no
// empty line after a final '\n'. A last line without '\n' gets one.
func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(b), "\n")
	if last := lines[len(lines)-1]; last == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}
