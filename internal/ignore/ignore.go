// Package ignore сопоставляет пути файлов с шаблонами из опции ignore.
package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Set: неизменяемый набор glob-шаблонов в абсолютной slash-форме.
type Set struct {
	patterns []string
}

// New resolves relative patterns against baseDir and validates them.
func New(baseDir string, patterns []string) (*Set, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ignore base %q: %w", baseDir, err)
	}
	s := &Set{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !path.IsAbs(p) && !filepath.IsAbs(filepath.FromSlash(p)) {
			p = escapeMeta(filepath.ToSlash(base)) + "/" + p
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Empty reports whether the set has no patterns; a nil Set is empty.
func (s *Set) Empty() bool {
	return s == nil || len(s.patterns) == 0
}

// Match reports whether file, or any directory above it, matches a pattern.
func (s *Set) Match(file string) bool {
	if s.Empty() {
		return false
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	name := filepath.ToSlash(filepath.Clean(abs))
	for {
		for _, p := range s.patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				return true
			}
		}
		parent := path.Dir(name)
		if parent == name || parent == "." {
			return false
		}
		name = parent
	}
}

// Patterns returns the resolved patterns.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.patterns...)
}

func escapeMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
