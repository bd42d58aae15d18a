package parser

// Тесты для разбора use-деклараций.
//
// Покрытие:
//   - простые пути и алиасы: use a::b; use a::b as c; use a as _;
//   - glob и вложенные группы: use a::*; use a::{b, c::{d, e}};
//   - глобальные пути и self внутри группы
//   - ошибки: пустой путь, незакрытая группа, пропущенная ';'

import (
	"strings"
	"testing"

	"rfmt/internal/ast"
)

func parseUseString(t *testing.T, input string) *ast.UseTree {
	t.Helper()
	arenas, items := mustParseItems(t, input)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	use, ok := arenas.Items.Use(items[0])
	if !ok {
		t.Fatalf("expected use item, got %v", arenas.Items.Get(items[0]).Kind)
	}
	return &use.Tree
}

func prefixString(tree *ast.UseTree) string {
	parts := make([]string, len(tree.Prefix))
	for i, seg := range tree.Prefix {
		parts[i] = seg.Name
	}
	return strings.Join(parts, "::")
}

func TestParseUse_Simple(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
		alias  string
		global bool
	}{
		{"single", "use foo;", "foo", "", false},
		{"path", "use std::io::Read;", "std::io::Read", "", false},
		{"alias", "use std::io::Result as IoResult;", "std::io::Result", "IoResult", false},
		{"underscore alias", "use std::fmt::Write as _;", "std::fmt::Write", "_", false},
		{"global", "use ::core::mem;", "core::mem", "", true},
		{"crate relative", "use crate::config::Options;", "crate::config::Options", "", false},
		{"super", "use super::*;", "super", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseUseString(t, tt.input)
			if got := prefixString(tree); got != tt.prefix {
				t.Errorf("prefix = %q, want %q", got, tt.prefix)
			}
			if tree.Alias != tt.alias {
				t.Errorf("alias = %q, want %q", tree.Alias, tt.alias)
			}
			if tree.Global != tt.global {
				t.Errorf("global = %v, want %v", tree.Global, tt.global)
			}
		})
	}
}

func TestParseUse_Glob(t *testing.T) {
	tree := parseUseString(t, "use std::collections::*;")
	if tree.Kind != ast.UseGlob || prefixString(tree) != "std::collections" {
		t.Errorf("kind=%v prefix=%q", tree.Kind, prefixString(tree))
	}
}

func TestParseUse_Nested(t *testing.T) {
	tree := parseUseString(t, "use a::{self, b, c::{d, e as f}, *};")
	if tree.Kind != ast.UseNested {
		t.Fatalf("kind = %v, want nested", tree.Kind)
	}
	if len(tree.Children) != 4 {
		t.Fatalf("children = %d, want 4", len(tree.Children))
	}
	if tree.Children[0].Prefix[0].Name != "self" {
		t.Errorf("first child = %q", prefixString(&tree.Children[0]))
	}
	inner := tree.Children[2]
	if inner.Kind != ast.UseNested || len(inner.Children) != 2 || inner.Children[1].Alias != "f" {
		t.Errorf("inner group: %+v", inner)
	}
	if tree.Children[3].Kind != ast.UseGlob || len(tree.Children[3].Prefix) != 0 {
		t.Errorf("last child must be a bare glob")
	}
}

func TestParseUse_EmptyAndBareGroups(t *testing.T) {
	tree := parseUseString(t, "use a::{};")
	if tree.Kind != ast.UseNested || len(tree.Children) != 0 {
		t.Errorf("empty group: %+v", tree)
	}
	tree = parseUseString(t, "use {a, b};")
	if tree.Kind != ast.UseNested || len(tree.Prefix) != 0 || len(tree.Children) != 2 {
		t.Errorf("bare group: %+v", tree)
	}
}

func TestParseUse_Errors(t *testing.T) {
	tests := []string{
		"use ;",
		"use a::{b, c;",
		"use a::b",
		"use a as;",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, _, bag := parseSource(t, input)
			if !bag.HasErrors() {
				t.Fatalf("expected errors for %q", input)
			}
		})
	}
}
