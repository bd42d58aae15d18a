package parser

import (
	"testing"

	"rfmt/internal/ast"
	"rfmt/internal/token"
)

func parseTypeString(t *testing.T, input string) (*ast.Builder, *ast.Type) {
	t.Helper()
	p, arenas, bag := makeTestParser(input)
	id, ok := p.parseType()
	if !ok || bag.HasErrors() {
		t.Fatalf("parse %q failed: %s", input, diagnosticsSummary(bag))
	}
	if !p.at(token.EOF) {
		t.Fatalf("parse %q: trailing token %q", input, p.peek().Text)
	}
	return arenas, arenas.Types.Get(id)
}

func TestParseType_Kinds(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.TypeKind
	}{
		{"u8", ast.TypePath},
		{"std::collections::HashMap<String, Vec<u8>>", ast.TypePath},
		{"&'a mut T", ast.TypeRef},
		{"*const u8", ast.TypePtr},
		{"[u8]", ast.TypeSlice},
		{"[u8; 32]", ast.TypeArray},
		{"()", ast.TypeTuple},
		{"(A, B)", ast.TypeTuple},
		{"(A)", ast.TypeParen},
		{"fn(i32) -> bool", ast.TypeFn},
		{"unsafe extern \"C\" fn()", ast.TypeFn},
		{"impl Iterator<Item = u8> + Send", ast.TypeImpl},
		{"dyn Fn(&str) -> String", ast.TypeDyn},
		{"!", ast.TypeNever},
		{"_", ast.TypeInfer},
		{"<T as Trait>::Out", ast.TypePath},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ty := parseTypeString(t, tt.input)
			if ty.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ty.Kind, tt.kind)
			}
		})
	}
}

func TestParseType_NestedGenericsSplitShr(t *testing.T) {
	arenas, ty := parseTypeString(t, "Vec<Vec<Option<u8>>>")
	seg := ty.Path.Segments[0]
	if seg.Args == nil || len(seg.Args.Args) != 1 {
		t.Fatalf("expected one generic argument")
	}
	inner := arenas.Types.Get(seg.Args.Args[0].Type)
	if inner.Path.Last() != "Vec" {
		t.Errorf("inner = %q", inner.Path.Last())
	}
}

func TestParseType_RefDetails(t *testing.T) {
	arenas, ty := parseTypeString(t, "&'a mut [T]")
	if ty.Lifetime != "'a" || !ty.Mut {
		t.Errorf("lifetime=%q mut=%v", ty.Lifetime, ty.Mut)
	}
	if arenas.Types.Get(ty.Elem).Kind != ast.TypeSlice {
		t.Errorf("elem must be a slice")
	}
}

func TestParseType_GenericArgKinds(t *testing.T) {
	_, ty := parseTypeString(t, "Foo<'a, T, Item = U, 3, { N + 1 }>")
	args := ty.Path.Segments[0].Args.Args
	if len(args) != 5 {
		t.Fatalf("args = %d, want 5", len(args))
	}
	if args[0].Lifetime != "'a" {
		t.Errorf("arg0 = %+v", args[0])
	}
	if args[2].Binding != "Item" {
		t.Errorf("arg2 = %+v", args[2])
	}
	if !args[3].Const.IsValid() || !args[4].Const.IsValid() {
		t.Errorf("const args not recognised")
	}
}

func TestParseType_QualifiedPath(t *testing.T) {
	arenas, ty := parseTypeString(t, "<Vec<T> as IntoIterator>::Item")
	qs := ty.Path.QSelf
	if qs == nil || !qs.Trait.IsValid() {
		t.Fatalf("expected qualified self with trait")
	}
	if arenas.Types.Get(qs.Type).Path.Last() != "Vec" {
		t.Errorf("qself type mismatch")
	}
	if ty.Path.Last() != "Item" || len(ty.Path.Segments) != 1 {
		t.Errorf("segments = %+v", ty.Path.Segments)
	}
}
