package parser

import (
	"testing"

	"rfmt/internal/ast"
)

func TestParseItems_Kinds(t *testing.T) {
	input := `
extern crate alloc as a;
use std::io;
pub(crate) fn main() {}
struct Unit;
enum E { A }
type Alias<T> = Vec<T>;
const N: usize = 4;
static mut COUNT: u32 = 0;
trait Tr {}
impl Tr for Unit {}
mod inner { fn helper() {} }
extern "C" { fn abs(x: i32) -> i32; }
macro_rules! m { () => {} }
println!("top");
`
	arenas, items := mustParseItems(t, input)
	want := []ast.ItemKind{
		ast.ItemExternCrate, ast.ItemUse, ast.ItemFn, ast.ItemStruct, ast.ItemEnum,
		ast.ItemTypeAlias, ast.ItemConst, ast.ItemStatic, ast.ItemTrait, ast.ItemImpl,
		ast.ItemMod, ast.ItemExternBlock, ast.ItemMacro, ast.ItemMacro,
	}
	if len(items) != len(want) {
		t.Fatalf("items = %d, want %d", len(items), len(want))
	}
	for i, id := range items {
		if got := arenas.Items.Get(id).Kind; got != want[i] {
			t.Errorf("item %d: kind %v, want %v", i, got, want[i])
		}
	}
}

func TestParseFn_Signature(t *testing.T) {
	input := `pub const unsafe extern "C" fn f<'a, T: Clone + ?Sized, const N: usize>(&'a mut self, x: &T, ...) -> Option<T> where T: Default {}`
	arenas, items := mustParseItems(t, input)
	fn, ok := arenas.Items.Fn(items[0])
	if !ok {
		t.Fatalf("expected fn")
	}
	sig := fn.Sig
	if !sig.Const || !sig.Unsafe || !sig.HasExtern || sig.Abi != `"C"` {
		t.Errorf("qualifiers: const=%v unsafe=%v extern=%v abi=%q", sig.Const, sig.Unsafe, sig.HasExtern, sig.Abi)
	}
	if sig.Name.Name != "f" {
		t.Errorf("name = %q", sig.Name.Name)
	}
	if len(sig.Generics.Params) != 3 {
		t.Fatalf("generic params = %d, want 3", len(sig.Generics.Params))
	}
	if len(sig.Generics.Params[1].Bounds) != 2 || !sig.Generics.Params[1].Bounds[1].Maybe {
		t.Errorf("T bounds: %+v", sig.Generics.Params[1].Bounds)
	}
	if sig.Generics.Where == nil || len(sig.Generics.Where.Predicates) != 1 {
		t.Errorf("expected one where predicate")
	}
	if len(sig.Params) != 2 || !sig.Variadic {
		t.Fatalf("params = %d variadic = %v", len(sig.Params), sig.Variadic)
	}
	self := sig.Params[0]
	if self.Self != ast.SelfRef || !self.SelfMut || self.SelfLifetime != "'a" {
		t.Errorf("self param: %+v", self)
	}
	if !sig.Output.IsValid() {
		t.Errorf("expected return type")
	}
	if fn.Body == nil {
		t.Errorf("expected body")
	}
}

func TestParseFn_TraitMethodWithoutBody(t *testing.T) {
	arenas, items := mustParseItems(t, "trait T { fn f(&self); fn g(self: Box<Self>) {} }")
	tr, ok := arenas.Items.Trait(items[0])
	if !ok || len(tr.Items) != 2 {
		t.Fatalf("expected trait with two items")
	}
	f, _ := arenas.Items.Fn(tr.Items[0])
	if f.Body != nil {
		t.Errorf("f must have no body")
	}
	g, _ := arenas.Items.Fn(tr.Items[1])
	if g.Sig.Params[0].Self != ast.SelfValue || !g.Sig.Params[0].Type.IsValid() {
		t.Errorf("typed self: %+v", g.Sig.Params[0])
	}
}

func TestParseStruct_Forms(t *testing.T) {
	tests := []struct {
		input  string
		kind   ast.StructKind
		fields int
	}{
		{"struct A;", ast.StructUnit, 0},
		{"struct B(pub u8, String);", ast.StructTuple, 2},
		{"struct C { a: i32, pub(crate) b: Vec<u8>, }", ast.StructNamed, 2},
		{"struct D<T> where T: Copy { t: T }", ast.StructNamed, 1},
		{"struct E {}", ast.StructNamed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			arenas, items := mustParseItems(t, tt.input)
			st, ok := arenas.Items.Struct(items[0])
			if !ok {
				t.Fatalf("expected struct")
			}
			if st.Kind != tt.kind || len(st.Fields) != tt.fields {
				t.Errorf("kind=%v fields=%d", st.Kind, len(st.Fields))
			}
		})
	}
}

func TestParseEnum_Variants(t *testing.T) {
	input := `enum Shape {
    #[default]
    Empty,
    Circle(f64),
    Rect { w: f64, h: f64 },
    Tagged = 4,
}`
	arenas, items := mustParseItems(t, input)
	en, ok := arenas.Items.Enum(items[0])
	if !ok {
		t.Fatalf("expected enum")
	}
	if len(en.Variants) != 4 {
		t.Fatalf("variants = %d", len(en.Variants))
	}
	if len(en.Variants[0].Attrs) != 1 || en.Variants[0].Attrs[0].Body != "default" {
		t.Errorf("attrs: %+v", en.Variants[0].Attrs)
	}
	if en.Variants[1].Kind != ast.StructTuple || en.Variants[2].Kind != ast.StructNamed {
		t.Errorf("variant kinds: %v %v", en.Variants[1].Kind, en.Variants[2].Kind)
	}
	if !en.Variants[3].Discriminant.IsValid() {
		t.Errorf("expected discriminant")
	}
}

func TestParseImpl_Forms(t *testing.T) {
	tests := []struct {
		input    string
		trait    bool
		negative bool
		items    int
	}{
		{"impl Foo { fn a() {} const X: u8 = 1; }", false, false, 2},
		{"impl<T: Debug> fmt::Display for Wrapper<T> { type Output = T; }", true, false, 1},
		{"unsafe impl Send for Ptr {}", true, false, 0},
		{"impl !Sync for Cell {}", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			arenas, items := mustParseItems(t, tt.input)
			im, ok := arenas.Items.Impl(items[0])
			if !ok {
				t.Fatalf("expected impl")
			}
			if im.Trait.IsValid() != tt.trait || im.Negative != tt.negative || len(im.Items) != tt.items {
				t.Errorf("trait=%v negative=%v items=%d", im.Trait.IsValid(), im.Negative, len(im.Items))
			}
		})
	}
}

func TestParseMod_InlineAndFile(t *testing.T) {
	arenas, items := mustParseItems(t, "mod a;\npub mod b {\n    #![allow(dead_code)]\n    fn c() {}\n}")
	a, _ := arenas.Items.Mod(items[0])
	b, _ := arenas.Items.Mod(items[1])
	if a.Inline || !b.Inline {
		t.Errorf("inline flags: a=%v b=%v", a.Inline, b.Inline)
	}
	if len(b.InnerAttrs) != 1 || len(b.Items) != 1 {
		t.Errorf("b: inner attrs=%d items=%d", len(b.InnerAttrs), len(b.Items))
	}
	if head := arenas.Items.Get(items[1]); head.Vis.Kind != ast.VisPub {
		t.Errorf("b visibility = %v", head.Vis.Kind)
	}
}

func TestParseAttrs_OuterAndInner(t *testing.T) {
	arenas, file, bag := parseSource(t, "#![no_std]\n\n#[derive(Debug, Clone)]\n#[cfg(test)]\nstruct S;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
	if len(file.InnerAttrs) != 1 || file.InnerAttrs[0].Body != "no_std" {
		t.Errorf("inner attrs: %+v", file.InnerAttrs)
	}
	head := arenas.Items.Get(file.Items[0])
	if len(head.Attrs) != 2 || head.Attrs[0].Body != "derive(Debug, Clone)" {
		t.Errorf("outer attrs: %+v", head.Attrs)
	}
}
