package parser

import (
	"testing"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/source"
	"rfmt/internal/testkit"
)

func TestParseFile_SpanInvariants(t *testing.T) {
	inputs := []string{
		"",
		"fn main() {}\n",
		"// leading\nuse a::{b, c};\n\nstruct S { x: u32 } // trailing\n",
		"mod m {\n    fn f() {}\n    mod n {\n        const X: u8 = 1;\n    }\n}\n",
		"impl<T> Tr for S<T> where T: Copy {\n    /* body */\n    fn g(&self) -> T { self.x }\n}\n",
		"trait Tr {\n    fn h();\n}\nextern \"C\" {\n    fn puts(s: *const u8);\n}\n",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual("test.rs", []byte(input)))
		bag := diag.NewBag(100)
		b := ast.NewBuilder(ast.Hints{})
		res := ParseFile(sf, b, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected errors: %s", input, diagnosticsSummary(bag))
		}
		if err := testkit.CheckSpanInvariants(b, res.File, sf); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
