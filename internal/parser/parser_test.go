package parser

import (
	"testing"

	"rfmt/internal/ast"
)

func TestParseFile_RecoversAtTopLevel(t *testing.T) {
	input := "fn ok() {}\nstruct Broken { a: }\nfn also_ok() {}\n"
	arenas, file, bag := parseSource(t, input)
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	var names []string
	for _, id := range file.Items {
		if fn, ok := arenas.Items.Fn(id); ok {
			names = append(names, fn.Sig.Name.Name)
		}
	}
	if len(names) != 2 || names[0] != "ok" || names[1] != "also_ok" {
		t.Errorf("recovered fns = %v", names)
	}
}

func TestParseFile_CollectsComments(t *testing.T) {
	input := "// head\nfn f() {\n    /* inner */\n}\n/// doc\nstruct S; // tail\n"
	_, file, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
	if len(file.Comments) != 4 {
		t.Fatalf("comments = %d, want 4", len(file.Comments))
	}
	for _, c := range file.Comments {
		if !c.IsComment() {
			t.Errorf("non-comment trivia collected: %+v", c)
		}
	}
}

func TestParseFile_MaxErrors(t *testing.T) {
	input := "fn a( fn b( fn c( fn d("
	_, _, bag := parseSource(t, input)
	if bag.Len() == 0 {
		t.Fatalf("expected diagnostics")
	}
	if bag.Len() > 100 {
		t.Errorf("diagnostics not capped: %d", bag.Len())
	}
}

func TestParseFile_Spans(t *testing.T) {
	input := "pub fn f() {}\n"
	arenas, file, _ := parseSource(t, input)
	span := arenas.ItemSpan(file.Items[0])
	if got := input[span.Start:span.End]; got != "pub fn f() {}" {
		t.Errorf("item span covers %q", got)
	}
	if arenas.Items.Get(file.Items[0]).Kind != ast.ItemFn {
		t.Errorf("expected fn")
	}
}
