package parser

import (
	"testing"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/token"
)

func parseMacroExpr(t *testing.T, input string) (*ast.Builder, *ast.MacroCall) {
	t.Helper()
	arenas, id := parseExprString(t, input)
	data, ok := arenas.Exprs.Macro(id)
	if !ok {
		t.Fatalf("expected macro, got %v", arenas.Exprs.Get(id).Kind)
	}
	return arenas, data.Macro
}

func TestParseMacroCall_Delimiters(t *testing.T) {
	tests := []struct {
		input string
		delim token.Kind
		body  int
	}{
		{"println!(\"{}\", x)", token.LParen, 3},
		{"vec![0; n]", token.LBracket, 3},
		{"thread_local! { static X: u8 = 0; }", token.LBrace, 7},
		{"std::format!()", token.LParen, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, m := parseMacroExpr(t, tt.input)
			if m.Delim != tt.delim {
				t.Errorf("delim = %v, want %v", m.Delim, tt.delim)
			}
			if len(m.Body) != tt.body {
				t.Errorf("body tokens = %d, want %d", len(m.Body), tt.body)
			}
		})
	}
}

func TestParseMacroArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		args     int
		repeat   bool
		trailing bool
	}{
		{"call-like", "assert_eq!(a, b + 1)", true, 2, false, false},
		{"trailing comma", "vec![1, 2, 3,]", true, 3, false, true},
		{"repeat", "vec![0u8; 16]", true, 2, true, false},
		{"empty", "todo!()", true, 0, false, false},
		{"not expressions", "matches!(x, Some(_) | None)", false, 0, false, false},
		{"brace body", "lazy! { a, b }", false, 0, false, false},
		{"comment inside", "f!(a, /* keep */ b)", false, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, m := parseMacroExpr(t, tt.input)
			bag := diag.NewBag(10)
			args, ok := ParseMacroArgs(m, arenas, Options{MaxErrors: 10, Reporter: diag.BagReporter{Bag: bag}})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if len(args.Exprs) != tt.args || args.Repeat != tt.repeat || args.Trailing != tt.trailing {
				t.Errorf("args=%d repeat=%v trailing=%v", len(args.Exprs), args.Repeat, args.Trailing)
			}
		})
	}
}

func TestParseMacroItem_Semicolons(t *testing.T) {
	arenas, items := mustParseItems(t, "lazy_static! { static ref X: u8 = 1; }\nmy_macro!(a);\n")
	first, _ := arenas.Items.Macro(items[0])
	second, _ := arenas.Items.Macro(items[1])
	if first.Semi || !second.Semi {
		t.Errorf("semi flags: %v %v", first.Semi, second.Semi)
	}

	_, _, bag := parseSource(t, "my_macro!(a)\n")
	if !bag.HasErrors() {
		t.Errorf("paren macro item without ';' must fail")
	}
}
