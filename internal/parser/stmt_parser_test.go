package parser

import (
	"testing"

	"rfmt/internal/ast"
)

func parseBlockString(t *testing.T, input string) (*ast.Builder, *ast.Block) {
	t.Helper()
	p, arenas, bag := makeTestParser(input)
	blk, ok := p.parseBlock()
	if !ok || bag.HasErrors() {
		t.Fatalf("parse %q failed: %s", input, diagnosticsSummary(bag))
	}
	return arenas, blk
}

func TestParseStmt_Kinds(t *testing.T) {
	input := `{
    let x = 1;
    let (a, b): (u8, u8);
    let Some(v) = opt else { return; };
    ;
    fn nested() {}
    #[allow(unused)]
    call();
    if x { a } else { b }
    loop {}
    x + 1
}`
	arenas, blk := parseBlockString(t, input)
	want := []ast.StmtKind{
		ast.StmtLet, ast.StmtLet, ast.StmtLet, ast.StmtEmpty, ast.StmtItem,
		ast.StmtExpr, ast.StmtExpr, ast.StmtExpr, ast.StmtExpr,
	}
	if len(blk.Stmts) != len(want) {
		t.Fatalf("stmts = %d, want %d", len(blk.Stmts), len(want))
	}
	for i, id := range blk.Stmts {
		if got := arenas.Stmts.Get(id).Kind; got != want[i] {
			t.Errorf("stmt %d: kind %v, want %v", i, got, want[i])
		}
	}

	letElse := arenas.Stmts.Get(blk.Stmts[2])
	if letElse.Else == nil {
		t.Errorf("let-else must keep its else block")
	}
	typed := arenas.Stmts.Get(blk.Stmts[1])
	if !typed.Type.IsValid() || typed.Init.IsValid() {
		t.Errorf("typed let without init: %+v", typed)
	}
	attributed := arenas.Stmts.Get(blk.Stmts[5])
	if len(attributed.Attrs) != 1 || !attributed.Semi {
		t.Errorf("attributed call: %+v", attributed)
	}
	if tail := arenas.Stmts.Get(blk.Stmts[8]); tail.Semi {
		t.Errorf("tail expression must not have ';'")
	}
}

func TestParseStmt_BlockLikeStopsExpression(t *testing.T) {
	// `if ..{} - 1`: это две инструкции, а не вычитание.
	arenas, blk := parseBlockString(t, "{ if c {} -1 }")
	if len(blk.Stmts) != 2 {
		t.Fatalf("stmts = %d, want 2", len(blk.Stmts))
	}
	second := arenas.Stmts.Get(blk.Stmts[1])
	if got := dumpExpr(arenas, second.Expr); got != "(- 1)" {
		t.Errorf("second = %s", got)
	}
}

func TestParseStmt_MethodOnBlockLike(t *testing.T) {
	arenas, blk := parseBlockString(t, "{ match x { _ => v }.len() }")
	if len(blk.Stmts) != 1 {
		t.Fatalf("stmts = %d, want 1", len(blk.Stmts))
	}
	st := arenas.Stmts.Get(blk.Stmts[0])
	if arenas.Exprs.Get(st.Expr).Kind != ast.ExprMethodCall {
		t.Errorf("expected method call on match")
	}
}

func TestParseStmt_MissingSemicolon(t *testing.T) {
	p, _, bag := makeTestParser("{ a() b() }")
	if _, ok := p.parseBlock(); ok {
		t.Fatalf("expected failure")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
}

func TestParseStmt_RecoversInsideBlock(t *testing.T) {
	p, _, bag := makeTestParser("{ let = 1; let y = 2; }")
	blk, ok := p.parseBlock()
	if ok || blk != nil {
		t.Fatalf("block with a bad statement must report failure")
	}
	if bag.Len() != 1 {
		t.Errorf("diagnostics = %s, want exactly one", diagnosticsSummary(bag))
	}
}
