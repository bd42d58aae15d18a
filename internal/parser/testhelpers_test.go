package parser

import (
	"fmt"
	"strings"
	"testing"

	"rfmt/internal/ast"
	"rfmt/internal/diag"
	"rfmt/internal/lexer"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// makeTestParser: парсер над строкой без ParseFile, для точечных тестов.
func makeTestParser(input string) (*Parser, *ast.Builder, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.New(file, lexer.Options{Reporter: reporter}).All()

	arenas := ast.NewBuilder(ast.Hints{})
	p := newParser(toks, arenas, Options{MaxErrors: 100, Reporter: reporter})
	p.file = arenas.NewFile(source.Span{File: fileID, End: uint32(len(input))})
	return p, arenas, bag
}

// parseSource разбирает целый файл через ParseFile.
func parseSource(t *testing.T, input string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))

	bag := diag.NewBag(100)
	arenas := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs.Get(fileID), arenas, Options{MaxErrors: 100, Reporter: diag.BagReporter{Bag: bag}})
	return arenas, arenas.Files.Get(res.File), bag
}

// mustParseItems: файл без ошибок; возвращает его элементы.
func mustParseItems(t *testing.T, input string) (*ast.Builder, []ast.ItemID) {
	t.Helper()
	arenas, file, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
	return arenas, file.Items
}

// parseExprString разбирает одно выражение и проверяет, что поток исчерпан.
func parseExprString(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	p, arenas, bag := makeTestParser(input)
	id, ok := p.parseExpr()
	if !ok || bag.HasErrors() {
		t.Fatalf("parse %q failed: %s", input, diagnosticsSummary(bag))
	}
	if !p.at(token.EOF) {
		t.Fatalf("parse %q: trailing token %q", input, p.peek().Text)
	}
	return arenas, id
}

// dumpExpr печатает выражение в виде S-выражения для сравнения структуры.
func dumpExpr(b *ast.Builder, id ast.ExprID) string {
	if !id.IsValid() {
		return "_"
	}
	exprs := b.Exprs
	expr := exprs.Get(id)
	switch expr.Kind {
	case ast.ExprPath:
		d, _ := exprs.Path(id)
		return dumpPath(d.Path)
	case ast.ExprLit:
		d, _ := exprs.Literal(id)
		return d.Text
	case ast.ExprUnary:
		d, _ := exprs.Unary(id)
		return "(" + strings.TrimSpace(d.Op.Text()) + " " + dumpExpr(b, d.X) + ")"
	case ast.ExprBinary, ast.ExprAssign:
		d, _ := exprs.Binary(id)
		return "(" + d.Op.Text() + " " + dumpExpr(b, d.Left) + " " + dumpExpr(b, d.Right) + ")"
	case ast.ExprCast:
		d, _ := exprs.Cast(id)
		return "(as " + dumpExpr(b, d.X) + ")"
	case ast.ExprRange:
		d, _ := exprs.Range(id)
		return "(" + d.Op.Text() + " " + dumpExpr(b, d.Lo) + " " + dumpExpr(b, d.Hi) + ")"
	case ast.ExprCall:
		d, _ := exprs.Call(id)
		return "(call " + dumpExpr(b, d.Fn) + dumpList(b, d.Args) + ")"
	case ast.ExprMethodCall:
		d, _ := exprs.MethodCall(id)
		return "(." + d.Name.Name + " " + dumpExpr(b, d.Recv) + dumpList(b, d.Args) + ")"
	case ast.ExprField:
		d, _ := exprs.Field(id)
		return "(. " + dumpExpr(b, d.X) + " " + d.Name.Name + ")"
	case ast.ExprIndex:
		d, _ := exprs.Index(id)
		return "(index " + dumpExpr(b, d.X) + " " + dumpExpr(b, d.Index) + ")"
	case ast.ExprTry:
		d, _ := exprs.Wrap(id)
		return "(? " + dumpExpr(b, d.X) + ")"
	case ast.ExprAwait:
		d, _ := exprs.Wrap(id)
		return "(await " + dumpExpr(b, d.X) + ")"
	case ast.ExprParen:
		d, _ := exprs.Wrap(id)
		return "(paren " + dumpExpr(b, d.X) + ")"
	case ast.ExprTuple:
		d, _ := exprs.List(id)
		return "(tuple" + dumpList(b, d.Elems) + ")"
	case ast.ExprArray:
		d, _ := exprs.List(id)
		return "(array" + dumpList(b, d.Elems) + ")"
	case ast.ExprRepeat:
		d, _ := exprs.Repeat(id)
		return "(repeat " + dumpExpr(b, d.Elem) + " " + dumpExpr(b, d.Len) + ")"
	case ast.ExprStruct:
		d, _ := exprs.Struct(id)
		names := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			names = append(names, f.Name.Name)
		}
		return "(struct " + dumpPath(d.Path) + " " + strings.Join(names, ",") + ")"
	case ast.ExprMacro:
		d, _ := exprs.Macro(id)
		return "(macro " + dumpPath(d.Macro.Path) + ")"
	default:
		return "<" + fmt.Sprint(expr.Kind) + ">"
	}
}

func dumpList(b *ast.Builder, ids []ast.ExprID) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(" ")
		sb.WriteString(dumpExpr(b, id))
	}
	return sb.String()
}

func dumpPath(path ast.Path) string {
	parts := make([]string, 0, len(path.Segments))
	for _, seg := range path.Segments {
		parts = append(parts, seg.Name.Name)
	}
	s := strings.Join(parts, "::")
	if path.Global {
		s = "::" + s
	}
	return s
}
