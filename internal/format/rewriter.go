package format

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/config"
	"rfmt/internal/diag"
	"rfmt/internal/parser"
	"rfmt/internal/session"
	"rfmt/internal/source"
	"rfmt/internal/token"
)

// Result is the formatted text of one file.
type Result struct {
	Text []byte
	// Unformatted counts the constructs emitted verbatim.
	Unformatted int
}

type fallback struct {
	span source.Span
	code diag.Code
	msg  string
}

// rewriter: контекст одного прохода форматирования файла.
type rewriter struct {
	cfg      *config.Config
	sess     *session.Session
	b        *ast.Builder
	sf       *source.File
	src      []byte
	comments *commentIndex

	maxWidth int
	tab      int
	hardTabs bool
	coverage bool

	fallbacks map[source.Span]fallback
	macros    map[*ast.MacroCall]macroParse
	err       error
}

func newRewriter(sf *source.File, b *ast.Builder, comments []token.Trivia, cfg *config.Config, sess *session.Session) *rewriter {
	return &rewriter{
		cfg:       cfg,
		sess:      sess,
		b:         b,
		sf:        sf,
		src:       sf.Content,
		maxWidth:  cfg.MaxWidth(),
		tab:       max(cfg.TabSpaces(), 1),
		hardTabs:  cfg.HardTabs(),
		coverage:  cfg.WriteMode() == config.WriteCoverage,
		fallbacks: make(map[source.Span]fallback),
		macros:    make(map[*ast.MacroCall]macroParse),
		comments:  newCommentIndex(comments, sf.Content),
	}
}

// FormatFile renders the parsed file fid of sf. Diagnostics about verbatim
// fallbacks and TODO/FIXME comments go to sess.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID, cfg *config.Config, sess *session.Session) (Result, error) {
	if sf == nil {
		return Result{}, errors.New("format: nil source file")
	}
	if b == nil {
		return Result{}, errors.New("format: nil builder")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return Result{}, errors.New("format: missing ast file")
	}
	if cfg == nil {
		cfg = config.Default()
	}

	r := newRewriter(sf, b, file.Comments, cfg, sess)
	text := r.file(file)
	if r.err != nil {
		return Result{}, r.err
	}
	if r.coverage {
		text = coverX(text)
	}
	r.reportTodos()
	r.flushFallbacks()
	return Result{Text: []byte(text), Unformatted: len(r.fallbacks)}, nil
}

func (r *rewriter) file(f *ast.File) string {
	elems := make([]seqElem, 0, len(f.InnerAttrs)+len(f.Items))
	for _, a := range f.InnerAttrs {
		elems = append(elems, seqElem{span: a.Span, text: r.attr(a)})
	}
	elems = append(elems, r.itemSeq(f.Items, 0)...)
	out := strings.TrimLeft(r.joinSeq(0, uint32(len(r.src)), elems, 0), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// malformed records the first hard error; the caller emits the snippet.
func (r *rewriter) malformed(span source.Span, what string) string {
	if r.err == nil {
		r.err = fmt.Errorf("format: malformed %s at %s", what, span)
	}
	return r.snippet(span)
}

func (r *rewriter) snippet(span source.Span) string {
	if span.End > uint32(len(r.src)) || span.Start > span.End {
		return ""
	}
	return string(r.src[span.Start:span.End])
}

// Границы verbatim-участков в режиме coverage; снимаются в coverX.
const (
	coverOpen  = '\uE000'
	coverClose = '\uE001'
)

// verbatim emits span as written. In coverage mode the text is fenced so
// that coverX can replace it once the whole file is rendered.
func (r *rewriter) verbatim(span source.Span) string {
	s := r.snippet(span)
	if !r.coverage {
		return s
	}
	return string(coverOpen) + s + string(coverClose)
}

// coverX turns every visible char of the fenced regions into X.
func coverX(s string) string {
	depth := 0
	return strings.Map(func(c rune) rune {
		switch {
		case c == coverOpen:
			depth++
			return -1
		case c == coverClose:
			depth--
			return -1
		case depth > 0 && c != ' ' && c != '\t' && c != '\n':
			return 'X'
		}
		return c
	}, s)
}

// unformattable logs a verbatim fallback once per span.
func (r *rewriter) unformattable(span source.Span, code diag.Code, msg string) {
	if _, ok := r.fallbacks[span]; ok {
		return
	}
	r.fallbacks[span] = fallback{span: span, code: code, msg: msg}
}

// guarded keeps text only when it carries every comment of span.
func (r *rewriter) guarded(span source.Span, text string) string {
	if r.sameComments(span, text) {
		return text
	}
	r.unformattable(span, diag.FmtLostComment, "comments could not be placed; left as written")
	return r.verbatim(span)
}

func (r *rewriter) flushFallbacks() {
	if r.sess == nil || len(r.fallbacks) == 0 {
		return
	}
	list := make([]fallback, 0, len(r.fallbacks))
	for _, fb := range r.fallbacks {
		list = append(list, fb)
	}
	slices.SortFunc(list, func(a, b fallback) int {
		if a.span.Start != b.span.Start {
			return int(a.span.Start) - int(b.span.Start)
		}
		return int(a.span.End) - int(b.span.End)
	})
	sev := diag.SevInfo
	if r.cfg.ErrorOnUnformatted() {
		sev = diag.SevError
	}
	for _, fb := range list {
		diag.NewReportBuilder(r.sess, sev, fb.code, fb.span, fb.msg).Emit()
	}
}

func (r *rewriter) reportTodos() {
	if r.sess == nil {
		return
	}
	markers := []struct {
		word   string
		code   diag.Code
		tactic config.ReportTactic
	}{
		{"TODO", diag.FmtTodo, r.cfg.ReportTodo()},
		{"FIXME", diag.FmtFixme, r.cfg.ReportFixme()},
	}
	for _, c := range r.comments.all() {
		for _, m := range markers {
			if m.tactic == config.ReportNever {
				continue
			}
			_, rest, found := strings.Cut(c.Text, m.word)
			if !found {
				continue
			}
			if m.tactic == config.ReportUnnumbered && todoNumbered(rest) {
				continue
			}
			diag.ReportWarning(r.sess, m.code, c.Span, "found "+m.word+" comment: "+strings.TrimSpace(c.Text)).Emit()
		}
	}
}

// seqElem: элемент последовательности (item, statement), уже отрендеренный.
type seqElem struct {
	span source.Span
	text string
}

// joinSeq places elems one per line at indent, keeping the comments and
// blank lines found between them in [lo, hi). Every element and comment is
// preceded by a line break; blank lines at the edges are dropped.
func (r *rewriter) joinSeq(lo, hi uint32, elems []seqElem, indent int) string {
	var sb strings.Builder
	ind := r.indent(indent)
	bound := r.cfg.BlankLinesUpperBound()
	pos := lo
	started := false

	gap := func(target uint32) {
		for _, c := range r.comments.between(pos, target) {
			text := reindentTail(r.rewriteComment(c, true, indent), ind)
			if started && r.comments.sameLine(pos, c.Start) {
				sb.WriteString(" " + text)
			} else {
				if started {
					sb.WriteString(strings.Repeat("\n", min(max(r.comments.newlinesIn(pos, c.Start)-1, 0), bound)))
				}
				sb.WriteString("\n" + ind + text)
			}
			started = true
			pos = c.End
		}
	}

	for _, el := range elems {
		gap(el.span.Start)
		if started {
			sb.WriteString(strings.Repeat("\n", min(max(r.comments.newlinesIn(pos, el.span.Start)-1, 0), bound)))
		}
		sb.WriteString("\n" + ind + el.text)
		started = true
		pos = max(pos, el.span.End)
	}
	gap(hi)
	return sb.String()
}

// parseSnippet разбирает текст заново в отдельном наборе файлов.
func parseSnippet(path string, text []byte) (*source.File, *ast.Builder, *ast.File, *session.Session) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(path, text))
	sess := session.New(fs, nil, session.Silence, nil)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(sf, b, parser.Options{Reporter: sess, MaxErrors: 64})
	return sf, b, b.Files.Get(res.File), sess
}

// CheckRoundTrip formats sf with cfg, re-parses the output and verifies that
// the item structure survived and that formatting is a fixed point.
func CheckRoundTrip(sf *source.File, cfg *config.Config) (ok bool, msg string) {
	formatOnce := func(text []byte) ([]byte, *ast.Builder, *ast.File, string) {
		src, b, f, sess := parseSnippet(sf.Path, text)
		if f == nil || sess.HasErrors() {
			return nil, nil, nil, "parse has errors"
		}
		out, err := formatParsed(src, b, f, cfg)
		if err != nil {
			return nil, nil, nil, "formatter failed: " + err.Error()
		}
		return out, b, f, ""
	}

	first, origB, origF, problem := formatOnce(sf.Content)
	if problem != "" {
		return false, "fmt-check: initial " + problem
	}
	second, newB, newF, problem := formatOnce(first)
	if problem != "" {
		return false, "fmt-check: re" + problem
	}
	if !slices.Equal(itemOutline(origB, origF.Items), itemOutline(newB, newF.Items)) {
		return false, "fmt-check: item structure differs after round-trip"
	}
	if string(second) != string(first) {
		return false, "fmt-check: output is not a fixed point"
	}
	return true, "fmt-check: OK"
}

func formatParsed(sf *source.File, b *ast.Builder, f *ast.File, cfg *config.Config) ([]byte, error) {
	r := newRewriter(sf, b, f.Comments, cfg, nil)
	text := r.file(f)
	if r.coverage {
		text = coverX(text)
	}
	return []byte(text), r.err
}

// itemOutline: плоское описание дерева items: вид, имя и вложенные items.
func itemOutline(b *ast.Builder, items []ast.ItemID) []string {
	var out []string
	var walk func(ids []ast.ItemID, prefix string)
	walk = func(ids []ast.ItemID, prefix string) {
		for _, id := range ids {
			it := b.Items.Get(id)
			if it == nil {
				continue
			}
			name, children := itemName(b, id, it)
			if it.Kind == ast.ItemUse {
				// импорты сравниваются как множество путей: порядок и группировка меняются
				continue
			}
			key := prefix + it.Kind.String() + " " + name
			out = append(out, key)
			walk(children, key+"/")
		}
	}
	walk(items, "")
	uses := useOutline(b, items)
	slices.Sort(uses)
	return append(out, slices.Compact(uses)...)
}

func itemName(b *ast.Builder, id ast.ItemID, it *ast.Item) (string, []ast.ItemID) {
	switch it.Kind {
	case ast.ItemFn:
		if fn, ok := b.Items.Fn(id); ok {
			stmts := -1
			if fn.Body != nil {
				stmts = len(fn.Body.Stmts)
			}
			return fmt.Sprintf("%s/%d/%d", fn.Sig.Name.Name, len(fn.Sig.Params), stmts), nil
		}
	case ast.ItemStruct:
		if s, ok := b.Items.Struct(id); ok {
			return fmt.Sprintf("%s/%d", s.Name.Name, len(s.Fields)), nil
		}
	case ast.ItemEnum:
		if e, ok := b.Items.Enum(id); ok {
			return fmt.Sprintf("%s/%d", e.Name.Name, len(e.Variants)), nil
		}
	case ast.ItemImpl:
		if im, ok := b.Items.Impl(id); ok {
			return "", im.Items
		}
	case ast.ItemTrait:
		if tr, ok := b.Items.Trait(id); ok {
			return tr.Name.Name, tr.Items
		}
	case ast.ItemMod:
		if m, ok := b.Items.Mod(id); ok {
			return m.Name.Name, m.Items
		}
	case ast.ItemConst, ast.ItemStatic:
		if c, ok := b.Items.Const(id); ok {
			return c.Name.Name, nil
		}
	case ast.ItemTypeAlias:
		if t, ok := b.Items.TypeAlias(id); ok {
			return t.Name.Name, nil
		}
	case ast.ItemExternCrate:
		if ec, ok := b.Items.ExternCrate(id); ok {
			return ec.Name.Name, nil
		}
	case ast.ItemExternBlock:
		if eb, ok := b.Items.ExternBlock(id); ok {
			return "", eb.Items
		}
	case ast.ItemMacro:
		if m, ok := b.Items.Macro(id); ok {
			return m.Macro.Path.Last(), nil
		}
	}
	return "", nil
}

func useOutline(b *ast.Builder, items []ast.ItemID) []string {
	var out []string
	for _, id := range items {
		if u, ok := b.Items.Use(id); ok {
			for _, p := range flattenUseTree(u.Tree, nil) {
				out = append(out, "use "+p.String())
			}
		}
		it := b.Items.Get(id)
		if it == nil {
			continue
		}
		_, children := itemName(b, id, it)
		out = append(out, useOutline(b, children)...)
	}
	return out
}
