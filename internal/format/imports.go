package format

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"rfmt/internal/ast"
	"rfmt/internal/source"
)

// useNode: дерево импорта после нормализации. У синтезированных узлов
// (слияние, unnest) span пустой.
type useNode struct {
	span     source.Span
	brace    source.Span
	segs     []string
	kind     ast.UseTreeKind
	alias    string
	children []*useNode
}

func useFromAST(t *ast.UseTree) *useNode {
	n := &useNode{span: t.Span, brace: t.BraceSpan, kind: t.Kind, alias: t.Alias}
	for _, id := range t.Prefix {
		n.segs = append(n.segs, id.Name)
	}
	for i := range t.Children {
		n.children = append(n.children, useFromAST(&t.Children[i]))
	}
	return n
}

func (n *useNode) isSelf() bool {
	return n.kind == ast.UseSimple && len(n.segs) == 1 && n.segs[0] == "self"
}

// usePath: один импортируемый путь после раскрытия всех скобок.
type usePath struct {
	segs  []string
	glob  bool
	alias string
}

func (p usePath) String() string {
	s := strings.Join(p.segs, "::")
	switch {
	case p.glob && s != "":
		s += "::*"
	case p.glob:
		s = "*"
	case p.alias != "":
		s += " as " + p.alias
	}
	return s
}

// flattenUseTree lists the paths a use tree imports; `a::{self}` counts as `a`.
func flattenUseTree(t ast.UseTree, prefix []string) []usePath {
	return flattenUse(useFromAST(&t), prefix)
}

func flattenUse(n *useNode, prefix []string) []usePath {
	segs := append(slices.Clone(prefix), n.segs...)
	switch n.kind {
	case ast.UseGlob:
		return []usePath{{segs: segs, glob: true}}
	case ast.UseNested:
		var out []usePath
		for _, c := range n.children {
			out = append(out, flattenUse(c, segs)...)
		}
		return out
	}
	if len(segs) > 1 && segs[len(segs)-1] == "self" {
		segs = segs[:len(segs)-1]
	}
	return []usePath{{segs: segs, alias: n.alias}}
}

// normalizeUse strips the leading `::`, collapses single-item braces and
// applies reorder_imported_names and unnest_imports.
func (r *rewriter) normalizeUse(t *ast.UseTree) *useNode {
	n := useFromAST(t)
	r.normalizeNode(n)
	return n
}

func (r *rewriter) normalizeNode(n *useNode) {
	for _, c := range n.children {
		r.normalizeNode(c)
	}
	for n.kind == ast.UseNested && len(n.children) == 1 && !n.children[0].isSelf() {
		c := n.children[0]
		n.segs = append(n.segs, c.segs...)
		n.kind, n.alias, n.children, n.brace = c.kind, c.alias, c.children, c.brace
	}
	if n.kind != ast.UseNested || r.comments.any(n.brace.Start, n.brace.End) {
		return
	}
	if r.cfg.UnnestImports() {
		n.children = unnest(n.children)
	}
	if r.cfg.ReorderImportedNames() {
		slices.SortStableFunc(n.children, compareUse)
	}
}

// unnest поднимает вложенные группы на уровень выше: {b::{c, d}, e} → {b::c, b::d, e}.
// `self` внутри группы становится самим префиксом: {j::{self, k}} → {j, j::k}.
func unnest(children []*useNode) []*useNode {
	var out []*useNode
	for _, c := range children {
		if c.kind != ast.UseNested {
			out = append(out, c)
			continue
		}
		for _, g := range unnest(c.children) {
			if g.isSelf() {
				out = append(out, &useNode{segs: slices.Clone(c.segs), kind: ast.UseSimple, alias: g.alias})
				continue
			}
			out = append(out, &useNode{
				segs:     append(slices.Clone(c.segs), g.segs...),
				kind:     g.kind,
				alias:    g.alias,
				children: g.children,
				brace:    g.brace,
			})
		}
	}
	return out
}

// useKey: сегменты для сравнения; `x as y` и `*` остаются цельными.
func useKey(n *useNode) []string {
	key := slices.Clone(n.segs)
	switch n.kind {
	case ast.UseGlob:
		key = append(key, "*")
	case ast.UseNested:
		var inner []string
		for _, c := range n.children {
			inner = append(inner, strings.Join(useKey(c), "::"))
		}
		key = append(key, "{"+strings.Join(inner, ", ")+"}")
	default:
		if n.alias != "" && len(key) > 0 {
			key[len(key)-1] += " as " + n.alias
		}
	}
	return key
}

// rootRank: self < super < crate < остальные имена.
func rootRank(seg string) int {
	switch seg {
	case "self":
		return 0
	case "super":
		return 1
	case "crate":
		return 2
	}
	return 3
}

func compareSegment(a, b string) int {
	if a == b {
		return 0
	}
	if ra, rb := rootRank(a), rootRank(b); ra != rb {
		return ra - rb
	}
	return strings.Compare(norm.NFC.String(a), norm.NFC.String(b))
}

// compareUse orders imports case-sensitively, segment by segment.
func compareUse(a, b *useNode) int {
	return slices.CompareFunc(useKey(a), useKey(b), compareSegment)
}

// importGroup: 0: std/core/alloc, 1: внешние крейты, 2: crate/self/super.
func importGroup(n *useNode) int {
	if len(n.segs) == 0 {
		return 1
	}
	switch n.segs[0] {
	case "std", "core", "alloc":
		return 0
	case "crate", "self", "super":
		return 2
	}
	return 1
}

func (r *rewriter) useItem(t *ast.UseTree, shape Shape) string {
	return "use " + r.renderUse(r.normalizeUse(t), shape.Shift(4).Sub(1)) + ";"
}

func (r *rewriter) renderUse(n *useNode, shape Shape) string {
	path := strings.Join(n.segs, "::")
	switch n.kind {
	case ast.UseGlob:
		if path == "" {
			return "*"
		}
		return path + "::*"
	case ast.UseSimple:
		if n.alias != "" {
			return path + " as " + n.alias
		}
		return path
	}
	if path != "" {
		path += "::"
	}
	spans := make([]source.Span, len(n.children))
	for i, c := range n.children {
		spans[i] = c.span
	}
	var lo, hi uint32
	if n.brace.End > n.brace.Start {
		lo, hi = n.brace.Start+1, n.brace.End-1
	}
	return path + r.list(listSpec{
		open: "{", close: "}",
		lo: lo, hi: hi,
		spans:    spans,
		render:   func(i int, s Shape) string { return r.renderUse(n.children[i], s) },
		tactic:   r.cfg.ImportsLayout(),
		trailing: r.cfg.TrailingComma(),
	}, shape.Shift(r.width(path)))
}

// useTrie собирает пути слитых импортов.
type useTrie struct {
	order    []string
	next     map[string]*useTrie
	terminal bool
}

func (t *useTrie) insert(p usePath) {
	cur := t
	for i, seg := range p.segs {
		if i == len(p.segs)-1 && p.alias != "" {
			seg += " as " + p.alias
		}
		cur = cur.child(seg)
	}
	if p.glob {
		cur = cur.child("*")
	}
	cur.terminal = true
}

func (t *useTrie) child(seg string) *useTrie {
	if t.next == nil {
		t.next = make(map[string]*useTrie)
	}
	c, ok := t.next[seg]
	if !ok {
		c = &useTrie{}
		t.next[seg] = c
		t.order = append(t.order, seg)
	}
	return c
}

// node turns the trie below seg into a use tree: a chain of single
// children becomes a path, several children a brace group.
func (t *useTrie) node(seg string) *useNode {
	n := &useNode{kind: ast.UseSimple}
	name, alias, _ := strings.Cut(seg, " as ")
	if seg == "*" {
		n.kind = ast.UseGlob
	} else {
		n.segs, n.alias = []string{name}, alias
	}
	cur := t
	for len(cur.order) == 1 && !cur.terminal && n.alias == "" && n.kind == ast.UseSimple {
		seg := cur.order[0]
		next := cur.next[seg]
		if seg == "*" {
			n.kind = ast.UseGlob
			return n
		}
		name, alias, _ := strings.Cut(seg, " as ")
		n.segs = append(n.segs, name)
		n.alias = alias
		cur = next
	}
	if len(cur.order) == 0 || n.alias != "" {
		return n
	}
	n.kind = ast.UseNested
	if cur.terminal {
		n.children = append(n.children, &useNode{kind: ast.UseSimple, segs: []string{"self"}})
	}
	for _, seg := range cur.order {
		n.children = append(n.children, cur.next[seg].node(seg))
	}
	return n
}

// mergeUses сливает деревья, разделяющие первый сегмент.
func mergeUses(trees []*useNode) []*useNode {
	root := &useTrie{}
	for _, t := range trees {
		for _, p := range flattenUse(t, nil) {
			root.insert(p)
		}
	}
	out := make([]*useNode, 0, len(root.order))
	for _, seg := range root.order {
		out = append(out, root.next[seg].node(seg))
	}
	return out
}

// reorganizing: включена ли перестановка или слияние соседних use.
func (r *rewriter) reorganizing() bool {
	return r.cfg.ReorderImports() || r.cfg.MergeImports() || r.cfg.ReorderImportsOpinionated()
}

// useRunEnd returns the end of the run of use items starting at i: adjacent,
// without comments or blank lines between them.
func (r *rewriter) useRunEnd(ids []ast.ItemID, i int) int {
	first := r.b.Items.Get(ids[i])
	if first == nil || first.Kind != ast.ItemUse || r.comments.any(first.Span.Start, first.Span.End) {
		return i
	}
	prev := first
	j := i + 1
	for ; j < len(ids); j++ {
		it := r.b.Items.Get(ids[j])
		if it == nil || it.Kind != ast.ItemUse || r.comments.any(prev.Span.End, it.Span.End) {
			break
		}
		if r.comments.newlinesIn(prev.Span.End, it.Span.Start) > 1 {
			break
		}
		prev = it
	}
	return j
}

type useEntry struct {
	attrs string
	vis   string
	tree  *useNode
}

// useRun renders a run of use items as one element: merged, sorted and
// grouped as configured.
func (r *rewriter) useRun(ids []ast.ItemID, indent int) seqElem {
	var entries []useEntry
	merged := map[string][]*useNode{}
	var visOrder []string
	for _, id := range ids {
		it := r.b.Items.Get(id)
		u, _ := r.b.Items.Use(id)
		e := useEntry{attrs: r.outerAttrs(it.Attrs, indent), vis: r.vis(it.Vis), tree: r.normalizeUse(&u.Tree)}
		if r.cfg.MergeImports() && len(it.Attrs) == 0 {
			if _, seen := merged[e.vis]; !seen {
				visOrder = append(visOrder, e.vis)
				// место группы в выводе: место её первого импорта
				entries = append(entries, useEntry{vis: e.vis})
			}
			merged[e.vis] = append(merged[e.vis], e.tree)
			continue
		}
		entries = append(entries, e)
	}
	if len(visOrder) > 0 {
		var out []useEntry
		for _, e := range entries {
			if e.tree != nil {
				out = append(out, e)
				continue
			}
			for _, t := range mergeUses(merged[e.vis]) {
				r.normalizeNode(t)
				out = append(out, useEntry{vis: e.vis, tree: t})
			}
		}
		entries = out
	}

	opinionated := r.cfg.ReorderImportsOpinionated()
	if r.cfg.ReorderImports() || opinionated {
		slices.SortStableFunc(entries, func(a, b useEntry) int {
			if opinionated {
				if ga, gb := importGroup(a.tree), importGroup(b.tree); ga != gb {
					return ga - gb
				}
			}
			return compareUse(a.tree, b.tree)
		})
	}

	var sb strings.Builder
	shape := r.lineShape(indent)
	for i, e := range entries {
		if i > 0 {
			if opinionated && importGroup(e.tree) != importGroup(entries[i-1].tree) {
				sb.WriteByte('\n')
			}
			sb.WriteString(r.newline(indent))
		}
		head := e.attrs + e.vis + "use "
		sb.WriteString(head + r.renderUse(e.tree, r.shiftAfter(e.vis+"use ", shape).Sub(1)) + ";")
	}
	first, last := r.b.Items.Get(ids[0]), r.b.Items.Get(ids[len(ids)-1])
	return seqElem{span: first.Span.Cover(last.Span), text: sb.String()}
}

// itemSeq renders a sequence of items; runs of use items are reorganized
// together when import reordering or merging is on.
func (r *rewriter) itemSeq(ids []ast.ItemID, indent int) []seqElem {
	elems := make([]seqElem, 0, len(ids))
	for i := 0; i < len(ids); {
		if r.reorganizing() {
			if j := r.useRunEnd(ids, i); j > i {
				elems = append(elems, r.useRun(ids[i:j], indent))
				i = j
				continue
			}
		}
		elems = append(elems, r.itemElem(ids[i], indent))
		i++
	}
	return elems
}
