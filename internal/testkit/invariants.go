// Package testkit проверяет структурные инварианты разобранного файла;
// используется тестами парсера и форматтера.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rfmt/internal/ast"
	"rfmt/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is within file content bounds and points at sf
// 2) every item span is non-empty and inside its parent (the file, or the
// body of a mod, impl, trait or extern block)
// 3) sibling items come in source order and do not overlap
// 4) comments are ordered, disjoint and inside the file
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	if err := checkItems(b, f.Items, f.Span, sf.ID); err != nil {
		return err
	}

	var prev source.Span
	for i, c := range f.Comments {
		if c.Span.End <= c.Span.Start {
			return fmt.Errorf("empty comment span: %v", c.Span)
		}
		if !f.Span.Encloses(c.Span) {
			return fmt.Errorf("comment %v is outside file span %v", c.Span, f.Span)
		}
		if i > 0 && c.Span.Start < prev.End {
			return fmt.Errorf("comment %v overlaps or precedes %v", c.Span, prev)
		}
		prev = c.Span
	}
	return nil
}

func checkItems(b *ast.Builder, items []ast.ItemID, parent source.Span, file source.FileID) error {
	var prev source.Span
	for i, id := range items {
		item := b.Items.Get(id)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", id)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != file {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, file)
		}
		if !parent.Encloses(sp) {
			return fmt.Errorf("item span %v is outside parent span %v", sp, parent)
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("item span %v overlaps or precedes %v", sp, prev)
		}
		prev = sp

		body, children := nested(b, id)
		if len(children) == 0 {
			continue
		}
		if !sp.Encloses(body) {
			return fmt.Errorf("body %v of item %v is outside the item", body, sp)
		}
		if err := checkItems(b, children, body, file); err != nil {
			return err
		}
	}
	return nil
}

// nested returns the body span and items of an item that holds items.
func nested(b *ast.Builder, id ast.ItemID) (source.Span, []ast.ItemID) {
	if m, ok := b.Items.Mod(id); ok && m.Inline {
		return m.BodySpan, m.Items
	}
	if im, ok := b.Items.Impl(id); ok {
		return im.BodySpan, im.Items
	}
	if tr, ok := b.Items.Trait(id); ok {
		return tr.BodySpan, tr.Items
	}
	if eb, ok := b.Items.ExternBlock(id); ok {
		return eb.BodySpan, eb.Items
	}
	return source.Span{}, nil
}
