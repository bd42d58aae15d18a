package diag

import "slices"

// Bag collects diagnostics up to a limit; the rest are counted as dropped.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag returns a bag holding at most limit diagnostics; limit <= 0 means no limit.
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add returns false when the bag is full and d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many diagnostics did not fit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the collected diagnostics. Вызывающий не должен менять срез.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns the number of diagnostics of exactly sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, Diagnostic.IsError)
}

// Sort orders the bag with Compare, keeping insertion order among equals.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, Compare)
}

// Dedup keeps the first diagnostic of every (code, span, message).
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := keyOf(d)
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
