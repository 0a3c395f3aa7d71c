package diag

import "sort"

// Bag accumulates diagnostics across a batch of fixtures driven by the
// CLI (spec.md §6: the core itself never accumulates — it aborts on
// the first error — but a multi-fixture `generate` invocation reports
// one diagnostic per failed fixture, and Bag is where those collect).
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, max), max: uint16(max)}
}

// Add appends d, subject to the bag's capacity. It reports false if d
// was dropped because the limit was reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view; do not mutate the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by location, then by severity (descending),
// then by code, for stable and deterministic CLI output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Location != dj.Location {
			return di.Location < dj.Location
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
