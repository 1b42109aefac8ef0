package gc

import (
	"github.com/joshuapare/gckit/gc/alloctab"
	"github.com/joshuapare/gckit/gc/mem"
	"github.com/joshuapare/gckit/internal/stackscan"
)

// mark flags every reachable record. Tagged roots are marked first,
// then the stack is scanned conservatively between the base sentinel
// and the current frame.
func (c *Collector) mark() {
	c.markRoots()
	// The scan runs through stackscan.Walk, an indirect call that
	// spills the caller's live registers into its frame before any
	// stack word is read.
	c.scanStack(stackscan.Here(), c.markAddr)
}

// markRoots marks every root-tagged record and what it references.
func (c *Collector) markRoots() {
	c.table.Range(func(r *alloctab.Record) {
		if r.Has(alloctab.TagRoot) {
			debugLogf("marking root 0x%x", r.Addr())
			c.markAddr(r.Addr())
		}
	})
}

// markAddr treats w as a candidate managed address. If it names an
// unmarked record, that record and everything reachable through its
// contents are marked. Traversal is iterative: a worklist bounds the
// host stack regardless of how deep the pointer graph runs, and
// termination follows from each record being marked at most once.
func (c *Collector) markAddr(w uintptr) {
	rec := c.table.Get(w)
	if rec == nil || rec.Has(alloctab.TagMark) {
		return
	}
	rec.Set(alloctab.TagMark)

	work := c.work[:0]
	work = append(work, rec)
	for len(work) > 0 {
		r := work[len(work)-1]
		work = work[:len(work)-1]

		// Scan the region contents at single-byte stride: managed
		// regions may carry embedded pointers at unaligned offsets.
		b := r.Region().Bytes()
		for off := 0; off+mem.WordSize <= len(b); off++ {
			cand := c.table.Get(mem.LoadWord(b[off:]))
			if cand == nil || cand.Has(alloctab.TagMark) {
				continue
			}
			cand.Set(alloctab.TagMark)
			work = append(work, cand)
		}
	}
	c.work = work[:0]
}
