package gc

import "github.com/joshuapare/gckit/gc/alloctab"

// sweep reclaims every unmarked record and clears the mark on the
// survivors, returning the number of bytes reclaimed. Root-tagged
// records always carry the mark after markRoots and therefore survive.
func (c *Collector) sweep() int {
	// Collect victims first: removal mutates the bucket chains (and may
	// downsize the table), so it cannot run inside the traversal.
	var victims []*alloctab.Record
	c.table.Range(func(r *alloctab.Record) {
		if r.Has(alloctab.TagMark) {
			r.Clear(alloctab.TagMark)
			return
		}
		victims = append(victims, r)
	})

	total := 0
	for _, r := range victims {
		addr, size := r.Addr(), r.Size()
		debugLogf("sweeping unreachable allocation 0x%x (%d bytes)", addr, size)
		if dtor := r.Dtor(); dtor != nil {
			dtor(r.Region().Bytes())
		}
		c.heap.Free(r.Region())
		c.table.Remove(addr)
		total += size
	}
	return total
}
