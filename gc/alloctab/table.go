package alloctab

import (
	"github.com/joshuapare/gckit/gc/mem"
	"github.com/joshuapare/gckit/internal/primes"
)

// Table indexes every live Record by region address.
type Table struct {
	capacity    int // bucket count, always prime
	minCapacity int // floor for downsizing, prime
	size        int // live records

	downsizeFactor float64
	upsizeFactor   float64
	sweepFactor    float64
	sweepLimit     int

	buckets []*Record
}

// New creates a table. Both capacities are rounded up to primes and the
// starting capacity is clamped to at least the minimum.
func New(minCapacity, capacity int, sweepFactor, downsizeFactor, upsizeFactor float64) *Table {
	t := &Table{
		minCapacity:    primes.Next(minCapacity),
		capacity:       primes.Next(capacity),
		downsizeFactor: downsizeFactor,
		upsizeFactor:   upsizeFactor,
		sweepFactor:    sweepFactor,
	}
	if t.capacity < t.minCapacity {
		t.capacity = t.minCapacity
	}
	t.sweepLimit = int(sweepFactor * float64(t.capacity))
	t.buckets = make([]*Record, t.capacity)
	return t
}

// Len returns the number of live records.
func (t *Table) Len() int { return t.size }

// Cap returns the current bucket count.
func (t *Table) Cap() int { return t.capacity }

// SweepLimit returns the record count above which the collector
// schedules a cycle at the next allocation.
func (t *Table) SweepLimit() int { return t.sweepLimit }

func (t *Table) loadFactor() float64 {
	return float64(t.size) / float64(t.capacity)
}

func bucketFor(addr uintptr, capacity int) int {
	return int((addr >> 3) % uintptr(capacity))
}

// Put records a region under its address and returns the new record.
//
// If the address is already present this is an upsert: the incoming
// record takes over the matched record's chain position and successor,
// and the old record is discarded without touching the size. The
// collector's Realloc does not take this path: an in-place resize keeps
// the existing record and a move re-keys under the new address.
func (t *Table) Put(region *mem.Region, dtor Finalizer) *Record {
	idx := bucketFor(region.Addr(), t.capacity)
	rec := newRecord(region, dtor)

	var prev *Record
	for cur := t.buckets[idx]; cur != nil; cur = cur.next {
		if cur.Addr() == region.Addr() {
			rec.next = cur.next
			if prev == nil {
				t.buckets[idx] = rec
			} else {
				prev.next = rec
			}
			return rec
		}
		prev = cur
	}

	// Fresh key: prepend to the chain.
	rec.next = t.buckets[idx]
	t.buckets[idx] = rec
	t.size++

	if t.loadFactor() > t.upsizeFactor {
		t.resize(primes.Next(t.capacity * 2))
	}
	return rec
}

// Get returns the record for addr, or nil.
func (t *Table) Get(addr uintptr) *Record {
	for cur := t.buckets[bucketFor(addr, t.capacity)]; cur != nil; cur = cur.next {
		if cur.Addr() == addr {
			return cur
		}
	}
	return nil
}

// Remove unlinks the record for addr. Unknown addresses are silently
// ignored. The predecessor cursor advances on every non-matching step
// so interior removals relink the chain correctly.
func (t *Table) Remove(addr uintptr) {
	idx := bucketFor(addr, t.capacity)
	var prev *Record
	for cur := t.buckets[idx]; cur != nil; cur = cur.next {
		if cur.Addr() == addr {
			if prev == nil {
				t.buckets[idx] = cur.next
			} else {
				prev.next = cur.next
			}
			t.size--
			break // addresses are unique in the table
		}
		prev = cur
	}

	if t.loadFactor() < t.downsizeFactor {
		t.resize(primes.Next(t.capacity / 2))
	}
}

// Range calls fn for every record. fn must not add or remove records.
func (t *Table) Range(fn func(*Record)) {
	for _, head := range t.buckets {
		for cur := head; cur != nil; cur = cur.next {
			fn(cur)
		}
	}
}

// resize rebuilds the bucket array at newCapacity, rehashing every
// record in place. Targets at or below the minimum capacity are
// refused. The sweep limit is recomputed on every resize, up or down.
func (t *Table) resize(newCapacity int) {
	if newCapacity <= t.minCapacity {
		return
	}
	buckets := make([]*Record, newCapacity)
	for _, head := range t.buckets {
		for cur := head; cur != nil; {
			next := cur.next
			idx := bucketFor(cur.Addr(), newCapacity)
			cur.next = buckets[idx]
			buckets[idx] = cur
			cur = next
		}
	}
	t.buckets = buckets
	t.capacity = newCapacity
	t.sweepLimit = t.size + int(t.sweepFactor*float64(t.capacity-t.size))
}
