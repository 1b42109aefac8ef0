package alloctab

import "github.com/joshuapare/gckit/gc/mem"

// Tag is the per-record state bitmask.
type Tag uint8

const (
	// TagNone is the initial state of a fresh record.
	TagNone Tag = 0

	// TagRoot pins a record: it is marked unconditionally at the start
	// of every mark phase and therefore never reclaimed by sweep. Set
	// once at registration, persists until cleared.
	TagRoot Tag = 1 << 0

	// TagMark flags a record as reachable in the current cycle. Set
	// during mark, cleared during sweep.
	TagMark Tag = 1 << 1
)

// Finalizer runs on a managed region's contents exactly once,
// immediately before the region is reclaimed (explicit free or sweep).
// Finalizers must not allocate through the collector they run under.
type Finalizer func(b []byte)

// Record is the metadata node for one managed region.
type Record struct {
	region *mem.Region
	addr   uintptr // region base address, kept after the heap releases the region
	tag    Tag
	dtor   Finalizer
	next   *Record // bucket chain link
}

// newRecord initialises a record with TagNone and no successor.
func newRecord(region *mem.Region, dtor Finalizer) *Record {
	return &Record{region: region, addr: region.Addr(), dtor: dtor}
}

// Addr returns the managed region's base address, the table key. It is
// captured when the record is created, so it still names the record
// after the heap has released the region and emptied its handle.
func (r *Record) Addr() uintptr { return r.addr }

// Size returns the managed region's current length in bytes. In-place
// reallocation resizes the region under the record, so no separate
// size field is kept.
func (r *Record) Size() int { return r.region.Len() }

// Region returns the managed region handle.
func (r *Record) Region() *mem.Region { return r.region }

// Dtor returns the record's finaliser, or nil.
func (r *Record) Dtor() Finalizer { return r.dtor }

// Has reports whether all bits of t are set.
func (r *Record) Has(t Tag) bool { return r.tag&t == t }

// Set sets the bits of t.
func (r *Record) Set(t Tag) { r.tag |= t }

// Clear clears the bits of t.
func (r *Record) Clear(t Tag) { r.tag &^= t }
