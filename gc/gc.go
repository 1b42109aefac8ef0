package gc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/gckit/gc/alloctab"
	"github.com/joshuapare/gckit/gc/mem"
	"github.com/joshuapare/gckit/internal/stackscan"
)

// Finalizer runs on a region's contents immediately before reclamation
// (re-exported from gc/alloctab for convenience).
type Finalizer = alloctab.Finalizer

// Config tunes a Collector. Zero or negative numeric fields fall back
// to the DefaultConfig values; a nil Heap selects the portable Go heap.
type Config struct {
	// InitialCapacity is the allocation table's starting bucket count.
	// Rounded up to a prime and clamped to at least MinCapacity.
	InitialCapacity int

	// MinCapacity is the bucket count the table never shrinks below.
	// Rounded up to a prime.
	MinCapacity int

	// DownsizeFactor is the load factor below which the table shrinks.
	// Must be smaller than UpsizeFactor.
	DownsizeFactor float64

	// UpsizeFactor is the load factor above which the table grows.
	UpsizeFactor float64

	// SweepFactor sizes the sweep limit: after every resize the limit
	// becomes size + SweepFactor*(capacity-size). Once the table holds
	// more records than the limit, the next allocation runs a cycle.
	SweepFactor float64

	// Heap supplies raw regions. nil selects mem.GoHeap.
	Heap mem.Heap
}

// DefaultConfig mirrors the tuning the collector was designed around.
var DefaultConfig = Config{
	InitialCapacity: 1024,
	MinCapacity:     1024,
	DownsizeFactor:  0.2,
	UpsizeFactor:    0.8,
	SweepFactor:     0.5,
}

// Collector is the memory authority for a single mutator goroutine.
// It is not safe for concurrent use.
type Collector struct {
	table     *alloctab.Table
	heap      mem.Heap
	stackBase uintptr
	paused    bool
	work      []*alloctab.Record // reusable mark worklist
	stats     Stats

	// Test hooks; production paths leave these at their defaults.
	putRecord func(*mem.Region, Finalizer) *alloctab.Record
	scanStack func(top uintptr, visit func(uintptr))
}

// Here captures a stack sentinel for Start. The returned value lies
// just below the calling frame; see the package documentation for the
// liveness caveat this implies.
//
//go:noinline
func Here() uintptr {
	return stackscan.Here()
}

// Start creates a collector with the default tuning. stackBase is the
// sentinel delimiting the conservative stack scan, typically gc.Here()
// called from the mutator's outermost frame.
func Start(stackBase uintptr) *Collector {
	return StartTuned(stackBase, nil)
}

// StartTuned creates a collector with explicit tuning. A nil cfg means
// DefaultConfig.
func StartTuned(stackBase uintptr, cfg *Config) *Collector {
	resolved := DefaultConfig
	if cfg != nil {
		resolved = *cfg
	}
	if resolved.InitialCapacity <= 0 {
		resolved.InitialCapacity = DefaultConfig.InitialCapacity
	}
	if resolved.MinCapacity <= 0 {
		resolved.MinCapacity = DefaultConfig.MinCapacity
	}
	if resolved.DownsizeFactor <= 0 {
		resolved.DownsizeFactor = DefaultConfig.DownsizeFactor
	}
	if resolved.UpsizeFactor <= 0 {
		resolved.UpsizeFactor = DefaultConfig.UpsizeFactor
	}
	if resolved.SweepFactor <= 0 {
		resolved.SweepFactor = DefaultConfig.SweepFactor
	}
	if resolved.InitialCapacity < resolved.MinCapacity {
		resolved.InitialCapacity = resolved.MinCapacity
	}
	heap := resolved.Heap
	if heap == nil {
		heap = mem.GoHeap{}
	}

	c := &Collector{
		table: alloctab.New(
			resolved.MinCapacity,
			resolved.InitialCapacity,
			resolved.SweepFactor,
			resolved.DownsizeFactor,
			resolved.UpsizeFactor,
		),
		heap:      heap,
		stackBase: stackBase,
	}
	c.putRecord = c.table.Put
	c.scanStack = func(top uintptr, visit func(uintptr)) {
		stackscan.Walk(top, c.stackBase, visit)
	}
	debugLogf("collector started (cap=%d, limit=%d)", c.table.Cap(), c.table.SweepLimit())
	return c
}

// Alloc returns a managed region of size bytes with unspecified
// contents.
func (c *Collector) Alloc(size int) (*mem.Region, error) {
	return c.allocate(0, size, nil)
}

// AllocFunc is Alloc with a finaliser attached to the region.
func (c *Collector) AllocFunc(size int, dtor Finalizer) (*mem.Region, error) {
	return c.allocate(0, size, dtor)
}

// Calloc returns a zeroed managed region of count*size bytes.
func (c *Collector) Calloc(count, size int) (*mem.Region, error) {
	return c.allocate(count, size, nil)
}

// CallocFunc is Calloc with a finaliser attached to the region.
func (c *Collector) CallocFunc(count, size int, dtor Finalizer) (*mem.Region, error) {
	return c.allocate(count, size, dtor)
}

// allocate generalizes over the malloc (count == 0) and calloc paths.
func (c *Collector) allocate(count, size int, dtor Finalizer) (*mem.Region, error) {
	region, err := c.rawAlloc(count, size)
	if err != nil {
		if !errors.Is(err, mem.ErrNoMem) {
			return nil, err
		}
		// Transient exhaustion: free some memory and retry exactly once.
		c.Run()
		region, err = c.rawAlloc(count, size)
		if err != nil {
			return nil, fmt.Errorf("gc: allocation failed after collection: %w", err)
		}
	}

	rec := c.putRecord(region, dtor)
	if rec == nil {
		// Metadata allocation failed: collect, retry once, then fail
		// cleanly by returning the region to the heap.
		c.Run()
		rec = c.putRecord(region, dtor)
		if rec == nil {
			c.heap.Free(region)
			return nil, fmt.Errorf("gc: metadata allocation failed: %w", ErrNoMem)
		}
	}
	debugLogf("managing %d bytes at 0x%x", rec.Size(), rec.Addr())

	if !c.paused && c.table.Len() > c.table.SweepLimit() {
		freed := c.Run()
		debugLogf("pressure collection reclaimed %d bytes", freed)
	}
	return region, nil
}

func (c *Collector) rawAlloc(count, size int) (*mem.Region, error) {
	if count == 0 {
		return c.heap.Alloc(size)
	}
	return c.heap.AllocZero(count, size)
}

// Realloc resizes the managed region at address p, preserving its
// finaliser. p == 0 behaves as a fresh allocation without finaliser.
// A non-zero p the collector does not manage fails with
// ErrUnknownPointer. If the heap reports an error the old region is
// untouched; if recording a moved region fails, the new region is
// released and the old one has already been released by the heap.
func (c *Collector) Realloc(p uintptr, size int) (*mem.Region, error) {
	rec := c.table.Get(p)
	if p != 0 && rec == nil {
		return nil, ErrUnknownPointer
	}

	if rec == nil {
		region, err := c.heap.Alloc(size)
		if err != nil {
			return nil, err
		}
		if c.putRecord(region, nil) == nil {
			c.heap.Free(region)
			return nil, fmt.Errorf("gc: metadata allocation failed: %w", ErrNoMem)
		}
		return region, nil
	}

	oldAddr := rec.Addr()
	dtor := rec.Dtor()
	region, err := c.heap.Realloc(rec.Region(), size)
	if err != nil {
		return nil, err
	}
	if region.Addr() == oldAddr {
		// Resized in place; the record tracks the region's new length.
		return region, nil
	}
	// Moved: re-key under the new address, carrying the finaliser over.
	c.table.Remove(oldAddr)
	if c.putRecord(region, dtor) == nil {
		c.heap.Free(region)
		return nil, fmt.Errorf("gc: metadata allocation failed: %w", ErrNoMem)
	}
	return region, nil
}

// Free reclaims the region at address p immediately: its finaliser runs,
// the memory returns to the heap, and the record is dropped. Unknown
// pointers are logged at warning level and otherwise ignored.
func (c *Collector) Free(p uintptr) {
	rec := c.table.Get(p)
	if rec == nil {
		warnLogf("ignoring request to free unknown pointer 0x%x", p)
		return
	}
	if dtor := rec.Dtor(); dtor != nil {
		dtor(rec.Region().Bytes())
	}
	c.heap.Free(rec.Region())
	c.table.Remove(p)
	c.stats.Frees++
}

// MakeRoot pins the allocation at p: it is marked unconditionally at
// the start of every cycle and survives sweep regardless of stack
// state. Unknown addresses are ignored.
func (c *Collector) MakeRoot(p uintptr) {
	if rec := c.table.Get(p); rec != nil {
		rec.Set(alloctab.TagRoot)
	}
}

// Unroot clears the root tag set by MakeRoot. Unknown addresses are
// ignored.
func (c *Collector) Unroot(p uintptr) {
	if rec := c.table.Get(p); rec != nil {
		rec.Clear(alloctab.TagRoot)
	}
}

// Pause suppresses the sweep-limit collection trigger in the allocation
// path. The collect-and-retry cycle after a failed heap or metadata
// allocation still runs, and explicit Run calls are unaffected.
func (c *Collector) Pause() { c.paused = true }

// Resume re-enables the sweep-limit collection trigger.
func (c *Collector) Resume() { c.paused = false }

// Paused reports whether automatic collection is suppressed.
func (c *Collector) Paused() bool { return c.paused }

// Run performs a full mark and sweep cycle and returns the number of
// bytes reclaimed. Run ignores Pause.
func (c *Collector) Run() int {
	debugLogf("collection cycle starting (live=%d)", c.table.Len())
	c.mark()
	freed := c.sweep()
	c.stats.Runs++
	c.stats.BytesReclaimed += int64(freed)
	debugLogf("collection cycle done (freed=%d, live=%d)", freed, c.table.Len())
	return freed
}

// Stop runs a final collection and tears down the table. Allocations
// that survive the final cycle (roots, stack-reachable regions) are
// not finalised; callers that want their finalisers to run must Free
// them first. The collector must not be used after Stop.
func (c *Collector) Stop() {
	c.Run()
	c.table = nil
	c.putRecord = nil
	c.scanStack = nil
}

// CopyBytes copies b into a fresh managed region.
func (c *Collector) CopyBytes(b []byte) (*mem.Region, error) {
	r, err := c.Alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(r.Bytes(), b)
	return r, nil
}

// CopyString copies s into a fresh managed region.
func (c *Collector) CopyString(s string) (*mem.Region, error) {
	return c.CopyBytes([]byte(s))
}
