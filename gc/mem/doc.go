// Package mem provides the raw region heaps the collector draws from.
//
// # Overview
//
// The collector never hands out Go pointers. Every managed allocation is
// a Region: an opaque handle pairing a stable byte address with the
// backing buffer. The collector's metadata table owns the Region; the
// mutator keeps only the handle (or the raw address) and must not free
// the backing memory behind the collector's back.
//
// # Heaps
//
// Two Heap implementations are provided:
//
//   - GoHeap: portable default. Regions are plain Go byte slices kept
//     alive by the records that own them. Free drops the reference and
//     lets the runtime reclaim the buffer.
//   - MmapHeap (linux, darwin): each region is its own anonymous
//     mapping. Addresses live outside the Go heap, Free unmaps
//     immediately, and a failing mmap surfaces ENOMEM as ErrNoMem,
//     which is the transient out-of-memory signal the collector's
//     collect-and-retry path keys on.
//
// Custom heaps implement Heap and construct handles with NewRegion.
package mem
