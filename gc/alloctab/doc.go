// Package alloctab is the collector's per-allocation metadata index.
//
// # Overview
//
// Every managed region is tracked by exactly one Record, and every
// Record lives in exactly one bucket chain of the Table. The Table is a
// separately-chained hash table keyed on the integer value of the
// region's base address:
//
//	bucket = (addr >> 3) mod capacity
//
// Capacities are always prime and never drop below the configured
// minimum. Resizing is driven by load factor (shrink below the
// downsize factor, grow above the upsize factor) and every resize
// recomputes the sweep limit:
//
//	sweepLimit = size + sweepFactor × (capacity − size)
//
// The sweep limit is an absolute record count; once the table holds
// more live records than the limit, the collector schedules a cycle at
// the next allocation.
//
// # Ownership
//
// The Table owns its Records and each Record owns its region handle.
// Callers hold raw addresses only. The Table is not safe for concurrent
// use; the collector serializes all access on the single mutator
// thread.
package alloctab
