// Package gc implements a conservative, precise-per-allocation
// mark-and-sweep garbage collector for code that requests memory
// through explicit allocation calls.
//
// # Overview
//
// A Collector owns an allocation table (gc/alloctab) and a raw heap
// (gc/mem). Every allocation is registered in the table; on demand, or
// automatically when the table grows past its sweep limit, the
// collector marks everything reachable from tagged roots and from the
// mutator goroutine's stack, then sweeps whatever was not reached.
// The stack scan is conservative: any word whose value equals a
// managed address keeps that allocation alive.
//
// # Using a collector
//
//	c := gc.Start(gc.Here())
//	defer c.Stop()
//
//	r, err := c.Alloc(64)
//	if err != nil {
//	    return err
//	}
//	copy(r.Bytes(), payload)
//
//	// Pin a long-lived allocation independent of the stack:
//	c.MakeRoot(r.Addr())
//
//	freed := c.Run() // explicit cycle; returns reclaimed bytes
//
// Collectors are explicit values: any number can coexist (tests lean on
// this), and nothing is process-global unless the Default convenience
// wrapper is used.
//
// # Liveness rules
//
// The scanner sees three things: root-tagged records, region contents,
// and the words stored on the stack between the base sentinel and the
// scan point. An allocation is retained while its address is visible in
// any of them. Two caveats follow:
//
//   - The sentinel returned by Here lies just below the calling frame,
//     so locals of that frame itself are outside the scanned span. Keep
//     startup-frame allocations alive with MakeRoot or reference them
//     from a deeper frame.
//   - Collections must be initiated from frames deeper than the one
//     that captured the sentinel, on the same goroutine, and the
//     goroutine's stack must not have been moved by the runtime in
//     between. Long-running mutators should allocate enough stack up
//     front (deep call chains early) or rely on roots.
//
// Finalizers run exactly once, at explicit Free or at sweep, and must
// not call back into the collector they run under.
package gc
