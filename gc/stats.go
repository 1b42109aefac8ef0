package gc

import (
	"fmt"

	"github.com/inhies/go-bytesize"
)

// Stats reports collector activity counters.
type Stats struct {
	Runs           int   // completed collection cycles
	BytesReclaimed int64 // total bytes returned to the heap by sweep
	Frees          int   // explicit Free calls that released a region
	Live           int   // records currently managed
	Capacity       int   // current table bucket count
	SweepLimit     int   // record count that triggers the next automatic cycle
}

// Stats returns a snapshot of the collector's counters.
func (c *Collector) Stats() Stats {
	s := c.stats
	s.Live = c.table.Len()
	s.Capacity = c.table.Cap()
	s.SweepLimit = c.table.SweepLimit()
	return s
}

// String renders the snapshot in human units.
func (s Stats) String() string {
	return fmt.Sprintf("runs=%d reclaimed=%s frees=%d live=%d cap=%d limit=%d",
		s.Runs, bytesize.New(float64(s.BytesReclaimed)), s.Frees,
		s.Live, s.Capacity, s.SweepLimit)
}
