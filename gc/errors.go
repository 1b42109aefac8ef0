package gc

import (
	"errors"

	"github.com/joshuapare/gckit/gc/mem"
)

var (
	// ErrNoMem reports that the raw heap was exhausted even after a
	// collection cycle and one retry. Aliases mem.ErrNoMem so heap and
	// collector failures match the same errors.Is check.
	ErrNoMem = mem.ErrNoMem

	// ErrUnknownPointer reports a reallocation request for a non-zero
	// address the collector does not manage.
	ErrUnknownPointer = errors.New("gc: unknown pointer")
)
