package mem

import "errors"

var (
	// ErrNoMem reports a transient out-of-memory condition from the
	// underlying allocator. Callers may retry after freeing memory.
	ErrNoMem = errors.New("mem: out of memory")

	// ErrBadSize reports a non-positive allocation size.
	ErrBadSize = errors.New("mem: non-positive size")

	// ErrSizeOverflow reports that count*size does not fit in an int.
	ErrSizeOverflow = errors.New("mem: allocation size overflow")
)
