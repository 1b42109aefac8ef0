package mem

import "unsafe"

// GoHeap is the portable default heap. Regions are ordinary Go byte
// slices; the record that owns a region is what keeps its buffer alive,
// so Free only has to drop the reference.
//
// GoHeap cannot fail transiently (make either succeeds or aborts the
// process), so the collector's collect-and-retry path is exercised only
// by heaps that can actually report ErrNoMem.
type GoHeap struct{}

func (GoHeap) Alloc(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	buf := make([]byte, size)
	return NewRegion(bufAddr(buf), buf), nil
}

func (GoHeap) AllocZero(count, size int) (*Region, error) {
	n, err := checkedMul(count, size)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	return NewRegion(bufAddr(buf), buf), nil
}

func (h GoHeap) Realloc(r *Region, size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	if size <= len(r.raw) {
		// Shrink (or regrow within the original buffer): the address
		// does not change.
		r.buf = r.raw[:size]
		return r, nil
	}
	next, err := h.Alloc(size)
	if err != nil {
		return nil, err
	}
	copy(next.buf, r.buf)
	h.Free(r)
	return next, nil
}

func (GoHeap) Free(r *Region) {
	r.release()
}

// bufAddr captures the stable address of a slice's first byte. Go's
// runtime does not move heap objects, and the owning record pins the
// buffer, so the value stays valid while the region is managed.
func bufAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}
