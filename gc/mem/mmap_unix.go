//go:build linux || darwin

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapHeap allocates each region as its own anonymous mapping.
//
// Mapped regions live outside the Go heap: their addresses are stable
// by construction, Free returns pages to the kernel immediately, and a
// failing mmap yields a genuine transient-OOM signal (ENOMEM/EAGAIN)
// that the collector answers with a collection cycle and one retry.
// The granularity is a page per region, so this heap suits workloads
// with fewer, larger allocations; GoHeap remains the default.
type MmapHeap struct{}

// NewMmapHeap returns an MmapHeap on platforms that support anonymous
// mappings.
func NewMmapHeap() (Heap, error) {
	return MmapHeap{}, nil
}

func (MmapHeap) Alloc(size int) (*Region, error) {
	return mapRegion(size)
}

func (MmapHeap) AllocZero(count, size int) (*Region, error) {
	n, err := checkedMul(count, size)
	if err != nil {
		return nil, err
	}
	// Anonymous pages arrive zero-filled.
	return mapRegion(n)
}

func (h MmapHeap) Realloc(r *Region, size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	if size <= len(r.raw) {
		// Still inside the original mapping: reslice, address unchanged.
		r.buf = r.raw[:size]
		return r, nil
	}
	next, err := mapRegion(size)
	if err != nil {
		return nil, err
	}
	copy(next.buf, r.buf)
	h.Free(r)
	return next, nil
}

func (MmapHeap) Free(r *Region) {
	if r.mapped && r.raw != nil {
		// Unmap failure leaves nothing actionable; the handle is
		// emptied either way.
		_ = unix.Munmap(r.raw)
	}
	r.release()
}

func mapRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	buf, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		if err == unix.ENOMEM || err == unix.EAGAIN {
			return nil, fmt.Errorf("mmap %d bytes: %w", size, ErrNoMem)
		}
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	r := NewRegion(bufAddr(buf), buf)
	r.mapped = true
	return r, nil
}
