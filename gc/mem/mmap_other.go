//go:build !(linux || darwin)

package mem

import "errors"

// NewMmapHeap reports that anonymous mappings are unavailable on this
// platform. Use GoHeap instead.
func NewMmapHeap() (Heap, error) {
	return nil, errors.ErrUnsupported
}
