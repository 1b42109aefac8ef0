package mem

import (
	"encoding/binary"
	"math/bits"
)

// WordSize is the size of a candidate pointer word in bytes.
const WordSize = bits.UintSize / 8

// LoadWord reads a native-order word from the front of b. The result is
// a candidate address value, not a dereferenceable pointer.
func LoadWord(b []byte) uintptr {
	if WordSize == 8 {
		return uintptr(binary.NativeEndian.Uint64(b))
	}
	return uintptr(binary.NativeEndian.Uint32(b))
}

// StoreWord writes w to the front of b in native word order.
func StoreWord(b []byte, w uintptr) {
	if WordSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(w))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(w))
}
