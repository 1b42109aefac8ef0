package stackscan

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHereIsStable(t *testing.T) {
	a := Here()
	b := Here()
	require.NotZero(t, a)
	assert.Equal(t, a, b, "same frame must yield the same anchor")
}

//go:noinline
func deeperFrame() uintptr {
	var pad [64]byte
	_ = pad
	return Here()
}

func TestHereDistinguishesFrames(t *testing.T) {
	outer := Here()
	inner := deeperFrame()
	assert.NotEqual(t, outer, inner, "a deeper frame must yield a different anchor")
}

// plantAndScan stores magic in a local and walks its own frame range.
//
//go:noinline
func plantAndScan(base uintptr, magic uintptr) bool {
	var slots [8]uintptr
	p := &slots // force the array into the frame
	p[3] = magic
	found := false
	Walk(Here(), base, func(w uintptr) {
		if w == magic {
			found = true
		}
	})
	return found && p[3] == magic
}

// cushion pads the stack so the next frame lies strictly below the base
// sentinel, which was captured only a tiny frame under the test itself.
//
//go:noinline
func cushion(base uintptr, magic uintptr) bool {
	var pad [512]byte
	ok := plantAndScan(base, magic)
	runtime.KeepAlive(&pad)
	return ok
}

func TestWalkFindsPlantedWord(t *testing.T) {
	base := Here()
	magic := uintptr(0x5CA4BEEF)
	assert.True(t, cushion(base, magic),
		"a word stored in a frame between the endpoints must be visited")
}

func TestWalkOrdersEndpoints(t *testing.T) {
	buf := make([]uintptr, 4)
	buf[1] = 0x1234
	lo := uintptr(unsafe.Pointer(&buf[0]))
	hi := uintptr(unsafe.Pointer(&buf[3]))

	var forward, reversed []uintptr
	Walk(lo, hi, func(w uintptr) { forward = append(forward, w) })
	Walk(hi, lo, func(w uintptr) { reversed = append(reversed, w) })

	require.NotEmpty(t, forward)
	assert.Equal(t, forward, reversed, "endpoint order must not matter")
	assert.Contains(t, forward, uintptr(0x1234))
	runtime.KeepAlive(buf)
}
