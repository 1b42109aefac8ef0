package alloctab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain inserts n colliding records into one bucket and returns
// their addresses in chain order (head first: last insert sits at the
// head).
func buildChain(t *testing.T, tab *Table, bucket, n int) []uintptr {
	t.Helper()
	addrs := make([]uintptr, n)
	for i := 0; i < n; i++ {
		addr := chainAddr(bucket, i, tab.Cap())
		require.NotNil(t, tab.Put(fakeRegion(addr, 8), nil))
		addrs[n-1-i] = addr
	}
	require.Equal(t, n, tab.Len())
	return addrs
}

// chainOrder reads the bucket's records head to tail.
func chainOrder(tab *Table, bucket int) []uintptr {
	var out []uintptr
	for cur := tab.buckets[bucket]; cur != nil; cur = cur.next {
		out = append(out, cur.Addr())
	}
	return out
}

// Removing an interior record must relink its predecessor to its
// successor. This is the path where a stale predecessor cursor corrupts
// the bucket.
func TestRemoveMiddleOfChain(t *testing.T) {
	tab := New(17, 17, 0.5, 0.0, 0.8) // downsize factor 0 keeps the capacity fixed
	addrs := buildChain(t, tab, 7, 5)

	tab.Remove(addrs[2])

	assert.Equal(t, 4, tab.Len())
	assert.Nil(t, tab.Get(addrs[2]))
	want := []uintptr{addrs[0], addrs[1], addrs[3], addrs[4]}
	assert.Equal(t, want, chainOrder(tab, 7), "predecessor must relink around the removed record")
	for _, a := range want {
		assert.NotNil(t, tab.Get(a), "surviving record 0x%x lost", a)
	}
}

func TestRemoveHeadOfChain(t *testing.T) {
	tab := New(17, 17, 0.5, 0.0, 0.8)
	addrs := buildChain(t, tab, 4, 3)

	tab.Remove(addrs[0])

	assert.Equal(t, 2, tab.Len())
	assert.Nil(t, tab.Get(addrs[0]))
	assert.Equal(t, []uintptr{addrs[1], addrs[2]}, chainOrder(tab, 4))
}

func TestRemoveTailOfChain(t *testing.T) {
	tab := New(17, 17, 0.5, 0.0, 0.8)
	addrs := buildChain(t, tab, 9, 3)

	tab.Remove(addrs[2])

	assert.Equal(t, 2, tab.Len())
	assert.Nil(t, tab.Get(addrs[2]))
	assert.Equal(t, []uintptr{addrs[0], addrs[1]}, chainOrder(tab, 9))
}

func TestRemoveEveryPositionSequentially(t *testing.T) {
	// Drain a 6-record chain in a mixed order and verify the remainder
	// after every step. This pins the predecessor-advancing walk.
	tab := New(17, 17, 0.5, 0.0, 0.8)
	addrs := buildChain(t, tab, 11, 6)

	order := []int{3, 0, 4, 1, 5, 2} // interior, head, interior, head, tail, last
	alive := map[uintptr]bool{}
	for _, a := range addrs {
		alive[a] = true
	}

	for _, i := range order {
		tab.Remove(addrs[i])
		delete(alive, addrs[i])

		assert.Equal(t, len(alive), tab.Len())
		got := chainOrder(tab, 11)
		assert.Len(t, got, len(alive))
		for _, a := range got {
			assert.True(t, alive[a], "chain contains removed record 0x%x", a)
		}
		for a := range alive {
			assert.NotNil(t, tab.Get(a), "live record 0x%x unreachable", a)
		}
	}
	assert.Equal(t, 0, tab.Len())
}
