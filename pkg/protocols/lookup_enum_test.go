//go:build !windows

package protocols

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetProtoEnt(t *testing.T) {
	requireSystemDB(t)

	records := GetProtoEnt(nil)
	require.NotEmpty(t, records)

	var handled []*Record
	res := GetProtoEnt(func(r *Record) {
		handled = append(handled, r)
	})
	require.Nil(t, res)

	// push and pull see the same database in the same order
	require.Equal(t, len(records), len(handled))
	for i := range records {
		require.Equal(t, records[i].Name(), handled[i].Name())
		require.Equal(t, records[i].Number(), handled[i].Number())
		require.Equal(t, records[i].Aliases(), handled[i].Aliases())

		// every walk hands out fresh records
		require.NotSame(t, records[i], handled[i])
	}

	var tcp *Record
	for _, r := range records {
		require.NotEmpty(t, r.Name())
		require.NotNil(t, r.Aliases())
		if r.Name() == "tcp" && tcp == nil {
			tcp = r
		}
	}
	require.NotNil(t, tcp)
	require.Equal(t, 6, tcp.Number())
}

func TestGetProtoEntLookupFromHandler(t *testing.T) {
	requireSystemDB(t)

	// lookups from within the handler must neither deadlock nor disturb the walk
	var calls, expected int
	expected = len(GetProtoEnt(nil))
	GetProtoEnt(func(r *Record) {
		calls++
		number, found, err := GetProtoByName(r.Name())
		require.NoError(t, err)
		require.True(t, found)
		require.GreaterOrEqual(t, number, 0)
	})
	require.Equal(t, expected, calls)
}

func TestAllEarlyBreak(t *testing.T) {
	requireSystemDB(t)

	var n int
	for range All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)

	// the cursor is released after an early break
	_, found, err := GetProtoByName("tcp")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, GetProtoEnt(nil))
}

func TestGetProtoEntHandlerPanic(t *testing.T) {
	requireSystemDB(t)

	expected := len(GetProtoEnt(nil))

	var calls int
	require.PanicsWithValue(t, "abort", func() {
		GetProtoEnt(func(*Record) {
			if calls++; calls == 2 {
				panic("abort")
			}
		})
	})
	require.Equal(t, 2, calls)

	// the cursor is released, the next walk starts over and sees every record
	done := make(chan int, 1)
	go func() {
		var n int
		GetProtoEnt(func(*Record) {
			n++
		})
		done <- n
	}()

	select {
	case n := <-done:
		require.Equal(t, expected, n)
	case <-time.After(10 * time.Second):
		t.Fatal("walk after a panicking handler did not complete")
	}
}

func TestConcurrentEnumeration(t *testing.T) {
	requireSystemDB(t)

	expected := len(GetProtoEnt(nil))

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range All() {
				counts[i]++
			}
		}()
	}
	wg.Wait()

	for _, n := range counts {
		require.Equal(t, expected, n)
	}
}
