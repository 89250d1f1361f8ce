// SPDX-License-Identifier: MIT

package layer_test

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/gridmap/layer"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

// newWorkedLayer returns the 3×2 layer at resolution 1 centered on the origin,
// with cell (r,c) holding 10*r + c.
func newWorkedLayer(t *testing.T) *layer.Layer {
	t.Helper()
	l, err := layer.New(3, 2, 0, 0, 1)
	require.NoError(t, err)
	for row := 0; row < l.Rows(); row++ {
		for col := 0; col < l.Columns(); col++ {
			p, err := l.CellCenter(row, col)
			require.NoError(t, err)
			c, err := l.CellAtPoint(p)
			require.NoError(t, err)
			require.NoError(t, c.Set(float64(10*row+col)))
		}
	}

	return l
}

// TestTraversal_OrderAndCenters asserts exact row-major order with world centers.
func TestTraversal_OrderAndCenters(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	want := []layer.Entry{
		{Row: 0, Col: 0, Center: orb.Point{-1, -0.5}, Value: 0},
		{Row: 0, Col: 1, Center: orb.Point{0, -0.5}, Value: 1},
		{Row: 0, Col: 2, Center: orb.Point{1, -0.5}, Value: 2},
		{Row: 1, Col: 0, Center: orb.Point{-1, 0.5}, Value: 10},
		{Row: 1, Col: 1, Center: orb.Point{0, 0.5}, Value: 11},
		{Row: 1, Col: 2, Center: orb.Point{1, 0.5}, Value: 12},
	}

	var got []layer.Entry
	for e := range tr.Entries() {
		got = append(got, e)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	var visited []layer.Entry
	tr.Do(func(e layer.Entry) bool {
		visited = append(visited, e)
		return true
	})
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Do() mismatch (-want +got):\n%s", diff)
	}

	for i, w := range want {
		e, err := tr.At(i)
		require.NoError(t, err)
		require.Equal(t, w, e)
	}
}

// TestTraversal_AllPairs verifies All yields (center, value) in the same order.
func TestTraversal_AllPairs(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	var centers []orb.Point
	var values []float64
	for p, v := range tr.All() {
		centers = append(centers, p)
		values = append(values, v)
	}
	require.Equal(t, []float64{0, 1, 2, 10, 11, 12}, values)
	require.Equal(t, orb.Point{-1, -0.5}, centers[0])
	require.Equal(t, orb.Point{1, 0.5}, centers[5])

	// Every center maps back to the cell it came from.
	for i, p := range centers {
		row, col, err := l.Locate(p.X(), p.Y())
		require.NoError(t, err)
		require.Equal(t, i, row*l.Columns()+col)
	}
}

// TestTraversal_Restartable verifies repeated and partial ranges start from (0,0).
func TestTraversal_Restartable(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	collect := func() []layer.Entry {
		var out []layer.Entry
		for e := range tr.Entries() {
			out = append(out, e)
		}
		return out
	}
	first := collect()

	// Abandon a range half way; the next range is unaffected.
	n := 0
	for range tr.Entries() {
		n++
		if n == 2 {
			break
		}
	}
	stopped := 0
	tr.Do(func(layer.Entry) bool {
		stopped++
		return stopped < 3
	})
	require.Equal(t, 3, stopped)

	if diff := cmp.Diff(first, collect()); diff != "" {
		t.Errorf("second traversal differs (-first +second):\n%s", diff)
	}

	// Same layer state, new snapshot, same sequence.
	again, err := l.MakeTraversal()
	require.NoError(t, err)
	require.Equal(t, tr.Values(), again.Values())
}

// TestTraversal_SnapshotIsolation verifies writes after MakeTraversal are not observed.
func TestTraversal_SnapshotIsolation(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	c, err := l.CellAt(0.4, 0.4)
	require.NoError(t, err)
	require.NoError(t, c.Set(99))

	v, err := tr.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, 11.0, v)

	fresh, err := l.MakeTraversal()
	require.NoError(t, err)
	v, err = fresh.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, 99.0, v)
}

// TestTraversal_ValuesIsCopy verifies callers cannot write through Values.
func TestTraversal_ValuesIsCopy(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	vals := tr.Values()
	vals[0] = -1
	e, err := tr.At(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, e.Value)
}

// TestTraversal_OutlivesLayer verifies a snapshot survives Release.
func TestTraversal_OutlivesLayer(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)
	id := l.ID()
	require.NoError(t, l.Release())

	require.Equal(t, id, tr.Source())
	require.Equal(t, 6, tr.Len())
	require.Equal(t, []float64{0, 1, 2, 10, 11, 12}, tr.Values())
	require.Equal(t, "[0, 1, 2]\n[10, 11, 12]\n", tr.String())
}

// TestTraversal_Geometry verifies the snapshot carries the layer geometry.
func TestTraversal_Geometry(t *testing.T) {
	l, err := layer.New(2.5, 1, 4, 4, 0.5)
	require.NoError(t, err)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	require.Equal(t, l.Columns(), tr.Columns())
	require.Equal(t, l.Rows(), tr.Rows())
	require.Equal(t, l.Resolution(), tr.Resolution())
	require.Equal(t, l.Bound(), tr.Bound())
	require.Equal(t, l.Len(), tr.Len())
}

// TestTraversal_IndexErrors verifies At and Value reject out-of-range indices.
func TestTraversal_IndexErrors(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	_, err = tr.At(-1)
	require.ErrorIs(t, err, layer.ErrIndexOutOfRange)
	_, err = tr.At(6)
	require.ErrorIs(t, err, layer.ErrIndexOutOfRange)
	_, err = tr.Value(2, 0)
	require.ErrorIs(t, err, layer.ErrIndexOutOfRange)
	_, err = tr.Value(0, 3)
	require.ErrorIs(t, err, layer.ErrIndexOutOfRange)
}

// TestTraversal_ConcurrentReaders shares one snapshot across goroutines
// while the source layer keeps being written.
func TestTraversal_ConcurrentReaders(t *testing.T) {
	l := newWorkedLayer(t)
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	const readers = 8
	sums := make([]float64, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			for _, v := range tr.All() {
				sums[i] += v
			}
		}(i)
	}
	c, err := l.CellAt(0, 0)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		_, _ = c.Add(1)
	}
	wg.Wait()

	for _, s := range sums {
		require.Equal(t, 36.0, s)
	}
}

// TestTraversal_Summary checks descriptive statistics over the snapshot.
func TestTraversal_Summary(t *testing.T) {
	l, err := layer.New(3, 2, 0, 0, 1)
	require.NoError(t, err)
	i := 1.0
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			p, err := l.CellCenter(row, col)
			require.NoError(t, err)
			c, err := l.CellAtPoint(p)
			require.NoError(t, err)
			require.NoError(t, c.Set(i))
			i++
		}
	}
	tr, err := l.MakeTraversal()
	require.NoError(t, err)

	s := tr.Summary()
	require.Equal(t, 6, s.Count)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 6.0, s.Max)
	require.Equal(t, 21.0, s.Sum)
	require.InDelta(t, 3.5, s.Mean, 1e-12)
	require.InDelta(t, math.Sqrt(3.5), s.StdDev, 1e-12)

	single, err := layer.New(1, 1, 0, 0, 1)
	require.NoError(t, err)
	st, err := single.MakeTraversal()
	require.NoError(t, err)
	require.Equal(t, layer.Summary{Count: 1}, st.Summary())

	var empty layer.Traversal
	require.Equal(t, layer.Summary{}, empty.Summary())
}
