package spatialindex

import (
	"testing"

	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildIndex(t *testing.T) *Rtree {
	t.Helper()

	stopLines := datastructure.NewStopLines([][]float64{
		{0, 0},
		{100, 0},
		{0, 100},
		{300, 300},
	})

	rt := NewRtree()
	rt.Build(stopLines, zap.NewNop())
	return rt
}

func TestSearchWithinRadius(t *testing.T) {
	rt := buildIndex(t)

	ids := rt.SearchWithinRadius(geo.NewPoint(10, 10), 150)
	require.ElementsMatch(t, []int{0, 1, 2}, ids)

	ids = rt.SearchWithinRadius(geo.NewPoint(10, 10), 20)
	require.ElementsMatch(t, []int{0}, ids)

	// corner of the bounding box but outside the circle
	ids = rt.SearchWithinRadius(geo.NewPoint(200, 200), 130)
	require.Empty(t, ids)
}

func TestNearest(t *testing.T) {
	rt := buildIndex(t)

	id, ok := rt.Nearest(geo.NewPoint(90, 10), 400)
	require.True(t, ok)
	require.Equal(t, 1, id)

	_, ok = rt.Nearest(geo.NewPoint(5000, 5000), 400)
	require.False(t, ok)
}

func TestMergeStopLinesSkipsDuplicates(t *testing.T) {
	stopLines := datastructure.NewStopLines([][]float64{{0, 0}, {100, 0}})
	extra := []geo.Point{
		geo.NewPoint(2, 0),   // duplicate of (0, 0)
		geo.NewPoint(50, 0),  // genuinely new
		geo.NewPoint(100, 3), // duplicate of (100, 0)
	}

	merged := MergeStopLines(stopLines, extra, 5, zap.NewNop())
	require.Len(t, merged, 3)
	require.Equal(t, geo.NewPoint(50, 0), merged[2].GetPosition())
}

func TestMergeStopLinesIntoEmptyList(t *testing.T) {
	extra := []geo.Point{geo.NewPoint(1, 1), geo.NewPoint(200, 200)}

	merged := MergeStopLines(nil, extra, 5, zap.NewNop())
	require.Len(t, merged, 2)
}

func TestEmptyIndex(t *testing.T) {
	rt := NewRtree()
	rt.Build(nil, zap.NewNop())

	require.Empty(t, rt.SearchWithinRadius(geo.NewPoint(0, 0), 100))

	_, ok := rt.Nearest(geo.NewPoint(0, 0), 100)
	require.False(t, ok)
}
