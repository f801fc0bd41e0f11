package spatialindex

import (
	"math"

	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree indexes the static stop-line list for nearby-lookup queries. the list
// never changes after startup, so the tree is built once and read forever.
type Rtree struct {
	tr *rtree.RTreeG[stopLineEntry]
}

type stopLineEntry struct {
	id  int
	pos geo.Point
}

func (e stopLineEntry) GetId() int {
	return e.id
}

func (e stopLineEntry) GetPosition() geo.Point {
	return e.pos
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[stopLineEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes stopLines by their ordinal position in the configured list.
func (rt *Rtree) Build(stopLines []datastructure.StopLine, log *zap.Logger) {
	for i, s := range stopLines {
		p := s.GetPosition()
		rt.tr.Insert([2]float64{p.GetX(), p.GetY()}, [2]float64{p.GetX(), p.GetY()},
			stopLineEntry{id: i, pos: p})
	}
	log.Info("stop line spatial index built", zap.Int("stop_lines", len(stopLines)))
}

// SearchWithinRadius returns the ids of stop lines within radius of q,
// ordered by configured index.
func (rt *Rtree) SearchWithinRadius(q geo.Point, radius float64) []int {
	results := make([]int, 0, 8)
	rt.tr.Search([2]float64{q.GetX() - radius, q.GetY() - radius},
		[2]float64{q.GetX() + radius, q.GetY() + radius},
		func(min, max [2]float64, e stopLineEntry) bool {
			if geo.EuclideanDistance(q, e.pos) <= radius {
				results = append(results, e.id)
			}
			return true
		})
	return results
}

// MergeStopLines appends the extra positions that are not already covered by
// an existing stop line within mergeRadius. duplicates between a map extract
// and the configured list would otherwise fail the two-sided light/stop-line
// consistency check with themselves.
func MergeStopLines(stopLines []datastructure.StopLine, extra []geo.Point,
	mergeRadius float64, log *zap.Logger) []datastructure.StopLine {

	index := NewRtree()
	index.Build(stopLines, log)

	merged := 0
	for _, p := range extra {
		if _, ok := index.Nearest(p, mergeRadius); ok {
			continue
		}
		stopLines = append(stopLines, datastructure.NewStopLine(p))
		merged++
	}
	if merged > 0 {
		log.Info("merged stop positions from map extract", zap.Int("added", merged),
			zap.Int("duplicates", len(extra)-merged))
	}
	return stopLines
}

// Nearest returns the id of the stop line closest to q within radius, or
// false when none qualifies.
func (rt *Rtree) Nearest(q geo.Point, radius float64) (int, bool) {
	minDist := math.Inf(1)
	minId := -1
	rt.tr.Search([2]float64{q.GetX() - radius, q.GetY() - radius},
		[2]float64{q.GetX() + radius, q.GetY() + radius},
		func(min, max [2]float64, e stopLineEntry) bool {
			dist := geo.EuclideanDistance(q, e.pos)
			if dist < minDist && dist < radius {
				minDist = dist
				minId = e.id
			}
			return true
		})
	if minId < 0 {
		return -1, false
	}
	return minId, true
}
