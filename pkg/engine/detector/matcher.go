package detector

import (
	"math"

	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

// FindNearest returns the index of the candidate closest to ref. candidates
// farther than searchRange are never selected, even when they are the overall
// closest. ties at equal minimal distance resolve to the lowest index (strict
// < comparison, first seen wins). the second return value is false when no
// candidate qualifies.
func FindNearest[T datastructure.Positioned](ref geo.Point, candidates []T, searchRange float64) (int, bool) {
	minDist := math.Inf(1)
	minIdx := -1

	for i, c := range candidates {
		dist := geo.EuclideanDistance(ref, c.GetPosition())
		if dist < minDist && dist < searchRange {
			minDist = dist
			minIdx = i
		}
	}

	if minIdx < 0 {
		return -1, false
	}
	return minIdx, true
}

// FindNearestAhead is FindNearest restricted to candidates lying ahead of the
// pose heading: a candidate qualifies iff the dot product of the planar
// forward vector and the pose->candidate vector is positive. candidates
// exactly abeam (zero dot) are excluded.
func FindNearestAhead[T datastructure.Positioned](pose *datastructure.Pose, candidates []T, searchRange float64) (int, bool) {
	if pose == nil {
		return -1, false
	}

	forward := pose.Forward()
	origin := pose.GetPosition()

	minDist := math.Inf(1)
	minIdx := -1

	for i, c := range candidates {
		toCandidate := c.GetPosition().Sub(origin)
		if forward.Dot(toCandidate) <= 0 {
			continue
		}

		dist := geo.EuclideanDistance(origin, c.GetPosition())
		if dist < minDist && dist < searchRange {
			minDist = dist
			minIdx = i
		}
	}

	if minIdx < 0 {
		return -1, false
	}
	return minIdx, true
}
