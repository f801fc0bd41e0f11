package detector

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
)

// Stabilizer debounces the noisy per-frame color classification. a raw color
// must persist for threshold consecutive frames before it is committed; until
// then the last committed output keeps being emitted at frame rate.
type Stabilizer struct {
	threshold    int
	observed     pkg.LightColor
	stable       pkg.LightColor
	count        int
	lastWaypoint int
}

func NewStabilizer(threshold int) *Stabilizer {
	return &Stabilizer{
		threshold:    threshold,
		observed:     pkg.UNKNOWN,
		stable:       pkg.UNKNOWN,
		lastWaypoint: pkg.NO_STOP_WAYPOINT,
	}
}

// Observe feeds one frame's raw resolution result and returns the output to
// publish for this frame. a stable non-red color maps to the no-stop
// sentinel; only a stable red commits the resolved waypoint index.
func (s *Stabilizer) Observe(waypointIdx int, raw pkg.LightColor) int {
	if raw != s.observed {
		s.count = 0
		s.observed = raw
	} else if s.count >= s.threshold {
		s.stable = s.observed
		if raw == pkg.RED {
			s.lastWaypoint = waypointIdx
		} else {
			s.lastWaypoint = pkg.NO_STOP_WAYPOINT
		}
	}
	s.count++

	return s.lastWaypoint
}

// LastPublished is the last committed output, the value re-emitted between
// confirmations.
func (s *Stabilizer) LastPublished() int {
	return s.lastWaypoint
}

func (s *Stabilizer) StableColor() pkg.LightColor {
	return s.stable
}

func (s *Stabilizer) ObservedColor() pkg.LightColor {
	return s.observed
}

// Reset returns the machine to its initial state.
func (s *Stabilizer) Reset() {
	s.observed = pkg.UNKNOWN
	s.stable = pkg.UNKNOWN
	s.count = 0
	s.lastWaypoint = pkg.NO_STOP_WAYPOINT
}
