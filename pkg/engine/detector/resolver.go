package detector

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"go.uber.org/zap"
)

// Resolver cross-references the upcoming light against the upcoming stop line
// and maps the stop line onto the route.
type Resolver struct {
	log         *zap.Logger
	searchRange float64
}

func NewResolver(searchRange float64, log *zap.Logger) *Resolver {
	return &Resolver{
		log:         log,
		searchRange: searchRange,
	}
}

// Resolve returns the route waypoint index of the stop line for the nearest
// relevant light ahead of the pose, plus that light's raw color for this
// frame. every degrade path returns (NO_STOP_WAYPOINT, UNKNOWN) and is
// non-fatal.
//
// the stop line nearest the matched light and the stop line nearest-ahead of
// the car must agree. independently indexed light and stop-line lists are not
// guaranteed to be in route order, so without this check we could report a
// stop line for a light the car will not reach next.
func (rs *Resolver) Resolve(pose *datastructure.Pose, lights []datastructure.TrafficLight,
	stopLines []datastructure.StopLine, route *datastructure.Route) (int, pkg.LightColor) {

	if pose == nil || route == nil || route.Len() == 0 {
		return pkg.NO_STOP_WAYPOINT, pkg.UNKNOWN
	}

	lightIdx, ok := FindNearestAhead(pose, lights, rs.searchRange)
	if !ok {
		rs.log.Info("no traffic light ahead of current pose",
			zap.Float64("x", pose.GetPosition().GetX()),
			zap.Float64("y", pose.GetPosition().GetY()))
		return pkg.NO_STOP_WAYPOINT, pkg.UNKNOWN
	}

	stopIdxByLight, okLight := FindNearest(lights[lightIdx].GetPosition(), stopLines, rs.searchRange)
	stopIdxByCar, okCar := FindNearestAhead(pose, stopLines, rs.searchRange)

	if !okLight || !okCar || stopIdxByLight != stopIdxByCar {
		// likely the car is still away from that light's stop line
		rs.log.Info("traffic light upcoming but no agreeing stop line ahead",
			zap.Int("stop_idx_by_light", stopIdxByLight),
			zap.Int("stop_idx_by_car", stopIdxByCar))
		return pkg.NO_STOP_WAYPOINT, pkg.UNKNOWN
	}

	waypointIdx, ok := FindNearest(stopLines[stopIdxByLight].GetPosition(), route.GetWaypoints(), rs.searchRange)
	if !ok {
		rs.log.Info("no route waypoint near stop line",
			zap.Int("stop_line", stopIdxByLight))
		return pkg.NO_STOP_WAYPOINT, pkg.UNKNOWN
	}

	return waypointIdx, lights[lightIdx].GetColor()
}
