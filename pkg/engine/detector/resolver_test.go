package detector

import (
	"testing"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func routeAlongX(spacing float64, n int) *datastructure.Route {
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = geo.NewPoint(float64(i)*spacing, 0)
	}
	return datastructure.NewRoute(points)
}

func lightsAt(color pkg.LightColor, coords ...[2]float64) []datastructure.TrafficLight {
	lights := make([]datastructure.TrafficLight, 0, len(coords))
	for _, c := range coords {
		lights = append(lights, datastructure.NewTrafficLight(geo.NewPoint(c[0], c[1]), color))
	}
	return lights
}

func TestResolverHappyPath(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	// 5 waypoints at x=0,10,20,30,40; red light at (25,0); stop line at
	// (22,0); car at origin heading +x
	route := routeAlongX(10, 5)
	lights := lightsAt(pkg.RED, [2]float64{25, 0})
	stopLines := stopLinesAt([2]float64{22, 0})

	wp, color := rs.Resolve(poseAt(0, 0, 0), lights, stopLines, route)
	require.Equal(t, 2, wp)
	require.Equal(t, pkg.RED, color)
}

func TestResolverMissingPoseOrRoute(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	lights := lightsAt(pkg.RED, [2]float64{25, 0})
	stopLines := stopLinesAt([2]float64{22, 0})

	wp, color := rs.Resolve(nil, lights, stopLines, routeAlongX(10, 5))
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)

	wp, color = rs.Resolve(poseAt(0, 0, 0), lights, stopLines, nil)
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)
}

func TestResolverNoLightAhead(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	// the only light sits behind the car
	lights := lightsAt(pkg.RED, [2]float64{-25, 0})
	stopLines := stopLinesAt([2]float64{-28, 0})

	wp, color := rs.Resolve(poseAt(0, 0, 0), lights, stopLines, routeAlongX(10, 5))
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)
}

func TestResolverStopLineDisagreement(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	// the matched light's stop line is (95,0) but the first stop line
	// ahead of the car is (30,0): the car has not reached that light's
	// approach yet
	route := routeAlongX(10, 12)
	lights := lightsAt(pkg.RED, [2]float64{100, 0})
	stopLines := stopLinesAt([2]float64{30, 0}, [2]float64{95, 0})

	wp, color := rs.Resolve(poseAt(0, 0, 0), lights, stopLines, route)
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)
}

func TestResolverNoWaypointNearStopLine(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	// route lives far away from the stop line
	points := []geo.Point{geo.NewPoint(5000, 5000), geo.NewPoint(5010, 5000)}
	route := datastructure.NewRoute(points)
	lights := lightsAt(pkg.RED, [2]float64{25, 0})
	stopLines := stopLinesAt([2]float64{22, 0})

	wp, color := rs.Resolve(poseAt(0, 0, 0), lights, stopLines, route)
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)
}

func TestResolverEmptyLights(t *testing.T) {
	rs := NewResolver(pkg.SEARCH_RANGE_METERS, zap.NewNop())

	wp, color := rs.Resolve(poseAt(0, 0, 0), nil, stopLinesAt([2]float64{22, 0}), routeAlongX(10, 5))
	require.Equal(t, pkg.NO_STOP_WAYPOINT, wp)
	require.Equal(t, pkg.UNKNOWN, color)
}
