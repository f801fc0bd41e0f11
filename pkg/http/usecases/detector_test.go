package usecases

import (
	"errors"
	"testing"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/engine/detector"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/joejanuszk/CarND-Capstone/pkg/spatialindex"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *DetectorService {
	t.Helper()
	log := zap.NewNop()

	stopLines := datastructure.NewStopLines([][]float64{{22, 0}, {100, 0}})
	rt := spatialindex.NewRtree()
	rt.Build(stopLines, log)

	eng := detector.NewDetector(stopLines, nil, nil, log)
	return NewDetectorService(log, eng, rt, stopLines, nil)
}

func TestUpdateRouteRejectsEmptyWaypointList(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateRoute(nil)
	require.Error(t, err)

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, util.ErrBadParamInput, uerr.Code())
}

func TestStopLinesNearRejectsNonPositiveRadius(t *testing.T) {
	svc := newTestService(t)

	for _, radius := range []float64{0, -1} {
		_, err := svc.StopLinesNear(geo.NewPoint(0, 0), radius)
		require.Error(t, err)

		var uerr *util.Error
		require.True(t, errors.As(err, &uerr))
		require.Equal(t, util.ErrBadParamInput, uerr.Code())
	}
}

func TestStopLinesNearReturnsIndexedPositions(t *testing.T) {
	svc := newTestService(t)

	points, err := svc.StopLinesNear(geo.NewPoint(20, 0), 10)
	require.NoError(t, err)
	require.Equal(t, []geo.Point{geo.NewPoint(22, 0)}, points)
}

// the full input path: pose, route, and lights flow through the service into
// the engine, and frames come back with the stabilized stop waypoint.
func TestServiceForwardsInputsToEngine(t *testing.T) {
	svc := newTestService(t)

	svc.UpdatePose(geo.NewPoint(0, 0), geo.QuaternionFromYaw(0))

	waypoints := make([]geo.Point, 5)
	for i := range waypoints {
		waypoints[i] = geo.NewPoint(float64(i)*10, 0)
	}
	require.NoError(t, svc.UpdateRoute(waypoints))

	svc.UpdateLights([]datastructure.TrafficLight{
		datastructure.NewTrafficLight(geo.NewPoint(25, 0), pkg.RED),
	})

	for i := 0; i < 3; i++ {
		require.Equal(t, pkg.NO_STOP_WAYPOINT, svc.ProcessFrame(nil))
	}
	require.Equal(t, 2, svc.ProcessFrame(nil))
	require.Equal(t, 2, svc.LastPublished())
	require.Equal(t, pkg.RED, svc.StableColor())
}
