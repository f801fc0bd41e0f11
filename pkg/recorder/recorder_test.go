package recorder

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/engine/detector"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scenarioStopLines() []datastructure.StopLine {
	return datastructure.NewStopLines([][]float64{{22, 0}})
}

func scenarioRoute() *datastructure.Route {
	points := make([]geo.Point, 5)
	for i := range points {
		points[i] = geo.NewPoint(float64(i)*10, 0)
	}
	return datastructure.NewRoute(points)
}

// drive one recorded scenario through a live detector and again through
// replay; both must publish the identical output sequence.
func TestRecordAndReplayReproducesOutputs(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "drive.bag.bz2")

	rec, err := NewRecorder(logFile)
	require.NoError(t, err)

	live := detector.NewDetector(scenarioStopLines(), nil, nil, zap.NewNop())

	pose := datastructure.NewPose(geo.NewPoint(0, 0), geo.QuaternionFromYaw(0))
	require.NoError(t, rec.RecordPose(pose))
	live.OnPose(pose)

	route := scenarioRoute()
	require.NoError(t, rec.RecordRoute(route))
	live.OnRoute(route)

	var livePublished []int
	colors := []pkg.LightColor{pkg.RED, pkg.RED, pkg.GREEN, pkg.RED, pkg.RED, pkg.RED, pkg.RED, pkg.RED}
	for _, c := range colors {
		lights := []datastructure.TrafficLight{
			datastructure.NewTrafficLight(geo.NewPoint(25, 0), c),
		}
		require.NoError(t, rec.RecordLights(lights))
		live.OnTrafficLights(lights)

		require.NoError(t, rec.RecordImage(nil))
		livePublished = append(livePublished, live.OnImage(nil))
	}
	require.NoError(t, rec.Close())

	fresh := detector.NewDetector(scenarioStopLines(), nil, nil, zap.NewNop())
	replayed, err := Replay(logFile, fresh)
	require.NoError(t, err)

	require.Equal(t, livePublished, replayed)
}

func TestReplayMissingFile(t *testing.T) {
	fresh := detector.NewDetector(scenarioStopLines(), nil, nil, zap.NewNop())

	_, err := Replay(filepath.Join(t.TempDir(), "absent.bag.bz2"), fresh)
	require.Error(t, err)

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, util.ErrNotFound, uerr.Code())
}

func TestRecorderPreservesLightColors(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lights.bag.bz2")

	rec, err := NewRecorder(logFile)
	require.NoError(t, err)

	lights := []datastructure.TrafficLight{
		datastructure.NewTrafficLight(geo.NewPoint(1, 2), pkg.YELLOW),
		datastructure.NewTrafficLight(geo.NewPoint(3, 4), pkg.UNKNOWN),
	}
	require.NoError(t, rec.RecordLights(lights))
	require.NoError(t, rec.Close())

	var got []datastructure.TrafficLight
	sink := &captureSink{onLights: func(l []datastructure.TrafficLight) { got = l }}
	_, err = Replay(logFile, sink)
	require.NoError(t, err)
	require.Equal(t, lights, got)
}

type captureSink struct {
	onLights func([]datastructure.TrafficLight)
}

func (c *captureSink) OnPose(*datastructure.Pose)    {}
func (c *captureSink) OnRoute(*datastructure.Route)  {}
func (c *captureSink) OnImage(frame []byte) int      { return pkg.NO_STOP_WAYPOINT }
func (c *captureSink) OnTrafficLights(l []datastructure.TrafficLight) {
	if c.onLights != nil {
		c.onLights(l)
	}
}
