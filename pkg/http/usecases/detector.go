package usecases

import (
	"errors"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/joejanuszk/CarND-Capstone/pkg/recorder"
	"github.com/joejanuszk/CarND-Capstone/pkg/spatialindex"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
	"go.uber.org/zap"
)

// DetectorService is the transport-facing facade over the detection engine.
// it forwards input channel messages into the latest-value caches, optionally
// tees them into the event recorder, and serves lookup queries.
type DetectorService struct {
	log          *zap.Logger
	engine       DetectorEngine
	spatialIndex *spatialindex.Rtree
	stopLines    []datastructure.StopLine

	// nil when event recording is disabled
	rec *recorder.Recorder
}

func NewDetectorService(log *zap.Logger, engine DetectorEngine, spatialIndex *spatialindex.Rtree,
	stopLines []datastructure.StopLine, rec *recorder.Recorder) *DetectorService {

	return &DetectorService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		stopLines:    stopLines,
		rec:          rec,
	}
}

func (ds *DetectorService) UpdatePose(position geo.Point, orientation geo.Quaternion) {
	pose := datastructure.NewPose(position, orientation)
	if ds.rec != nil {
		if err := ds.rec.RecordPose(pose); err != nil {
			ds.log.Warn("could not record pose event", zap.Error(err))
		}
	}
	ds.engine.OnPose(pose)
}

func (ds *DetectorService) UpdateRoute(waypoints []geo.Point) error {
	if len(waypoints) == 0 {
		return util.WrapErrorf(errors.New("empty waypoint list"), util.ErrBadParamInput,
			"route must contain at least one waypoint")
	}

	route := datastructure.NewRoute(waypoints)
	if ds.rec != nil {
		if err := ds.rec.RecordRoute(route); err != nil {
			ds.log.Warn("could not record route event", zap.Error(err))
		}
	}
	ds.engine.OnRoute(route)
	return nil
}

func (ds *DetectorService) UpdateLights(lights []datastructure.TrafficLight) {
	if ds.rec != nil {
		if err := ds.rec.RecordLights(lights); err != nil {
			ds.log.Warn("could not record lights event", zap.Error(err))
		}
	}
	ds.engine.OnTrafficLights(lights)
}

// ProcessFrame triggers one pipeline pass and returns the waypoint index
// published for this frame.
func (ds *DetectorService) ProcessFrame(frame []byte) int {
	if ds.rec != nil {
		if err := ds.rec.RecordImage(frame); err != nil {
			ds.log.Warn("could not record image event", zap.Error(err))
		}
	}
	return ds.engine.OnImage(frame)
}

func (ds *DetectorService) LastPublished() int {
	return ds.engine.LastPublished()
}

func (ds *DetectorService) StableColor() pkg.LightColor {
	return ds.engine.StableColor()
}

// StopLinesNear returns the known stop line positions within radius of p.
func (ds *DetectorService) StopLinesNear(p geo.Point, radius float64) ([]geo.Point, error) {
	if radius <= 0 {
		return nil, util.WrapErrorf(errors.New("non-positive radius"), util.ErrBadParamInput,
			"stop line query radius must be positive")
	}

	ids := ds.spatialIndex.SearchWithinRadius(p, radius)
	points := make([]geo.Point, 0, len(ids))
	for _, id := range ids {
		points = append(points, ds.stopLines[id].GetPosition())
	}
	return points, nil
}
