package detector

import (
	"sync"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/classifier"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"go.uber.org/zap"
)

// Publisher receives the stop waypoint index published for each processed
// camera frame.
type Publisher func(waypointIdx int)

// Detector owns the latest-value snapshot caches and runs the per-frame
// pipeline: resolve the relevant light and its stop waypoint, classify the
// color, stabilize, publish.
//
// pose, route and light snapshots are replaced wholesale and only ever read
// under the same lock that replaces them; no partial mutation.
type Detector struct {
	mu sync.Mutex

	log *zap.Logger

	pose   *datastructure.Pose
	route  *datastructure.Route
	lights []datastructure.TrafficLight

	// fixed at startup for the process lifetime
	stopLines []datastructure.StopLine

	resolver   *Resolver
	stabilizer *Stabilizer

	// nil in ground-truth mode: colors come from the lights snapshot
	classifier classifier.Classifier

	publish Publisher
}

func NewDetector(stopLines []datastructure.StopLine, cl classifier.Classifier,
	publish Publisher, log *zap.Logger) *Detector {

	return &Detector{
		log:        log,
		stopLines:  stopLines,
		resolver:   NewResolver(pkg.SEARCH_RANGE_METERS, log),
		stabilizer: NewStabilizer(pkg.STATE_COUNT_THRESHOLD),
		classifier: cl,
		publish:    publish,
	}
}

func (d *Detector) OnPose(p *datastructure.Pose) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pose = p
}

func (d *Detector) OnRoute(r *datastructure.Route) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.route = r
}

func (d *Detector) OnTrafficLights(lights []datastructure.TrafficLight) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lights = lights
}

// OnImage runs one synchronous pipeline pass against the latest snapshots and
// returns the waypoint index published for this frame.
func (d *Detector) OnImage(frame []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	waypointIdx, rawColor := d.resolver.Resolve(d.pose, d.lights, d.stopLines, d.route)

	if d.classifier != nil && waypointIdx != pkg.NO_STOP_WAYPOINT {
		color, err := d.classifier.Classify(frame)
		if err != nil {
			// no image available: report unknown, keep the previous
			// stabilized output flowing
			d.log.Info("camera frame unusable", zap.Error(err))
			waypointIdx, rawColor = pkg.NO_STOP_WAYPOINT, pkg.UNKNOWN
		} else {
			rawColor = color
		}
	}

	out := d.stabilizer.Observe(waypointIdx, rawColor)
	if d.publish != nil {
		d.publish(out)
	}
	return out
}

// LastPublished is the last stabilized stop waypoint index.
func (d *Detector) LastPublished() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stabilizer.LastPublished()
}

func (d *Detector) StableColor() pkg.LightColor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stabilizer.StableColor()
}
