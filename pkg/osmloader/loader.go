package osmloader

import (
	"context"
	"math"
	"os"

	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

const earthRadiusMeters = 6371000.0

// Loader seeds traffic-signal and stop positions from an openstreetmap
// extract, for deployments where the simulator's ground-truth channel does
// not exist. node lat/lon is projected equirectangularly around the extract
// centroid so the rest of the pipeline keeps working in planar meters.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

type signalNode struct {
	lat  float64
	lon  float64
	stop bool
}

// Load scans mapFile and returns planar signal positions and stop positions
// (highway=traffic_signals and highway=stop nodes).
func (l *Loader) Load(mapFile string) (signals []geo.Point, stops []geo.Point, err error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var nodes []signalNode

	scanner := osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}

		node := o.(*osm.Node)
		switch node.Tags.Find("highway") {
		case "traffic_signals":
			nodes = append(nodes, signalNode{lat: node.Lat, lon: node.Lon})
		case "stop":
			nodes = append(nodes, signalNode{lat: node.Lat, lon: node.Lon, stop: true})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if len(nodes) == 0 {
		l.log.Warn("no traffic signal nodes in extract", zap.String("file", mapFile))
		return nil, nil, nil
	}

	originLat, originLon := centroid(nodes)
	for _, n := range nodes {
		p := project(n.lat, n.lon, originLat, originLon)
		if n.stop {
			stops = append(stops, p)
		} else {
			signals = append(signals, p)
		}
	}

	l.log.Info("seeded positions from openstreetmap extract",
		zap.String("file", mapFile),
		zap.Int("signals", len(signals)),
		zap.Int("stops", len(stops)))
	return signals, stops, nil
}

func centroid(nodes []signalNode) (float64, float64) {
	var latSum, lonSum float64
	for _, n := range nodes {
		latSum += n.lat
		lonSum += n.lon
	}
	return latSum / float64(len(nodes)), lonSum / float64(len(nodes))
}

// project maps (lat, lon) to meters relative to the origin using an
// equirectangular approximation; fine at city-extract scale.
func project(lat, lon, originLat, originLon float64) geo.Point {
	x := earthRadiusMeters * util.DegreeToRadians(lon-originLon) * math.Cos(util.DegreeToRadians(originLat))
	y := earthRadiusMeters * util.DegreeToRadians(lat-originLat)
	return geo.NewPoint(x, y)
}
