package recorder

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
)

// Sink consumes replayed events in recorded order. *detector.Detector
// satisfies it.
type Sink interface {
	OnPose(*datastructure.Pose)
	OnRoute(*datastructure.Route)
	OnTrafficLights([]datastructure.TrafficLight)
	OnImage(frame []byte) int
}

// Replay feeds every recorded event into sink and returns the waypoint index
// published for each image event, in order.
func Replay(filename string, sink Sink) ([]int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNotFound, "open event log %s", filename)
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "read event log %s", filename)
	}
	defer bz.Close()

	var published []int

	dec := json.NewDecoder(bufio.NewReader(bz))
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return published, util.WrapErrorf(err, util.ErrInternalServerError, "decode event log %s", filename)
		}

		if err := dispatch(ev, sink, &published); err != nil {
			return published, err
		}
	}

	return published, nil
}

func dispatch(ev Event, sink Sink, published *[]int) error {
	switch ev.Kind {
	case EventPose:
		var p PosePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return err
		}
		sink.OnPose(datastructure.NewPose(p.Position, p.Orientation))
	case EventRoute:
		var r RoutePayload
		if err := json.Unmarshal(ev.Payload, &r); err != nil {
			return err
		}
		sink.OnRoute(datastructure.NewRoute(r.Waypoints))
	case EventLights:
		var l LightsPayload
		if err := json.Unmarshal(ev.Payload, &l); err != nil {
			return err
		}
		lights := make([]datastructure.TrafficLight, 0, len(l.Lights))
		for _, lp := range l.Lights {
			lights = append(lights, datastructure.NewTrafficLight(lp.Position, pkg.ParseLightColor(lp.State)))
		}
		sink.OnTrafficLights(lights)
	case EventImage:
		var im ImagePayload
		if err := json.Unmarshal(ev.Payload, &im); err != nil {
			return err
		}
		*published = append(*published, sink.OnImage(im.Frame))
	}
	return nil
}
