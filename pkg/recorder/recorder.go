package recorder

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"github.com/dsnet/compress/bzip2"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

// Recorder appends every input message to a bzip2-compressed JSONL log.
// replaying the log through a fresh pipeline must reproduce the exact output
// sequence, which makes recorded drives usable as offline regressions.

type EventKind string

const (
	EventPose   EventKind = "pose"
	EventRoute  EventKind = "route"
	EventLights EventKind = "lights"
	EventImage  EventKind = "image"
)

type Event struct {
	Kind    EventKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type PosePayload struct {
	Position    geo.Point      `json:"position"`
	Orientation geo.Quaternion `json:"orientation"`
}

type RoutePayload struct {
	Waypoints []geo.Point `json:"waypoints"`
}

type LightPayload struct {
	Position geo.Point `json:"position"`
	State    uint8     `json:"state"`
}

type LightsPayload struct {
	Lights []LightPayload `json:"lights"`
}

type ImagePayload struct {
	Frame []byte `json:"frame"`
}

type Recorder struct {
	mu  sync.Mutex
	f   *os.File
	bz  *bzip2.Writer
	w   *bufio.Writer
	enc *json.Encoder
}

func NewRecorder(filename string) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := bufio.NewWriter(bz)
	return &Recorder{
		f:   f,
		bz:  bz,
		w:   w,
		enc: json.NewEncoder(w),
	}, nil
}

func (r *Recorder) record(kind EventKind, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(Event{Kind: kind, Payload: raw})
}

func (r *Recorder) RecordPose(p *datastructure.Pose) error {
	return r.record(EventPose, PosePayload{
		Position:    p.GetPosition(),
		Orientation: p.GetOrientation(),
	})
}

func (r *Recorder) RecordRoute(route *datastructure.Route) error {
	waypoints := make([]geo.Point, 0, route.Len())
	for _, wp := range route.GetWaypoints() {
		waypoints = append(waypoints, wp.GetPosition())
	}
	return r.record(EventRoute, RoutePayload{Waypoints: waypoints})
}

func (r *Recorder) RecordLights(lights []datastructure.TrafficLight) error {
	payload := LightsPayload{Lights: make([]LightPayload, 0, len(lights))}
	for _, l := range lights {
		payload.Lights = append(payload.Lights, LightPayload{
			Position: l.GetPosition(),
			State:    uint8(l.GetColor()),
		})
	}
	return r.record(EventLights, payload)
}

func (r *Recorder) RecordImage(frame []byte) error {
	return r.record(EventImage, ImagePayload{Frame: frame})
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.w.Flush(); err != nil {
		return err
	}
	if err := r.bz.Close(); err != nil {
		return err
	}
	return r.f.Close()
}
