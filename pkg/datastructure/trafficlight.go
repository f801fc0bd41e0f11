package datastructure

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

// TrafficLight is one positioned light from the ground-truth channel. the
// color is only trustworthy for the frame the snapshot belongs to; it is not
// persisted across frames except through the stabilizer.
type TrafficLight struct {
	position geo.Point
	color    pkg.LightColor
}

func NewTrafficLight(position geo.Point, color pkg.LightColor) TrafficLight {
	return TrafficLight{
		position: position,
		color:    color,
	}
}

func (tl TrafficLight) GetPosition() geo.Point {
	return tl.position
}

func (tl TrafficLight) GetColor() pkg.LightColor {
	return tl.color
}

// StopLine is the fixed halt point for a light, loaded once from static
// configuration (z defaulted to 0) and immutable for the process lifetime.
type StopLine struct {
	position geo.Point
}

func NewStopLine(position geo.Point) StopLine {
	return StopLine{
		position: position,
	}
}

// NewStopLines materializes the configured (x, y) pairs.
func NewStopLines(coords [][]float64) []StopLine {
	stopLines := make([]StopLine, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		stopLines = append(stopLines, NewStopLine(geo.NewPoint(c[0], c[1])))
	}
	return stopLines
}

func (s StopLine) GetPosition() geo.Point {
	return s.position
}
