package controllers

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

type DetectorService interface {
	UpdatePose(position geo.Point, orientation geo.Quaternion)
	UpdateRoute(waypoints []geo.Point) error
	UpdateLights(lights []datastructure.TrafficLight)
	ProcessFrame(frame []byte) int
	LastPublished() int
	StableColor() pkg.LightColor
	StopLinesNear(p geo.Point, radius float64) ([]geo.Point, error)
}
