package usecases

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
)

type DetectorEngine interface {
	OnPose(*datastructure.Pose)
	OnRoute(*datastructure.Route)
	OnTrafficLights([]datastructure.TrafficLight)
	OnImage(frame []byte) int
	LastPublished() int
	StableColor() pkg.LightColor
}
