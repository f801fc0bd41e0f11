package datastructure

import (
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

// Positioned is anything the spatial matcher can search over.
type Positioned interface {
	GetPosition() geo.Point
}

// Pose is the latest vehicle position + orientation. replaced wholesale on
// every pose update, never mutated in place.
type Pose struct {
	position    geo.Point
	orientation geo.Quaternion
}

func NewPose(position geo.Point, orientation geo.Quaternion) *Pose {
	return &Pose{
		position:    position,
		orientation: orientation,
	}
}

func (p *Pose) GetPosition() geo.Point {
	return p.position
}

func (p *Pose) GetOrientation() geo.Quaternion {
	return p.orientation
}

// Forward is the planar heading vector of the pose.
func (p *Pose) Forward() geo.Point {
	return p.orientation.Forward()
}
