package datastructure

import (
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

// Waypoint is a discrete point on the planned route. its id is the ordinal
// position inside the owning route.
type Waypoint struct {
	position geo.Point
	id       int
}

func NewWaypoint(position geo.Point, id int) Waypoint {
	return Waypoint{
		position: position,
		id:       id,
	}
}

func (w Waypoint) GetPosition() geo.Point {
	return w.position
}

func (w Waypoint) GetId() int {
	return w.id
}

// Route is the ordered, immutable waypoint sequence (order = driving order).
// replaced wholesale on reroute, never edited incrementally.
type Route struct {
	waypoints []Waypoint
}

func NewRoute(points []geo.Point) *Route {
	waypoints := make([]Waypoint, len(points))
	for i, p := range points {
		waypoints[i] = NewWaypoint(p, i)
	}
	return &Route{
		waypoints: waypoints,
	}
}

func (r *Route) GetWaypoints() []Waypoint {
	return r.waypoints
}

func (r *Route) Len() int {
	return len(r.waypoints)
}
