package controllers

import (
	"github.com/joejanuszk/CarND-Capstone/pkg/geo"
)

type vector3Request struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vector3Request) ToPoint() geo.Point {
	return geo.NewPoint(v.X, v.Y)
}

type quaternionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

func (q quaternionRequest) ToQuaternion() geo.Quaternion {
	return geo.NewQuaternion(q.X, q.Y, q.Z, q.W)
}

type poseRequest struct {
	Position    *vector3Request    `json:"position" validate:"required"`
	Orientation *quaternionRequest `json:"orientation" validate:"required"`
}

// route updates carry either an explicit waypoint list or an encoded
// polyline of (x, y) pairs.
type routeRequest struct {
	Waypoints []vector3Request `json:"waypoints" validate:"required_without=Polyline"`
	Polyline  string           `json:"polyline" validate:"required_without=Waypoints"`
}

type lightRequest struct {
	Position *vector3Request `json:"position" validate:"required"`
	State    *uint8          `json:"state" validate:"required"`
}

type lightsRequest struct {
	Lights []lightRequest `json:"lights" validate:"dive"`
}

type imageRequest struct {
	// base64 encoded camera frame (jpeg or png)
	Frame []byte `json:"frame" validate:"required"`
}

type waypointResponse struct {
	Waypoint int `json:"waypoint"`
}

func NewWaypointResponse(waypointIdx int) waypointResponse {
	return waypointResponse{
		Waypoint: waypointIdx,
	}
}

type stateResponse struct {
	Waypoint int    `json:"waypoint"`
	Color    string `json:"color"`
}

func NewStateResponse(waypointIdx int, color string) stateResponse {
	return stateResponse{
		Waypoint: waypointIdx,
		Color:    color,
	}
}

type stopLinesResponse struct {
	StopLines []geo.Point `json:"stop_lines"`
}

func NewStopLinesResponse(points []geo.Point) stopLinesResponse {
	return stopLinesResponse{
		StopLines: points,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
