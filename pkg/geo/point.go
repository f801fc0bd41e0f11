package geo

import "math"

// Point is a planar map-frame coordinate. z is ignored for matching.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func (p Point) GetX() float64 {
	return p.X
}

func (p Point) GetY() float64 {
	return p.Y
}

func (p Point) Sub(o Point) Point {
	return NewPoint(p.X-o.X, p.Y-o.Y)
}

func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// EuclideanDistance. planar distance between a and b in map units (meters).
func EuclideanDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
