package geo

import (
	"math"

	"github.com/golang/geo/r3"
)

// Quaternion is the vehicle orientation as reported by the pose source
// (x, y, z, w order).
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{
		X: x,
		Y: y,
		Z: z,
		W: w,
	}
}

// QuaternionFromYaw builds a pure z-axis rotation.
func QuaternionFromYaw(yawRad float64) Quaternion {
	return NewQuaternion(0, 0, math.Sin(yawRad/2.0), math.Cos(yawRad/2.0))
}

// Rotate rotates v by q: v' = v + 2*u x (u x v + w*v), u = (x,y,z).
func (q Quaternion) Rotate(v r3.Vector) r3.Vector {
	u := r3.Vector{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2.0)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Yaw extracts the z-axis euler angle in radians.
func (q Quaternion) Yaw() float64 {
	sinYCosP := 2.0 * (q.W*q.Z + q.X*q.Y)
	cosYCosP := 1.0 - 2.0*(q.Y*q.Y+q.Z*q.Z)
	return math.Atan2(sinYCosP, cosYCosP)
}

// Forward is the unit x axis rotated into the map frame, projected onto the
// plane. this is the vehicle heading vector used by the directional search.
func (q Quaternion) Forward() Point {
	f := q.Rotate(r3.Vector{X: 1.0, Y: 0.0, Z: 0.0})
	return NewPoint(f.X, f.Y)
}
