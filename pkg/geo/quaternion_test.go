package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 0.5, math.Pi / 2, -math.Pi / 2, 3} {
		q := QuaternionFromYaw(yaw)
		require.InDelta(t, yaw, q.Yaw(), eps)
	}
}

func TestForwardVectorFollowsYaw(t *testing.T) {
	f := QuaternionFromYaw(0).Forward()
	require.InDelta(t, 1.0, f.X, eps)
	require.InDelta(t, 0.0, f.Y, eps)

	f = QuaternionFromYaw(math.Pi / 2).Forward()
	require.InDelta(t, 0.0, f.X, eps)
	require.InDelta(t, 1.0, f.Y, eps)

	f = QuaternionFromYaw(math.Pi).Forward()
	require.InDelta(t, -1.0, f.X, eps)
	require.InDelta(t, 0.0, f.Y, eps)
}

func TestEuclideanDistance(t *testing.T) {
	require.InDelta(t, 5.0, EuclideanDistance(NewPoint(0, 0), NewPoint(3, 4)), eps)
	require.InDelta(t, 0.0, EuclideanDistance(NewPoint(7, -2), NewPoint(7, -2)), eps)
}

func TestDotAndSub(t *testing.T) {
	a := NewPoint(3, 4)
	b := NewPoint(1, 1)

	d := a.Sub(b)
	require.InDelta(t, 2.0, d.X, eps)
	require.InDelta(t, 3.0, d.Y, eps)

	require.InDelta(t, 7.0, a.Dot(b), eps)
}
