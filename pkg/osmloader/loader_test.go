package osmloader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// one degree of latitude on the sphere used by project.
const metersPerDegree = earthRadiusMeters * math.Pi / 180.0

func TestProjectOriginIsZero(t *testing.T) {
	p := project(47.62, -122.35, 47.62, -122.35)
	require.InDelta(t, 0.0, p.GetX(), 1e-9)
	require.InDelta(t, 0.0, p.GetY(), 1e-9)
}

func TestProjectAxesAtEquator(t *testing.T) {
	east := project(0, 1, 0, 0)
	require.InDelta(t, metersPerDegree, east.GetX(), 0.01)
	require.InDelta(t, 0.0, east.GetY(), 1e-9)

	north := project(1, 0, 0, 0)
	require.InDelta(t, 0.0, north.GetX(), 1e-9)
	require.InDelta(t, metersPerDegree, north.GetY(), 0.01)
}

// longitude shrinks with latitude; at 60 degrees north one degree of
// longitude is half a degree of latitude.
func TestProjectLongitudeShrinksWithLatitude(t *testing.T) {
	p := project(60, 1, 60, 0)
	require.InDelta(t, metersPerDegree/2, p.GetX(), 0.01)
	require.InDelta(t, 0.0, p.GetY(), 1e-9)
}

func TestCentroid(t *testing.T) {
	nodes := []signalNode{
		{lat: 10, lon: 20},
		{lat: 20, lon: 40},
		{lat: 30, lon: 60, stop: true},
	}

	lat, lon := centroid(nodes)
	require.InDelta(t, 20.0, lat, 1e-9)
	require.InDelta(t, 40.0, lon, 1e-9)
}
