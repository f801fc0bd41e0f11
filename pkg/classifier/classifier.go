package classifier

import (
	"github.com/joejanuszk/CarND-Capstone/pkg"
)

// Classifier turns one encoded camera frame into a traffic light color label.
// on real deployments the ground-truth color channel is unavailable and the
// pipeline relies on this instead.
type Classifier interface {
	Classify(frame []byte) (pkg.LightColor, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(frame []byte) (pkg.LightColor, error)

func (f Func) Classify(frame []byte) (pkg.LightColor, error) {
	return f(frame)
}
