package classifier

import (
	"errors"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// HSVClassifier labels a frame by color mass: it masks the red, yellow and
// green hue bands in HSV space and picks the band with the most pixels. crude
// next to a trained model, but it needs no weights and the stabilizer absorbs
// its per-frame noise.
type HSVClassifier struct {
	log *zap.Logger

	// bands with fewer pixels than this are treated as absent
	minPixels int
}

func NewHSVClassifier(minPixels int, log *zap.Logger) *HSVClassifier {
	return &HSVClassifier{
		log:       log,
		minPixels: minPixels,
	}
}

func (c *HSVClassifier) Classify(frame []byte) (pkg.LightColor, error) {
	if len(frame) == 0 {
		return pkg.UNKNOWN, errors.New("empty camera frame")
	}

	img, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return pkg.UNKNOWN, err
	}
	defer img.Close()
	if img.Empty() {
		return pkg.UNKNOWN, errors.New("could not decode camera frame")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	// red hue wraps around 180, so it needs two bands
	red := c.maskCount(hsv, gocv.NewScalar(0, 70, 50, 0), gocv.NewScalar(10, 255, 255, 0)) +
		c.maskCount(hsv, gocv.NewScalar(170, 70, 50, 0), gocv.NewScalar(180, 255, 255, 0))
	yellow := c.maskCount(hsv, gocv.NewScalar(20, 70, 50, 0), gocv.NewScalar(35, 255, 255, 0))
	green := c.maskCount(hsv, gocv.NewScalar(40, 70, 50, 0), gocv.NewScalar(90, 255, 255, 0))

	if pkg.DEBUG {
		c.log.Sugar().Infof("hsv color mass red=%d yellow=%d green=%d", red, yellow, green)
	}

	best, bestCount := pkg.UNKNOWN, c.minPixels
	if red > bestCount {
		best, bestCount = pkg.RED, red
	}
	if yellow > bestCount {
		best, bestCount = pkg.YELLOW, yellow
	}
	if green > bestCount {
		best = pkg.GREEN
	}
	return best, nil
}

func (c *HSVClassifier) maskCount(hsv gocv.Mat, lo, hi gocv.Scalar) int {
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lo, hi, &mask)
	return gocv.CountNonZero(mask)
}
