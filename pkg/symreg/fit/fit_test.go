package fit

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFitMinimizesAQuadraticBowl(t *testing.T) {
	Convey("Fit recovers the minimum of a simple quadratic residual", t, func() {
		target := []float64{3, -2}
		residual := func(theta []float64) float64 {
			sse := 0.0
			for i, v := range theta {
				d := v - target[i]
				sse += d * d
			}
			return sse
		}

		got, err := Fit(residual, []float64{0, 0}, 1000)
		So(err, ShouldBeNil)
		So(len(got), ShouldEqual, 2)
		So(math.Abs(got[0]-target[0]), ShouldBeLessThan, 1e-2)
		So(math.Abs(got[1]-target[1]), ShouldBeLessThan, 1e-2)
	})

	Convey("Fit with an empty parameter vector returns immediately with no error", t, func() {
		got, err := Fit(func(theta []float64) float64 { return 0 }, nil, 100)
		So(err, ShouldBeNil)
		So(got, ShouldBeNil)
	})

	Convey("Fit reports failure when the residual is always non-finite", t, func() {
		_, err := Fit(func(theta []float64) float64 { return math.NaN() }, []float64{0}, 50)
		So(err, ShouldNotBeNil)
	})
}
