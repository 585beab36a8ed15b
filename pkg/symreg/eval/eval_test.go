package eval

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompileAndEval(t *testing.T) {
	Convey("a binary expression compiles and evaluates", t, func() {
		c, err := Compile("(x0 + a0)", []string{"x0"}, []string{"a0"})
		So(err, ShouldBeNil)

		v, err := c.Eval(map[string]float64{"x0": 2, "a0": 3})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 5.0)
	})

	Convey("pow2 and fac custom functions evaluate correctly", t, func() {
		c, err := Compile("pow2(x0)", []string{"x0"}, nil)
		So(err, ShouldBeNil)
		v, _ := c.Eval(map[string]float64{"x0": 3})
		So(v, ShouldEqual, 9.0)

		c2, err := Compile("fac(x0)", []string{"x0"}, nil)
		So(err, ShouldBeNil)
		v2, _ := c2.Eval(map[string]float64{"x0": 4})
		So(math.Abs(v2-24), ShouldBeLessThan, 1e-9)
	})

	Convey("unary minus composes with parenthesized subexpressions", t, func() {
		c, err := Compile("-(x0)", []string{"x0"}, nil)
		So(err, ShouldBeNil)
		v, _ := c.Eval(map[string]float64{"x0": 5})
		So(v, ShouldEqual, -5.0)
	})

	Convey("an unknown atom is rejected at compile time", t, func() {
		_, err := Compile("(x0 + z)", []string{"x0"}, []string{"a0"})
		So(err, ShouldNotBeNil)
	})
}
