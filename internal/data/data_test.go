package data

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCSVRoundTrip(t *testing.T) {
	Convey("WriteCSV then LoadCSV round-trips a column store", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "x.csv")

		cols, err := NewColumns(map[string][]float64{
			"x0": {1, 2, 3},
			"x1": {4, 5, 6},
		})
		So(err, ShouldBeNil)
		So(WriteCSV(path, cols), ShouldBeNil)

		loaded, err := LoadCSV(path)
		So(err, ShouldBeNil)
		So(loaded.Len(), ShouldEqual, 3)

		x0, ok := loaded.Column("x0")
		So(ok, ShouldBeTrue)
		So(x0, ShouldResemble, []float64{1, 2, 3})
	})

	Convey("WriteSeriesCSV then LoadSeriesCSV round-trips a flat series", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "y.csv")

		So(WriteSeriesCSV(path, "y", []float64{7, 8, 9}), ShouldBeNil)
		series, err := LoadSeriesCSV(path)
		So(err, ShouldBeNil)
		So(series, ShouldResemble, []float64{7, 8, 9})
	})

	Convey("NewColumns rejects mismatched column lengths", t, func() {
		_, err := NewColumns(map[string][]float64{
			"a": {1, 2},
			"b": {1, 2, 3},
		})
		So(err, ShouldNotBeNil)
	})

	Convey("LoadCSV on a missing file returns an error", t, func() {
		_, err := LoadCSV(filepath.Join(os.TempDir(), "does-not-exist-symreg.csv"))
		So(err, ShouldNotBeNil)
	})
}
