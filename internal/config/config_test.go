package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("Default returns the Recognized Options defaults", t, func() {
		cfg := Default()
		So(cfg.BT, ShouldEqual, 1)
		So(cfg.PT, ShouldEqual, 1)
		So(cfg.MaxSize, ShouldEqual, 50)
		So(cfg.PRR, ShouldEqual, 0.05)
		So(cfg.PLong, ShouldEqual, 0.5)
		So(len(cfg.Ops), ShouldBeGreaterThan, 0)
		So(cfg.Ops["+"], ShouldEqual, 2)
		So(cfg.Ops["sin"], ShouldEqual, 1)
		So(cfg.PriorPar["Nopi_+"], ShouldEqual, 5.0)
	})
}

func TestLoad(t *testing.T) {
	Convey("Load parses a YAML file over the defaults", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "symreg.yaml")
		contents := "variables: [x0, x1]\nparameters: [a0]\nmax_size: 77\n"
		So(os.WriteFile(path, []byte(contents), 0644), ShouldBeNil)

		cfg, err := Load(path)
		So(err, ShouldBeNil)
		So(cfg.Variables, ShouldResemble, []string{"x0", "x1"})
		So(cfg.Parameters, ShouldResemble, []string{"a0"})
		So(cfg.MaxSize, ShouldEqual, 77)
		// untouched fields keep their Default() value
		So(cfg.BT, ShouldEqual, 1)
	})

	Convey("Load returns an error for a missing file", t, func() {
		_, err := Load(filepath.Join(os.TempDir(), "no-such-symreg-config.yaml"))
		So(err, ShouldNotBeNil)
	})
}

func TestApplyEnvOverrides(t *testing.T) {
	Convey("environment variables override YAML/default values", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "symreg.yaml")
		So(os.WriteFile(path, []byte("max_size: 10\n"), 0644), ShouldBeNil)

		t.Setenv("SYMREG_MAX_SIZE", "123")
		t.Setenv("SYMREG_VERBOSE", "true")
		t.Setenv("SYMREG_BT", "2.5")

		cfg, err := Load(path)
		So(err, ShouldBeNil)
		So(cfg.MaxSize, ShouldEqual, 123)
		So(cfg.Verbose, ShouldBeTrue)
		So(cfg.BT, ShouldEqual, 2.5)
	})
}

func TestManager(t *testing.T) {
	Convey("Manager guards Get/Update", t, func() {
		m := NewManager(nil)
		So(m.Get().MaxSize, ShouldEqual, 50)

		updated := Default()
		updated.MaxSize = 99
		m.Update(updated)
		So(m.Get().MaxSize, ShouldEqual, 99)
	})
}

func TestTreeAndDriverConfigTranslation(t *testing.T) {
	Convey("TreeConfig and DriverConfig translate the relevant fields", t, func() {
		cfg := Default()
		cfg.Variables = []string{"x0"}
		cfg.Parameters = []string{"a0"}

		tc := cfg.TreeConfig()
		So(tc.Variables, ShouldResemble, []string{"x0"})
		So(tc.Parameters, ShouldResemble, []string{"a0"})
		So(tc.MaxSize, ShouldEqual, cfg.MaxSize)

		dc := cfg.DriverConfig()
		So(dc.PRR, ShouldEqual, cfg.PRR)
		So(dc.Burnin, ShouldEqual, cfg.Burnin)
	})
}
