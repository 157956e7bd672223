package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/afcharts/afcharts/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			So(filepath.Dir(path), ShouldEqual, Config())
		})

		Convey("Palettes() lives in the config directory", func() {
			So(Palettes(), ShouldEqual, filepath.Join(Config(), "palettes.yaml"))
		})

		Convey("Config() honours the override variable", func() {
			prev, had := os.LookupEnv(EnvConfigPath)
			So(os.Setenv(EnvConfigPath, "/tmp/afcharts-test"), ShouldBeNil)
			Reset(func() {
				if had {
					_ = os.Setenv(EnvConfigPath, prev)
				} else {
					_ = os.Unsetenv(EnvConfigPath)
				}
			})

			So(Config(), ShouldEqual, "/tmp/afcharts-test")
			So(lo.Must(filesystem.API().IsDir("/tmp/afcharts-test")), ShouldBeTrue)
		})
	})
}
