package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/afcharts/afcharts/filesystem"
	"github.com/afcharts/afcharts/key"
	"github.com/afcharts/afcharts/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("Emitting does nothing", func() {
			So(func() { Infof("ignored %d", 1) }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		Reset(func() { viper.Set(key.LogsWrite, false) })

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)

		Convey("Lines land in today's file", func() {
			Infof("resolved %d colours", 6)

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			content := lo.Must(filesystem.API().ReadFile(path))
			So(string(content), ShouldContainSubstring, "resolved 6 colours")
		})
	})
}
