package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestIsFile(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()
		So(API().MkdirAll("/cfg", 0o755), ShouldBeNil)
		So(API().WriteFile("/cfg/palettes.yaml", []byte("palettes: {}"), 0o644), ShouldBeNil)

		So(IsFile("/cfg/palettes.yaml"), ShouldBeTrue)
		So(IsFile("/cfg"), ShouldBeFalse)
		So(IsFile("/cfg/missing.yaml"), ShouldBeFalse)
	})
}
