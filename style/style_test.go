package style

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Rendering helpers keep the text", t, func() {
		So(ansi.Strip(Bold("palette")), ShouldEqual, "palette")
		So(ansi.Strip(Fg(AccentColor)("main")), ShouldEqual, "main")
		So(ansi.Strip(Tag(AccentColor, SecondaryColor)("duo")), ShouldEqual, " duo ")
	})

	Convey("Swatch is as wide as requested", t, func() {
		So(ansi.StringWidth(Swatch("#12436D", 4)), ShouldEqual, 4)
		So(ansi.StringWidth(Swatch("#12436D", 0)), ShouldEqual, 1)
	})
}
