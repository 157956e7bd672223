package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "colour", "colours"), ShouldEqual, "1 colour")
		So(Quantify(6, "colour", "colours"), ShouldEqual, "6 colours")
	})
}

func TestClosest(t *testing.T) {
	Convey("Closest", t, func() {
		names := []string{"categorical", "diverging", "duo", "main", "sequential"}
		So(Closest("dou", names), ShouldEqual, "duo")
		So(Closest("sequentail", names), ShouldEqual, "sequential")
		So(Closest("anything", nil), ShouldBeEmpty)
	})
}

func TestMaxClamp(t *testing.T) {
	Convey("Max/Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
		So(Clamp(12, 1, 10), ShouldEqual, 10)
		So(Clamp(-1, 1, 10), ShouldEqual, 1)
		So(Clamp(4, 1, 10), ShouldEqual, 4)
	})
}

func TestTerminalWidth(t *testing.T) {
	Convey("TerminalWidth falls back outside a terminal", t, func() {
		So(TerminalWidth(80), ShouldBeGreaterThan, 0)
	})
}
