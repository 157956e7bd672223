package palette

import (
	"errors"
	"sync"
	"testing"

	"github.com/afcharts/afcharts/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func hexes(colours []Colour) []string {
	return lo.Map(colours, func(c Colour, _ int) string { return c.String() })
}

func TestResolve(t *testing.T) {
	Convey("Given the built-in registry", t, func() {
		r, err := Builtin()
		So(err, ShouldBeNil)

		Convey("Main returns exactly count colours for every valid count", func() {
			for n := 1; n <= 6; n++ {
				colours, err := r.Resolve(Main, Hex, n)
				So(err, ShouldBeNil)
				So(colours, ShouldHaveLength, n)
			}
		})

		Convey("Main colours come in the documented order", func() {
			colours, err := r.Resolve(Main, Hex, 6)
			So(err, ShouldBeNil)
			So(hexes(colours), ShouldResemble, []string{"#12436D", "#28A197", "#801650", "#F46A25", "#3D3D3D", "#A285D1"})
		})

		Convey("Categorical with two colours is served from duo", func() {
			for _, f := range Formats() {
				cat, err := r.Resolve(Categorical, f, 2)
				So(err, ShouldBeNil)
				duo, err := r.Resolve(Duo, f, 2)
				So(err, ShouldBeNil)
				So(cat, ShouldResemble, duo)
			}
			cat, _ := r.Resolve(Categorical, Hex, 2)
			So(hexes(cat), ShouldResemble, []string{"#12436D", "#F46A25"})
		})

		Convey("Categorical with any other count follows main", func() {
			cat, err := r.Resolve(Categorical, Hex, 3)
			So(err, ShouldBeNil)
			main, _ := r.Resolve(Main, Hex, 3)
			So(cat, ShouldResemble, main)
		})

		Convey("Names are matched case-insensitively", func() {
			colours, err := r.Resolve(" MAIN ", Hex, 1)
			So(err, ShouldBeNil)
			So(colours[0].Hex(), ShouldEqual, "#12436D")
		})

		Convey("RGB format renders normalized triplets", func() {
			colours, err := r.Resolve(Main, RGB, 1)
			So(err, ShouldBeNil)
			So(colours[0].Format(), ShouldEqual, RGB)
			So(colours[0].String(), ShouldEqual, "(0.0706, 0.2627, 0.4275)")
		})

		Convey("An unknown palette fails with ErrInvalidPalette", func() {
			_, err := r.Resolve("wrong_palette", Hex, 2)
			So(errors.Is(err, ErrInvalidPalette), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "main")
		})

		Convey("An unknown format fails with ErrInvalidFormat", func() {
			_, err := r.Resolve(Main, Format("wrong_format"), 2)
			So(errors.Is(err, ErrInvalidFormat), ShouldBeTrue)
		})

		Convey("The palette is validated before the format and the count", func() {
			_, err := r.Resolve("wrong_palette", Format("wrong_format"), 0)
			So(errors.Is(err, ErrInvalidPalette), ShouldBeTrue)

			_, err = r.Resolve(Main, Format("wrong_format"), 0)
			So(errors.Is(err, ErrInvalidFormat), ShouldBeTrue)
		})

		Convey("Counts outside the palette fail with ErrInvalidCount", func() {
			for _, n := range []int{0, -1, 7} {
				_, err := r.Resolve(Main, Hex, n)
				So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)
			}
			_, err := r.Resolve(Duo, Hex, 3)
			So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)
		})
	})
}

func TestGradients(t *testing.T) {
	Convey("Given the sequential gradients", t, func() {
		r := Default()

		Convey("Sampling hits both endpoints", func() {
			colours, err := r.Resolve(Sequential, Hex, 5)
			So(err, ShouldBeNil)
			So(colours, ShouldHaveLength, 5)
			So(colours[0].Hex(), ShouldEqual, "#12436D")
			So(colours[2].Hex(), ShouldEqual, "#2073BC")
			So(colours[4].Hex(), ShouldEqual, "#6BACE6")
		})

		Convey("A single colour is the first stop", func() {
			colours, err := r.Resolve(Sequential, Hex, 1)
			So(err, ShouldBeNil)
			So(colours[0].Hex(), ShouldEqual, "#12436D")
		})

		Convey("Gradients are unbounded", func() {
			p, ok := r.Palette(Diverging)
			So(ok, ShouldBeTrue)
			_, bounded := p.Max()
			So(bounded, ShouldBeFalse)
			So(p.Kind(), ShouldEqual, Gradient)

			colours, err := r.Resolve(Diverging, Hex, 40)
			So(err, ShouldBeNil)
			So(colours, ShouldHaveLength, 40)
		})

		Convey("sequential_minus runs light to dark", func() {
			colours, err := r.Resolve(SequentialMinus, Hex, 3)
			So(err, ShouldBeNil)
			So(hexes(colours), ShouldResemble, []string{"#6BACE6", "#2073BC", "#12436D"})
		})

		Convey("Intermediate samples blend neighbouring stops", func() {
			p, _ := r.Palette(Sequential)
			mid := p.At(0.25)
			first, _, _ := p.Stops()[0].Colour.RGB()
			second, _, _ := p.Stops()[1].Colour.RGB()
			got, _, _ := mid.RGB()
			So(got, ShouldBeBetweenOrEqual, lo.Min([]float64{first, second}), lo.Max([]float64{first, second}))
		})
	})
}

func TestColour(t *testing.T) {
	Convey("Colours", t, func() {
		Convey("Round trip hex through rgb and back", func() {
			for _, name := range Default().ColourNames() {
				c, _ := Default().Named(name)
				r, g, b := c.In(RGB).RGB()
				back, err := FromRGB(r, g, b)
				So(err, ShouldBeNil)
				So(back.Hex(), ShouldEqual, c.Hex())
			}
		})

		Convey("Hex output is upper case", func() {
			So(lo.Must(ParseHex("#12436d")).Hex(), ShouldEqual, "#12436D")
		})

		Convey("Out of range rgb channels are rejected", func() {
			_, err := FromRGB(1.2, 0, 0)
			So(err, ShouldNotBeNil)
		})

		Convey("RGBA renders a CSS colour with clamped alpha", func() {
			So(lo.Must(ParseHex("#12436D")).RGBA(0.2), ShouldEqual, "rgba(18, 67, 109, 0.2)")
			So(lo.Must(ParseHex("#000000")).RGBA(3), ShouldEqual, "rgba(0, 0, 0, 1)")
		})

		Convey("ParseFormat accepts known formats only", func() {
			f, err := ParseFormat("RGB")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, RGB)

			_, err = ParseFormat("cmyk")
			So(errors.Is(err, ErrInvalidFormat), ShouldBeTrue)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Registry lookups", t, func() {
		r := Default()

		Convey("Names include aliases", func() {
			So(r.Names(), ShouldContain, Categorical)
			So(r.Names(), ShouldContain, Main)
			So(r.Names(), ShouldContain, SequentialMinus)
		})

		Convey("RAG statuses pair fills with readable fonts", func() {
			red, ok := r.RAG("Red")
			So(ok, ShouldBeTrue)
			So(red.Fill.Hex(), ShouldEqual, "#C00000")
			So(red.Font.Hex(), ShouldEqual, "#FFFFFF")

			_, ok = r.RAG("blue")
			So(ok, ShouldBeFalse)
		})

		Convey("Default is built once across goroutines", func() {
			var wg sync.WaitGroup
			got := make([]*Registry, 16)
			for i := range got {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					got[i] = Default()
				}()
			}
			wg.Wait()
			So(lo.Uniq(got), ShouldHaveLength, 1)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Loading overrides", t, func() {
		fs := filesystem.API()

		Convey("A user file adds palettes on top of the built-ins", func() {
			path := "/palettes/extra.yaml"
			So(fs.WriteFile(path, []byte(`
palettes:
  brand:
    colours: [dark_pink, "#00FF00"]
`), 0o644), ShouldBeNil)

			r, err := Load(path)
			So(err, ShouldBeNil)

			colours, err := r.Resolve("brand", Hex, 2)
			So(err, ShouldBeNil)
			So(hexes(colours), ShouldResemble, []string{"#801650", "#00FF00"})

			_, err = r.Resolve(Main, Hex, 6)
			So(err, ShouldBeNil)
		})

		Convey("An unknown colour reference is an invalid definition", func() {
			path := "/palettes/broken.yaml"
			So(fs.WriteFile(path, []byte(`
palettes:
  broken:
    colours: [not_a_colour]
`), 0o644), ShouldBeNil)

			_, err := Load(path)
			So(errors.Is(err, ErrInvalidDefinition), ShouldBeTrue)
		})

		Convey("A redefined palette replaces the built-in entry as a whole", func() {
			path := "/palettes/replace.yaml"
			So(fs.WriteFile(path, []byte(`
palettes:
  categorical:
    colours: ["#00FF00", "#0000FF", "#FF0000"]
  main:
    stops:
      - { position: 0, colour: black }
      - { position: 1, colour: white }
  sequential:
    colours: [dark_blue, orange]
`), 0o644), ShouldBeNil)

			r, err := Load(path)
			So(err, ShouldBeNil)

			colours, err := r.Resolve(Categorical, Hex, 3)
			So(err, ShouldBeNil)
			So(hexes(colours), ShouldResemble, []string{"#00FF00", "#0000FF", "#FF0000"})

			main, ok := r.Palette(Main)
			So(ok, ShouldBeTrue)
			So(main.Kind(), ShouldEqual, Gradient)

			sequential, ok := r.Palette(Sequential)
			So(ok, ShouldBeTrue)
			So(sequential.Kind(), ShouldEqual, Discrete)
			limit, _ := sequential.Max()
			So(limit, ShouldEqual, 2)
		})

		Convey("A palette setting more than one of alias, colours or stops is rejected", func() {
			path := "/palettes/ambiguous.yaml"
			So(fs.WriteFile(path, []byte(`
palettes:
  ambiguous:
    alias: main
    colours: [dark_blue]
`), 0o644), ShouldBeNil)

			_, err := Load(path)
			So(errors.Is(err, ErrInvalidDefinition), ShouldBeTrue)
		})

		Convey("Gradient stops must span the unit interval", func() {
			path := "/palettes/short.yaml"
			So(fs.WriteFile(path, []byte(`
palettes:
  short:
    stops:
      - { position: 0, colour: dark_blue }
      - { position: 0.5, colour: orange }
`), 0o644), ShouldBeNil)

			_, err := Load(path)
			So(errors.Is(err, ErrInvalidDefinition), ShouldBeTrue)
		})

		Convey("A missing file is reported", func() {
			_, err := Load("/palettes/missing.yaml")
			So(err, ShouldNotBeNil)
		})
	})
}
