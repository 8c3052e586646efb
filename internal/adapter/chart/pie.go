package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// slicePalette cycles when there are more areas than colors.
var slicePalette = []color.Color{
	color.RGBA{R: 103, G: 0, B: 13, A: 255},
	color.RGBA{R: 165, G: 15, B: 21, A: 255},
	color.RGBA{R: 203, G: 24, B: 29, A: 255},
	color.RGBA{R: 239, G: 59, B: 44, A: 255},
	color.RGBA{R: 251, G: 106, B: 74, A: 255},
	color.RGBA{R: 252, G: 146, B: 114, A: 255},
	color.RGBA{R: 252, G: 187, B: 161, A: 255},
	color.RGBA{R: 254, G: 224, B: 210, A: 255},
	color.RGBA{R: 8, G: 48, B: 107, A: 255},
	color.RGBA{R: 33, G: 113, B: 181, A: 255},
	color.RGBA{R: 107, G: 174, B: 214, A: 255},
	color.RGBA{R: 198, G: 219, B: 239, A: 255},
	color.RGBA{R: 0, G: 109, B: 44, A: 255},
	color.RGBA{R: 65, G: 171, B: 93, A: 255},
	color.RGBA{R: 161, G: 217, B: 155, A: 255},
}

// slice is one wedge of the share pie. Angles are radians, counterclockwise
// from the positive x axis.
type slice struct {
	label string
	start float64
	sweep float64
	color color.Color
}

// pieSlices lays shares out clockwise from twelve o'clock, largest first as
// ranked. Shares with no records get no wedge.
func pieSlices(shares []domain.AreaShare) []slice {
	total := 0
	for _, s := range shares {
		total += s.Count
	}
	if total == 0 {
		return nil
	}

	out := make([]slice, 0, len(shares))
	angle := math.Pi / 2
	for i, s := range shares {
		if s.Count == 0 {
			continue
		}
		sweep := 2 * math.Pi * float64(s.Count) / float64(total)
		angle -= sweep
		out = append(out, slice{
			label: fmt.Sprintf("%s (%.1f %%)", areaLabel(domain.AreaCount{Code: s.Code, Name: s.Name}), s.Percent),
			start: angle,
			sweep: sweep,
			color: slicePalette[i%len(slicePalette)],
		})
	}
	return out
}

// pie implements plot.Plotter. It ignores the data coordinate system and
// fills the right side of the canvas.
type pie struct {
	slices []slice
}

func (pc pie) Plot(c draw.Canvas, _ *plot.Plot) {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	center := vg.Point{X: c.Min.X + w*0.68, Y: c.Min.Y + h/2}
	r := vg.Length(math.Min(float64(w)*0.3, float64(h)*0.45))

	for _, s := range pc.slices {
		var path vg.Path
		path.Move(center)
		path.Line(vg.Point{
			X: center.X + r*vg.Length(math.Cos(s.start)),
			Y: center.Y + r*vg.Length(math.Sin(s.start)),
		})
		path.Arc(center, r, s.start, s.sweep)
		path.Close()
		c.SetColor(s.color)
		c.Fill(path)
	}
}

// swatch is the legend thumbnail for one wedge.
type swatch struct{ color color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	})
}

func sharesChart(shares []domain.AreaShare) *plot.Plot {
	p := plot.New()
	p.Title.Text = domain.TitleShareByArea
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()

	slices := pieSlices(shares)
	p.Add(pie{slices: slices})
	p.Legend.Left = true
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	for _, s := range slices {
		p.Legend.Add(s.label, swatch{color: s.color})
	}
	return p
}
