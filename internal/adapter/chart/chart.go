// Package chart renders dashboard series as PNG images with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart names accepted by Render.
const (
	ByYear    = "by-year"
	ByMonth   = "by-month"
	TopAreas  = "top-areas"
	TopShares = "top-shares"
)

// Names lists every renderable chart.
var Names = []string{ByYear, ByMonth, TopAreas, TopShares}

var (
	barColor  = color.RGBA{R: 203, G: 24, B: 29, A: 255}
	areaColor = color.RGBA{R: 251, G: 106, B: 74, A: 160}
)

const (
	width  = 8 * vg.Inch
	height = 4 * vg.Inch
)

// Render writes the named chart of d to w as PNG.
func Render(w io.Writer, name string, d domain.Dashboard) error {
	var (
		p   *plot.Plot
		err error
	)
	switch name {
	case ByYear:
		p, err = yearChart(d.ByYear)
	case ByMonth:
		p, err = monthChart(d.ByMonth)
	case TopAreas:
		p, err = topAreasChart(d.TopAreas)
	case TopShares:
		p = sharesChart(d.AreaShares)
	default:
		return fmt.Errorf("unknown chart %q", name)
	}
	if err != nil {
		return fmt.Errorf("build %s chart: %w", name, err)
	}
	return writePNG(w, p)
}

func writePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func newPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = domain.LabelRecords
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

// bars adds a bar chart with one nominal label per value. Empty input leaves
// the plot with only its axes.
func bars(p *plot.Plot, values plotter.Values, labels []string) error {
	if len(values) == 0 {
		return nil
	}
	b, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	b.Color = barColor
	b.LineStyle.Width = vg.Length(0)
	p.Add(b)
	p.NominalX(labels...)
	return nil
}

func yearChart(s domain.Series) (*plot.Plot, error) {
	p := newPlot(domain.TitleByYear, domain.LabelYear)
	values := make(plotter.Values, len(s))
	labels := make([]string, len(s))
	for i, b := range s {
		values[i] = float64(b.Count)
		labels[i] = strconv.Itoa(b.Key)
	}
	return p, bars(p, values, labels)
}

// monthChart draws a filled area over the months present in s.
func monthChart(s domain.Series) (*plot.Plot, error) {
	p := newPlot(domain.TitleByMonth, domain.LabelMonth)
	ticks := make([]plot.Tick, 12)
	for m := 1; m <= 12; m++ {
		ticks[m-1] = plot.Tick{Value: float64(m), Label: strconv.Itoa(m)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min, p.X.Max = 1, 12

	if len(s) == 0 {
		return p, nil
	}
	pts := make(plotter.XYs, len(s))
	for i, b := range s {
		pts[i] = plotter.XY{X: float64(b.Key), Y: float64(b.Count)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = barColor
	line.Width = vg.Points(2)
	line.FillColor = areaColor
	p.Add(line)
	return p, nil
}

func topAreasChart(top []domain.AreaCount) (*plot.Plot, error) {
	p := newPlot(domain.TitleByArea, domain.LabelArea)
	values := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, c := range top {
		values[i] = float64(c.Count)
		labels[i] = areaLabel(c)
	}
	if err := bars(p, values, labels); err != nil {
		return nil, err
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

// areaLabel prefers the ASP name, shortened so rotated ticks stay legible.
func areaLabel(c domain.AreaCount) string {
	label := c.Name
	if label == "" {
		label = c.Code
	}
	r := []rune(label)
	if len(r) > 28 {
		return string(r[:27]) + "…"
	}
	return label
}
