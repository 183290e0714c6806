package plot

import (
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.trai.ch/zerr"

	"enrichment-dash/internal/gene"
)

// ErrNothingToPlot is returned when no point can be drawn on the chosen axes.
var ErrNothingToPlot = zerr.New("nothing to plot")

// fitPad is the margin added around the drawn points when a range is nil.
const fitPad = 0.05

// PNGOptions configure RenderPNG. Nil ranges fit the drawn points with a
// small margin.
type PNGOptions struct {
	Width, Height  int
	XScale, YScale Scale
	X, Y           *gene.Range
	Title          string
}

func dotStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}

// RenderPNG writes a scatter chart of ds. Rows in visible are drawn on top in
// a highlight color; the rest stay grey.
func RenderPNG(w io.Writer, ds *gene.Dataset, visible *roaring.Bitmap, opts PNGOptions) error {
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	var bgX, bgY, fgX, fgY []float64
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		u, okx := opts.XScale.Forward(r.X)
		v, oky := opts.YScale.Forward(r.Y)
		if !okx || !oky {
			continue
		}
		if visible != nil && visible.Contains(uint32(i)) {
			fgX, fgY = append(fgX, u), append(fgY, v)
			continue
		}
		bgX, bgY = append(bgX, u), append(bgY, v)
	}

	series := []chart.Series{}
	if len(bgX) > 0 {
		series = append(series, chart.ContinuousSeries{Name: "Other", XValues: bgX, YValues: bgY, Style: dotStyle(chart.ColorAlternateGray, 3)})
	}
	if len(fgX) > 0 {
		series = append(series, chart.ContinuousSeries{Name: "Visible", XValues: fgX, YValues: fgY, Style: dotStyle(chart.ColorBlue, 4)})
	}
	if len(series) == 0 {
		return ErrNothingToPlot
	}

	title := opts.Title
	if title == "" {
		title = "Interactive Gene Enrichment Scatter Plot"
	}
	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: axisName("Sample 1 Enrichment", opts.XScale), Range: chartRange(opts.X, opts.XScale, bgX, fgX)},
		YAxis:      chart.YAxis{Name: axisName("Sample 2 Enrichment", opts.YScale), Range: chartRange(opts.Y, opts.YScale, bgY, fgY)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	if err := ch.Render(chart.PNG, w); err != nil {
		return zerr.Wrap(err, "render chart")
	}
	return nil
}

func axisName(name string, s Scale) string {
	if s == Log {
		return name + " (log10)"
	}
	return name
}

// chartRange maps r to axis space. Without a usable r it spans the given
// axis-space values, so a single point or a constant column still gets a
// non-empty axis.
func chartRange(r *gene.Range, s Scale, values ...[]float64) chart.Range {
	if r != nil && !r.Inverted() {
		if lo, hi := s.axisRange(*r); hi > lo {
			return &chart.ContinuousRange{Min: lo, Max: hi}
		}
	}
	fit := gene.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, vs := range values {
		for _, v := range vs {
			fit.Min, fit.Max = math.Min(fit.Min, v), math.Max(fit.Max, v)
		}
	}
	p := Pad(fit, fitPad)
	return &chart.ContinuousRange{Min: p.Min, Max: p.Max}
}
