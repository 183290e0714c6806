package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	chart "github.com/wcharczuk/go-chart/v2"

	"enrichment-dash/internal/gene"
)

func testDataset(t *testing.T) *gene.Dataset {
	t.Helper()
	ds, err := gene.NewDataset([]gene.Record{
		{ID: "GeneA", X: 1, Y: 1},
		{ID: "GeneB", X: 5, Y: 5},
		{ID: "GeneC", X: 9, Y: 9},
		{ID: "GeneD", X: -1, Y: 3},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return ds
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in      string
		want    Scale
		wantErr bool
	}{
		{"", Linear, false},
		{"linear", Linear, false},
		{" LOG ", Log, false},
		{"sqrt", Linear, true},
	}
	for _, tt := range tests {
		got, err := ParseScale(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseScale(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseScale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if Linear.Toggle() != Log || Log.Toggle() != Linear {
		t.Fatal("toggle mismatch")
	}
}

func TestLogForward(t *testing.T) {
	if _, ok := Log.Forward(0); ok {
		t.Fatal("log of zero must not be plottable")
	}
	if _, ok := Log.Forward(-3); ok {
		t.Fatal("log of negative must not be plottable")
	}
	u, ok := Log.Forward(100)
	if !ok || u != 2 {
		t.Fatalf("Forward(100) = %v, %v", u, ok)
	}
	if v := Log.Inverse(2); math.Abs(v-100) > 1e-9 {
		t.Fatalf("Inverse(2) = %v", v)
	}
	if _, ok := Linear.Forward(math.NaN()); ok {
		t.Fatal("NaN must not be plottable")
	}
}

func TestCanvasCellMapping(t *testing.T) {
	c := NewCanvas(Options{Width: 10, Height: 10, X: gene.Range{Min: 0, Max: 10}, Y: gene.Range{Min: 0, Max: 10}})

	cell, ok := c.CellOf(0, 0)
	if !ok || cell != (Cell{Col: 0, Row: 9}) {
		t.Fatalf("CellOf(0,0) = %+v, %v", cell, ok)
	}
	cell, ok = c.CellOf(10, 10)
	if !ok || cell != (Cell{Col: 9, Row: 0}) {
		t.Fatalf("CellOf(10,10) = %+v, %v", cell, ok)
	}
	if _, ok := c.CellOf(11, 5); ok {
		t.Fatal("point outside the viewport must not map to a cell")
	}
	x, y := c.DataAt(Cell{Col: 0, Row: 9})
	if x != 0.5 || y != 0.5 {
		t.Fatalf("DataAt = %v,%v", x, y)
	}
}

func TestCanvasPointsInBox(t *testing.T) {
	ds := testDataset(t)
	c := NewCanvas(Options{Width: 10, Height: 10, X: gene.Range{Min: 0, Max: 10}, Y: gene.Range{Min: 0, Max: 10}})

	got := c.PointsIn(ds, Box{A: Cell{Col: 6, Row: 4}, B: Cell{Col: 0, Row: 9}})
	if strings.Join(got, ",") != "GeneA,GeneB" {
		t.Fatalf("PointsIn = %v", got)
	}
	if got := c.PointsIn(ds, Box{A: Cell{Col: 3, Row: 3}, B: Cell{Col: 3, Row: 3}}); len(got) != 0 {
		t.Fatalf("empty box returned %v", got)
	}
}

func TestCanvasLogSkipsNonPositive(t *testing.T) {
	ds := testDataset(t)
	c := NewCanvas(Options{Width: 10, Height: 10, X: gene.Range{Min: -2, Max: 10}, Y: gene.Range{Min: 0, Max: 10}, XScale: Log})
	got := c.PointsIn(ds, Box{A: Cell{Col: 0, Row: 0}, B: Cell{Col: 9, Row: 9}})
	for _, id := range got {
		if id == "GeneD" {
			t.Fatal("negative x must not be drawn on a log axis")
		}
	}
	if len(got) != 3 {
		t.Fatalf("want 3 points on log axis, got %v", got)
	}
}

func TestCanvasRenderShape(t *testing.T) {
	ds := testDataset(t)
	hl := roaring.New()
	hl.Add(1)
	cursor := Cell{Col: 2, Row: 2}
	c := NewCanvas(Options{
		Width: 20, Height: 8,
		X: gene.Range{Min: -2, Max: 10}, Y: gene.Range{Min: 0, Max: 10},
		Highlight: hl, Cursor: &cursor, Marginals: true,
	})
	out := c.Render(ds)
	lines := strings.Split(out, "\n")
	// rows + axis + labels + x histogram
	if len(lines) != 8+3 {
		t.Fatalf("want %d lines, got %d:\n%s", 8+3, len(lines), out)
	}
	if !strings.Contains(out, "•") {
		t.Fatalf("highlighted point missing:\n%s", out)
	}
	if !strings.Contains(out, "+") {
		t.Fatalf("cursor missing:\n%s", out)
	}
}

func TestPad(t *testing.T) {
	if got := Pad(gene.Range{Min: 0, Max: 10}, 0.1); got != (gene.Range{Min: -1, Max: 11}) {
		t.Fatalf("Pad = %+v", got)
	}
	if got := Pad(gene.Range{Min: 3, Max: 3}, 0.1); got != (gene.Range{Min: 2, Max: 4}) {
		t.Fatalf("Pad zero width = %+v", got)
	}
	if got := Pad(gene.Range{Min: math.Inf(1), Max: math.Inf(-1)}, 0.1); got != (gene.Range{Min: 0, Max: 1}) {
		t.Fatalf("Pad empty = %+v", got)
	}
}

func TestRenderPNG(t *testing.T) {
	ds := gene.Simulate(100, 1)
	visible := gene.Visible(ds, gene.ViewState{Query: "1"})
	var buf bytes.Buffer
	if err := RenderPNG(&buf, ds, visible, PNGOptions{Width: 400, Height: 300, XScale: Log}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}

	empty, _ := gene.NewDataset(nil)
	if err := RenderPNG(&buf, empty, nil, PNGOptions{}); err != ErrNothingToPlot {
		t.Fatalf("want ErrNothingToPlot, got %v", err)
	}
}

func TestRenderPNGDegenerateExtent(t *testing.T) {
	tests := []struct {
		name    string
		records []gene.Record
		opts    PNGOptions
	}{
		{name: "single point", records: []gene.Record{{ID: "GeneA", X: 2, Y: 3, Q: 0.01}}},
		{name: "shared x", records: []gene.Record{{ID: "GeneA", X: 2, Y: 1}, {ID: "GeneB", X: 2, Y: 4}}},
		{name: "shared y log", records: []gene.Record{{ID: "GeneA", X: 1, Y: 5}, {ID: "GeneB", X: 10, Y: 5}}, opts: PNGOptions{XScale: Log, YScale: Log}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := gene.NewDataset(tt.records)
			if err != nil {
				t.Fatalf("NewDataset: %v", err)
			}
			var buf bytes.Buffer
			if err := RenderPNG(&buf, ds, gene.Visible(ds, gene.ViewState{}), tt.opts); err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestChartRangeFitsValues(t *testing.T) {
	got, ok := chartRange(nil, Linear, []float64{3}, []float64{3}).(*chart.ContinuousRange)
	if !ok || got.Min != 2 || got.Max != 4 {
		t.Fatalf("single value range = %+v", got)
	}
	got, ok = chartRange(&gene.Range{Min: 1, Max: 100}, Log).(*chart.ContinuousRange)
	if !ok || got.Min != 0 || got.Max != 2 {
		t.Fatalf("explicit log range = %+v", got)
	}
}

func TestZoomAndPanRange(t *testing.T) {
	r := gene.Range{Min: 0, Max: 10}
	if got := ZoomRange(Linear, r, 0.5); got != (gene.Range{Min: 2.5, Max: 7.5}) {
		t.Fatalf("linear zoom = %+v", got)
	}
	if got := PanRange(Linear, r, -0.5); got != (gene.Range{Min: -5, Max: 5}) {
		t.Fatalf("linear pan = %+v", got)
	}
	got := PanRange(Log, gene.Range{Min: 1, Max: 100}, 0.5)
	if math.Abs(got.Min-10) > 1e-9 || math.Abs(got.Max-1000) > 1e-9 {
		t.Fatalf("log pan = %+v", got)
	}
}
