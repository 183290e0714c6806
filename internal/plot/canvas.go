package plot

import (
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"enrichment-dash/internal/gene"
)

// Cell addresses one character of the plot area; Row 0 is the top.
type Cell struct {
	Col, Row int
}

// Box is a rectangle of cells spanned by two corners in any order.
type Box struct {
	A, B Cell
}

// Contains reports whether c lies inside the box, borders included.
func (b Box) Contains(c Cell) bool {
	c0, c1 := minmax(b.A.Col, b.B.Col)
	r0, r1 := minmax(b.A.Row, b.B.Row)
	return c.Col >= c0 && c.Col <= c1 && c.Row >= r0 && c.Row <= r1
}

func minmax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Options configure a Canvas. Width and Height are the plot area in cells.
type Options struct {
	Width, Height  int
	X, Y           gene.Range
	XScale, YScale Scale
	// Highlight marks visible rows; nil highlights everything.
	Highlight *roaring.Bitmap
	Cursor    *Cell
	Box       *Box
	// Marginals adds an x histogram below and a y histogram to the right.
	Marginals bool
}

const (
	labelWidth = 8
	minWidth   = 10
	minHeight  = 4
)

var (
	pointStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAB78")).Bold(true)
	boxStyle       = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	axisStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	marginalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8942E1"))
)

var bars = []rune(" ▁▂▃▄▅▆▇█")

// Canvas maps data coordinates onto a character grid.
type Canvas struct {
	opts     Options
	xlo, xhi float64
	ylo, yhi float64
}

// NewCanvas builds a canvas; sizes below the minimum are raised to it.
func NewCanvas(opts Options) *Canvas {
	if opts.Width < minWidth {
		opts.Width = minWidth
	}
	if opts.Height < minHeight {
		opts.Height = minHeight
	}
	c := &Canvas{opts: opts}
	c.xlo, c.xhi = opts.XScale.axisRange(opts.X)
	c.ylo, c.yhi = opts.YScale.axisRange(opts.Y)
	return c
}

// Width returns the plot area width in cells.
func (c *Canvas) Width() int { return c.opts.Width }

// Height returns the plot area height in cells.
func (c *Canvas) Height() int { return c.opts.Height }

func bucket(u, lo, hi float64, n int) (int, bool) {
	if !(hi > lo) || u < lo || u > hi {
		return 0, false
	}
	i := int(math.Floor((u - lo) / (hi - lo) * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i, true
}

// CellOf returns the cell a data point falls in.
func (c *Canvas) CellOf(x, y float64) (Cell, bool) {
	u, ok := c.opts.XScale.Forward(x)
	if !ok {
		return Cell{}, false
	}
	v, ok := c.opts.YScale.Forward(y)
	if !ok {
		return Cell{}, false
	}
	col, ok := bucket(u, c.xlo, c.xhi, c.opts.Width)
	if !ok {
		return Cell{}, false
	}
	row, ok := bucket(v, c.ylo, c.yhi, c.opts.Height)
	if !ok {
		return Cell{}, false
	}
	return Cell{Col: col, Row: c.opts.Height - 1 - row}, true
}

// DataAt returns the data coordinates of the center of a cell.
func (c *Canvas) DataAt(cell Cell) (x, y float64) {
	du := (c.xhi - c.xlo) / float64(c.opts.Width)
	dv := (c.yhi - c.ylo) / float64(c.opts.Height)
	u := c.xlo + (float64(cell.Col)+0.5)*du
	v := c.ylo + (float64(c.opts.Height-1-cell.Row)+0.5)*dv
	return c.opts.XScale.Inverse(u), c.opts.YScale.Inverse(v)
}

// PointsIn returns the ids of records drawn inside the box, in dataset order.
func (c *Canvas) PointsIn(ds *gene.Dataset, b Box) []string {
	var out []string
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if cell, ok := c.CellOf(r.X, r.Y); ok && b.Contains(cell) {
			out = append(out, r.ID)
		}
	}
	return out
}

// Render draws the dataset with axes and, if enabled, marginal histograms.
func (c *Canvas) Render(ds *gene.Dataset) string {
	w, h := c.opts.Width, c.opts.Height
	counts := make([][]int, h)
	lit := make([][]bool, h)
	for r := range counts {
		counts[r] = make([]int, w)
		lit[r] = make([]bool, w)
	}
	colHist := make([]int, w)
	rowHist := make([]int, h)
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		cell, ok := c.CellOf(rec.X, rec.Y)
		if !ok {
			continue
		}
		counts[cell.Row][cell.Col]++
		colHist[cell.Col]++
		rowHist[cell.Row]++
		if c.opts.Highlight == nil || c.opts.Highlight.Contains(uint32(i)) {
			lit[cell.Row][cell.Col] = true
		}
	}

	_, yTop := c.DataAt(Cell{Row: 0})
	_, yMid := c.DataAt(Cell{Row: h / 2})
	_, yBot := c.DataAt(Cell{Row: h - 1})
	yLabels := map[int]string{0: tick(yTop), h / 2: tick(yMid), h - 1: tick(yBot)}
	rowMax := maxOf(rowHist)

	var b strings.Builder
	for r := 0; r < h; r++ {
		b.WriteString(axisStyle.Render(runewidth.FillLeft(runewidth.Truncate(yLabels[r], labelWidth-1, ""), labelWidth-1) + "│"))
		for col := 0; col < w; col++ {
			b.WriteString(c.renderCell(Cell{Col: col, Row: r}, counts[r][col], lit[r][col]))
		}
		if c.opts.Marginals {
			b.WriteString(" " + marginalStyle.Render(string(bar(rowHist[r], rowMax))))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelWidth-1) + "└" + strings.Repeat("─", w)))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelWidth) + c.xLabels()))
	if c.opts.Marginals {
		colMax := maxOf(colHist)
		hist := make([]rune, w)
		for i, n := range colHist {
			hist[i] = bar(n, colMax)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", labelWidth) + marginalStyle.Render(string(hist)))
	}
	return b.String()
}

func (c *Canvas) renderCell(cell Cell, n int, lit bool) string {
	if c.opts.Cursor != nil && *c.opts.Cursor == cell {
		return cursorStyle.Render("+")
	}
	var s string
	switch {
	case n == 0:
		s = " "
	case lit && n > 1:
		s = highlightStyle.Render("●")
	case lit:
		s = highlightStyle.Render("•")
	default:
		s = pointStyle.Render("·")
	}
	if c.opts.Box != nil && c.opts.Box.Contains(cell) {
		return boxStyle.Render(s)
	}
	return s
}

func (c *Canvas) xLabels() string {
	w := c.opts.Width
	left, _ := c.DataAt(Cell{Col: 0})
	mid, _ := c.DataAt(Cell{Col: w / 2})
	right, _ := c.DataAt(Cell{Col: w - 1})
	line := []rune(strings.Repeat(" ", w))
	place := func(at int, s string) {
		rs := []rune(s)
		if at+len(rs) > w {
			at = w - len(rs)
		}
		if at < 0 {
			at = 0
		}
		for i, r := range rs {
			if at+i < w {
				line[at+i] = r
			}
		}
	}
	place(0, tick(left))
	place(w/2-len(tick(mid))/2, tick(mid))
	place(w, tick(right))
	return string(line)
}

func bar(n, top int) rune {
	if n == 0 || top == 0 {
		return bars[0]
	}
	i := int(math.Ceil(float64(n) / float64(top) * float64(len(bars)-1)))
	return bars[i]
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func tick(v float64) string {
	a := math.Abs(v)
	switch {
	case a != 0 && (a < 0.01 || a >= 1e5):
		return strconv.FormatFloat(v, 'e', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
