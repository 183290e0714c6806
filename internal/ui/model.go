package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/plot"
)

const (
	defaultWidth    = 100
	defaultHeight   = 40
	defaultPageSize = 20

	// chrome is the number of lines around plot and table
	chrome      = 13
	minPlotRows = 8
	minPlotCols = 20

	plotPad     = 0.05
	zoomInStep  = 0.8
	zoomOutStep = 1.25
	panStep     = 0.1

	// maxHover caps the genes listed in the cursor readout
	maxHover = 3
)

// New builds the dashboard for ds and runs the first filter pass.
func New(ds *gene.Dataset, opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.XScale == "" {
		opts.XScale = plot.Linear
	}
	if opts.YScale == "" {
		opts.YScale = plot.Linear
	}

	m := Model{
		ds:       ds,
		obs:      opts.Observer,
		recorder: opts.Recorder,
		keys:     defaultKeys(),
		help:     help.New(),
		pageSize: opts.PageSize,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	// Observer may be left nil when only a Recorder is given
	if m.obs == nil && m.recorder != nil {
		m.obs = m.recorder
	}
	m.plot.xScale = opts.XScale
	m.plot.yScale = opts.YScale

	si := textinput.New()
	si.Placeholder = "gene name…"
	si.Prompt = "/ "
	si.CharLimit = 64
	si.Width = 30
	m.search.searchInput = si

	m.filterCfg = FilterConfig{
		MinCoverage: 0.6,
		MaxSpread:   40,
		MaxResults:  maxSuggestions,
	}

	m.tbl.table = table.New(
		table.WithColumns(tableColumns()),
		table.WithHeight(m.pageSize+1),
		table.WithFocused(false),
	)
	m.tbl.table.SetStyles(tableStyles())

	m.plot.cursor = plot.Cell{Col: m.plotCols() / 2, Row: m.plotRows() / 2}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// ViewState returns the current view state.
func (m Model) ViewState() gene.ViewState { return m.view }

// Rows returns the visible records that pass the column filter, in table
// order.
func (m Model) Rows() []gene.Record { return m.tbl.rows }

// Suggestions returns the fuzzy hints shown for a query without matches.
func (m Model) Suggestions() []string { return m.search.suggestions }

func (m Model) plotCols() int {
	return max(m.width-12, minPlotCols)
}

func (m Model) plotRows() int {
	return max(m.height-m.pageSize-chrome, minPlotRows)
}

// displayRanges returns the axis ranges drawn on the chart. Unconstrained
// axes show the padded dataset bounds.
func (m Model) displayRanges() (x, y gene.Range) {
	bx, by := m.ds.Bounds()
	x, y = plot.Pad(bx, plotPad), plot.Pad(by, plotPad)
	if m.view.XRange != nil {
		x = *m.view.XRange
	}
	if m.view.YRange != nil {
		y = *m.view.YRange
	}
	return x, y
}

func (m Model) canvas() *plot.Canvas {
	x, y := m.displayRanges()
	opts := plot.Options{
		Width:     m.plotCols(),
		Height:    m.plotRows(),
		X:         x,
		Y:         y,
		XScale:    m.plot.xScale,
		YScale:    m.plot.yScale,
		Highlight: m.visible,
		Marginals: true,
	}
	if m.focus == focusPlot {
		cur := m.plot.cursor
		opts.Cursor = &cur
	}
	if m.plot.anchor != nil {
		opts.Box = &plot.Box{A: *m.plot.anchor, B: m.plot.cursor}
	}
	return plot.NewCanvas(opts)
}

func (m *Model) clampCursor() {
	m.plot.cursor.Col = min(max(m.plot.cursor.Col, 0), m.plotCols()-1)
	m.plot.cursor.Row = min(max(m.plot.cursor.Row, 0), m.plotRows()-1)
}
