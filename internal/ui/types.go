package ui

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/metrics"
	"enrichment-dash/internal/plot"
)

// --- Model / State ---
type focus int

const (
	focusPlot focus = iota
	focusSearch
	focusTable
)

type PlotState struct {
	cursor plot.Cell
	// anchor is the first corner of a box selection in progress
	anchor *plot.Cell
	xScale plot.Scale
	yScale plot.Scale
}

type SearchState struct {
	searching   bool
	searchInput textinput.Model
	query       string   // aktueller Suchstring
	suggestions []string // fuzzy hints when the query matches nothing
}

type TableState struct {
	table   table.Model
	sortCol sortColumn
	desc    bool
	qLimit  int           // index into qLimits; 0 shows every visible row
	rows    []gene.Record // visible rows passing the column filter, in table order
}

// Options configure a new dashboard.
type Options struct {
	PageSize int
	XScale   plot.Scale
	YScale   plot.Scale
	Observer metrics.Observer
	// Recorder, if set, feeds the status line with filter counters.
	Recorder *metrics.Recorder
}

type Model struct {
	ds       *gene.Dataset
	obs      metrics.Observer
	recorder *metrics.Recorder

	// current view and its filter result
	view    gene.ViewState
	visible *roaring.Bitmap

	plot   PlotState
	search SearchState
	tbl    TableState

	focus         focus
	keys          keyMap
	help          help.Model
	filterCfg     FilterConfig
	pageSize      int
	width, height int
	statusMsg     string
	quitting      bool
}
