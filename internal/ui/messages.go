package ui

import (
	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/plot"
)

// SelectionChangedMsg replaces the chart selection. Empty IDs clear it.
type SelectionChangedMsg struct {
	IDs []string
}

// ViewportChangedMsg sets the visible axis ranges. nil leaves an axis
// unconstrained.
type ViewportChangedMsg struct {
	X, Y *gene.Range
}

// QueryChangedMsg sets the search query.
type QueryChangedMsg struct {
	Query string
}

// ScaleChangedMsg switches the axis scales of the chart.
type ScaleChangedMsg struct {
	X, Y plot.Scale
}
