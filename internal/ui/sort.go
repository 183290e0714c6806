package ui

import (
	"sort"
	"strings"

	"enrichment-dash/internal/gene"
)

type sortColumn int

const (
	sortNone sortColumn = iota
	sortGene
	sortX
	sortY
	sortQ
	sortColumns
)

func (c sortColumn) next() sortColumn { return (c + 1) % sortColumns }

func (c sortColumn) String() string {
	switch c {
	case sortGene:
		return "gene"
	case sortX:
		return "sample 1"
	case sortY:
		return "sample 2"
	case sortQ:
		return "q value"
	default:
		return "dataset order"
	}
}

// sortRecords orders the visible rows for display. sortNone keeps dataset
// order; ties keep their relative order.
func sortRecords(rows []gene.Record, col sortColumn, desc bool) {
	if col == sortNone {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			a, b = b, a
		}
		switch col {
		case sortGene:
			return strings.ToLower(a.ID) < strings.ToLower(b.ID)
		case sortX:
			return a.X < b.X
		case sortY:
			return a.Y < b.Y
		default:
			return a.Q < b.Q
		}
	})
}

func (m Model) sortLabel() string {
	if m.tbl.sortCol == sortNone {
		return m.tbl.sortCol.String()
	}
	if m.tbl.desc {
		return m.tbl.sortCol.String() + " ↓"
	}
	return m.tbl.sortCol.String() + " ↑"
}

// qLimits are the Q value thresholds cycled by the column filter key.
var qLimits = []float64{0, 0.1, 0.05, 0.01}

// columnFilters returns the table's column filters; they narrow the rows
// shown after the view filter ran.
func (m Model) columnFilters() []gene.ColumnFilter {
	if m.tbl.qLimit == 0 {
		return nil
	}
	return []gene.ColumnFilter{{Column: gene.ColQ, Op: "<", Value: qLimits[m.tbl.qLimit]}}
}

func (m Model) columnLabel() string {
	fs := m.columnFilters()
	if len(fs) == 0 {
		return ""
	}
	return fs[0].String()
}
