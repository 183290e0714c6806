package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"enrichment-dash/internal/plot"
)

func (m Model) handlePlotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.left):
		m.plot.cursor.Col--
	case key.Matches(msg, k.right):
		m.plot.cursor.Col++
	case key.Matches(msg, k.up):
		m.plot.cursor.Row--
	case key.Matches(msg, k.down):
		m.plot.cursor.Row++

	case key.Matches(msg, k.panLeft):
		return m.pan(-panStep, 0), nil
	case key.Matches(msg, k.panRight):
		return m.pan(panStep, 0), nil
	case key.Matches(msg, k.panUp):
		return m.pan(0, panStep), nil
	case key.Matches(msg, k.panDown):
		return m.pan(0, -panStep), nil

	case key.Matches(msg, k.zoomIn):
		return m.zoom(zoomInStep), nil
	case key.Matches(msg, k.zoomOut):
		return m.zoom(zoomOutStep), nil
	case key.Matches(msg, k.reset):
		m.plot.cursor = plot.Cell{Col: m.plotCols() / 2, Row: m.plotRows() / 2}
		return m.dispatch(ViewportChangedMsg{}), nil

	case key.Matches(msg, k.toggleX):
		return m.dispatch(ScaleChangedMsg{X: m.plot.xScale.Toggle(), Y: m.plot.yScale}), nil
	case key.Matches(msg, k.toggleY):
		return m.dispatch(ScaleChangedMsg{X: m.plot.xScale, Y: m.plot.yScale.Toggle()}), nil

	case key.Matches(msg, k.pick):
		ids := m.canvas().PointsIn(m.ds, plot.Box{A: m.plot.cursor, B: m.plot.cursor})
		if len(ids) == 0 {
			m.statusMsg = "no gene under cursor"
			return m, nil
		}
		return m.dispatch(SelectionChangedMsg{IDs: toggleSelection(m.view.Selection, ids)}), nil
	case key.Matches(msg, k.box):
		anchor := m.plot.cursor
		m.plot.anchor = &anchor
		m.statusMsg = "box: move the cursor, enter to select"
	case key.Matches(msg, k.confirm):
		if m.plot.anchor == nil {
			return m, nil
		}
		ids := m.canvas().PointsIn(m.ds, plot.Box{A: *m.plot.anchor, B: m.plot.cursor})
		return m.dispatch(SelectionChangedMsg{IDs: ids}), nil
	case key.Matches(msg, k.cancel):
		if m.plot.anchor != nil {
			m.plot.anchor = nil
			m.statusMsg = "box cancelled"
			return m, nil
		}
		if len(m.view.Selection) > 0 {
			return m.dispatch(SelectionChangedMsg{}), nil
		}
	}
	m.clampCursor()
	return m, nil
}

// pan shifts the displayed ranges by a fraction of their span. An axis that
// does not move keeps its current constraint.
func (m Model) pan(dx, dy float64) Model {
	x, y := m.displayRanges()
	next := ViewportChangedMsg{X: m.view.XRange, Y: m.view.YRange}
	if dx != 0 {
		r := plot.PanRange(m.plot.xScale, x, dx)
		next.X = &r
	}
	if dy != 0 {
		r := plot.PanRange(m.plot.yScale, y, dy)
		next.Y = &r
	}
	return m.dispatch(next)
}

func (m Model) zoom(factor float64) Model {
	x, y := m.displayRanges()
	zx := plot.ZoomRange(m.plot.xScale, x, factor)
	zy := plot.ZoomRange(m.plot.yScale, y, factor)
	return m.dispatch(ViewportChangedMsg{X: &zx, Y: &zy})
}
