package ui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/infra/logx"
	"enrichment-dash/internal/metrics"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tbl.table.SetWidth(m.width)
		m.clampCursor()
		return m, nil

	case SelectionChangedMsg, ViewportChangedMsg, QueryChangedMsg, ScaleChangedMsg:
		return m.dispatch(msg), nil
	}
	return m, nil
}

// dispatch applies a view event synchronously. Key handlers route through it
// so the filter runs before the next frame is drawn.
func (m Model) dispatch(msg tea.Msg) Model {
	switch msg := msg.(type) {
	case SelectionChangedMsg:
		m.onSelectionChanged(msg)
	case ViewportChangedMsg:
		m.onViewportChanged(msg)
	case QueryChangedMsg:
		m.onQueryChanged(msg)
	case ScaleChangedMsg:
		m.onScaleChanged(msg)
	}
	return m
}

func (m *Model) onSelectionChanged(msg SelectionChangedMsg) {
	var sel []string
	seen := make(map[string]bool, len(msg.IDs))
	for _, id := range msg.IDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sel = append(sel, id)
	}
	m.view.Selection = sel
	m.plot.anchor = nil
	m.refresh()
	if len(sel) == 0 {
		m.statusMsg = "selection cleared"
	} else {
		m.statusMsg = fmt.Sprintf("%d gene(s) selected", len(sel))
	}
}

func (m *Model) onViewportChanged(msg ViewportChangedMsg) {
	m.view.XRange = cloneRange(msg.X)
	m.view.YRange = cloneRange(msg.Y)
	m.refresh()
	if m.view.XRange == nil && m.view.YRange == nil {
		m.statusMsg = "view reset"
	}
}

func (m *Model) onQueryChanged(msg QueryChangedMsg) {
	m.view.Query = msg.Query
	m.search.query = msg.Query
	m.refresh()
}

func (m *Model) onScaleChanged(msg ScaleChangedMsg) {
	m.plot.xScale = msg.X
	m.plot.yScale = msg.Y
	m.refresh()
	m.statusMsg = fmt.Sprintf("scales x:%s y:%s", msg.X, msg.Y)
}

func cloneRange(r *gene.Range) *gene.Range {
	if r == nil {
		return nil
	}
	return r.Clone()
}

// refresh runs the filter for the current view and rebuilds the table.
func (m *Model) refresh() {
	m.visible = metrics.Visible(m.obs, metrics.OriginTUI, m.ds, m.view)
	rows := gene.ApplyColumns(gene.Collect(m.ds, m.visible), m.columnFilters())
	sortRecords(rows, m.tbl.sortCol, m.tbl.desc)
	m.tbl.rows = rows
	m.tbl.table.SetRows(tableRows(rows))
	m.tbl.table.GotoTop()

	m.search.suggestions = nil
	if m.view.Query != "" && m.visible.IsEmpty() {
		m.search.suggestions = suggest(m.view.Query, m.ds, m.filterCfg)
	}
	logx.Debugf("filter path=%s query=%q visible=%d/%d shown=%d", gene.PathOf(m.view), m.view.Query, m.visible.GetCardinality(), m.ds.Len(), len(rows))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.search.searching {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.search.searching = true
		m.search.searchInput.SetValue(m.search.query)
		m.search.searchInput.CursorEnd()
		return m, m.search.searchInput.Focus()
	case key.Matches(msg, m.keys.clearSearch):
		m.search.searchInput.SetValue("")
		return m.dispatch(QueryChangedMsg{}), nil
	case key.Matches(msg, m.keys.clearAll):
		m.search.searchInput.SetValue("")
		m = m.dispatch(SelectionChangedMsg{})
		m = m.dispatch(ViewportChangedMsg{})
		m = m.dispatch(QueryChangedMsg{})
		m.statusMsg = "view cleared"
		return m, nil
	case key.Matches(msg, m.keys.nextFocus):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.tbl.sortCol = m.tbl.sortCol.next()
		m.refresh()
		m.statusMsg = "sort: " + m.sortLabel()
		return m, nil
	case key.Matches(msg, m.keys.order):
		m.tbl.desc = !m.tbl.desc
		m.refresh()
		m.statusMsg = "sort: " + m.sortLabel()
		return m, nil
	case key.Matches(msg, m.keys.qLimit):
		m.tbl.qLimit = (m.tbl.qLimit + 1) % len(qLimits)
		m.refresh()
		if label := m.columnLabel(); label != "" {
			m.statusMsg = "column filter: " + label
		} else {
			m.statusMsg = "column filter off"
		}
		return m, nil
	}

	if m.focus == focusTable {
		return m.handleTableKey(msg)
	}
	return m.handlePlotKey(msg)
}

func (m *Model) toggleFocus() {
	if m.focus == focusTable {
		m.focus = focusPlot
		m.tbl.table.Blur()
		return
	}
	m.focus = focusTable
	m.plot.anchor = nil
	m.tbl.table.Focus()
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.toggleFocus()
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl.table, cmd = m.tbl.table.Update(msg)
	return m, cmd
}

// toggleSelection adds ids to the selection, or removes them when all of
// them are already selected.
func toggleSelection(sel, ids []string) []string {
	all := true
	for _, id := range ids {
		if !slices.Contains(sel, id) {
			all = false
			break
		}
	}
	out := slices.Clone(sel)
	if all {
		return slices.DeleteFunc(out, func(id string) bool { return slices.Contains(ids, id) })
	}
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func tableRows(rows []gene.Record) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.ID, formatValue(r.X), formatValue(r.Y), formatValue(r.Q)}
	}
	return out
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
