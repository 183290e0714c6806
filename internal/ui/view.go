package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/plot"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	c := m.canvas()
	parts := []string{m.renderHeader(), c.Render(m.ds)}
	if s := m.renderHover(c); s != "" {
		parts = append(parts, s)
	}
	if s := m.renderSearch(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, m.renderTable(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gene Enrichment"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("x:%s  y:%s", m.plot.xScale, m.plot.yScale)))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(m.stateLine())
	return b.String()
}

// stateLine summarizes which stage drives the visible set.
func (m Model) stateLine() string {
	visible := int(m.visible.GetCardinality())
	var b strings.Builder
	switch gene.PathOf(m.view) {
	case gene.PathSelection:
		fmt.Fprintf(&b, "%s %d selected", symbolSelection, len(m.view.Selection))
	default:
		fmt.Fprintf(&b, "%s %s × %s", symbolViewport, describeRange(m.view.XRange), describeRange(m.view.YRange))
	}
	if m.view.Query != "" {
		fmt.Fprintf(&b, "  query %q", m.view.Query)
	}
	fmt.Fprintf(&b, "  %d/%d visible", visible, m.ds.Len())
	if label := m.columnLabel(); label != "" {
		fmt.Fprintf(&b, "  %s: %d shown", label, len(m.tbl.rows))
	}
	if m.plot.anchor != nil {
		b.WriteString("  " + warnStyle.Render("box"))
	}
	return b.String()
}

// renderHover describes the genes in the cursor cell.
func (m Model) renderHover(c *plot.Canvas) string {
	if m.focus != focusPlot {
		return ""
	}
	ids := c.PointsIn(m.ds, plot.Box{A: m.plot.cursor, B: m.plot.cursor})
	if len(ids) == 0 {
		x, y := c.DataAt(m.plot.cursor)
		return subtleStyle.Render(fmt.Sprintf("%s x %.3g  y %.3g", symbolCursor, x, y))
	}
	parts := make([]string, 0, maxHover+1)
	for i, id := range ids {
		if i == maxHover {
			parts = append(parts, fmt.Sprintf("+%d more", len(ids)-maxHover))
			break
		}
		row, _ := m.ds.Index(id)
		r := m.ds.At(row)
		parts = append(parts, fmt.Sprintf("%s x %s y %s q %s", hoverStyle.Render(r.ID),
			formatValue(r.X), formatValue(r.Y), formatValue(r.Q)))
	}
	return symbolCursor + " " + strings.Join(parts, "  ")
}

func describeRange(r *gene.Range) string {
	if r == nil {
		return "all"
	}
	return fmt.Sprintf("[%.3g, %.3g]", r.Min, r.Max)
}

func (m Model) renderSearch() string {
	if !m.search.searching && m.search.query == "" {
		return ""
	}
	var b strings.Builder
	if m.search.searching {
		b.WriteString(m.search.searchInput.View())
	} else {
		b.WriteString(subtleStyle.Render("/ " + m.search.query))
	}
	if len(m.search.suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("no match, did you mean: "))
		b.WriteString(suggestionStyle.Render(strings.Join(m.search.suggestions, ", ")))
	}
	return b.String()
}

func (m Model) renderTable() string {
	title := listHeaderStyle.Render("Visible Genes")
	if m.focus == focusTable {
		title = focusStyle.Render("▸ ") + title
	}
	detail := fmt.Sprintf("%d, sort: %s", len(m.tbl.rows), m.sortLabel())
	if label := m.columnLabel(); label != "" {
		detail += ", " + label
	}
	title += subtleStyle.Render("  (" + detail + ")")
	if len(m.tbl.rows) == 0 {
		if !m.visible.IsEmpty() {
			return title + "\n" + subtleStyle.Render("no visible gene passes "+m.columnLabel())
		}
		return title + "\n" + subtleStyle.Render("no genes match the current view")
	}
	return title + "\n" + m.tbl.table.View()
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	if m.recorder != nil {
		s := m.recorder.Snapshot()
		stats := fmt.Sprintf("filter calls %d, mean %s", s.TotalCalls, s.MeanLatency())
		if status == "" {
			status = stats
		} else {
			status += " | " + stats
		}
	}
	bindings := m.keys.plotHelp()
	if m.focus == focusTable {
		bindings = m.keys.tableHelp()
	}
	return renderFooter(status,
		m.help.ShortHelpView(bindings),
		m.help.ShortHelpView(m.keys.globalHelp()),
	)
}
