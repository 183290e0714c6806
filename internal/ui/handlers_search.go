package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchInput handles search input mode
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// empty query closes the search, otherwise it is cleared first
		if strings.TrimSpace(m.search.searchInput.Value()) == "" {
			m.search.searching = false
			m.search.searchInput.Blur()
			if m.view.Query != "" {
				return m.dispatch(QueryChangedMsg{}), nil
			}
			return m, nil
		}
		m.search.searchInput.SetValue("")
		return m.dispatch(QueryChangedMsg{}), nil
	case "enter":
		m.search.searching = false
		m.search.searchInput.Blur()
		q := strings.TrimSpace(m.search.searchInput.Value())
		if q != m.view.Query {
			return m.dispatch(QueryChangedMsg{Query: q}), nil
		}
		return m, nil
	case "tab":
		// accept the best suggestion
		if len(m.search.suggestions) == 0 {
			return m, nil
		}
		m.search.searchInput.SetValue(m.search.suggestions[0])
		m.search.searchInput.CursorEnd()
		return m.dispatch(QueryChangedMsg{Query: m.search.suggestions[0]}), nil
	default:
		// Live search: update query as user types
		var cmd tea.Cmd
		m.search.searchInput, cmd = m.search.searchInput.Update(msg)
		q := strings.TrimSpace(m.search.searchInput.Value())
		if q != m.view.Query {
			m = m.dispatch(QueryChangedMsg{Query: q})
		}
		return m, cmd
	}
}
