package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	left, right, up, down             key.Binding
	panLeft, panRight, panUp, panDown key.Binding
	zoomIn, zoomOut, reset            key.Binding
	toggleX, toggleY                  key.Binding
	pick, box, confirm, cancel        key.Binding
	search, clearSearch, clearAll     key.Binding
	nextFocus, sort, order, qLimit    key.Binding
	rows, back                        key.Binding
	quit                              key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/j/k/l", "cursor")),
		right:       key.NewBinding(key.WithKeys("l", "right")),
		up:          key.NewBinding(key.WithKeys("k", "up")),
		down:        key.NewBinding(key.WithKeys("j", "down")),
		panLeft:     key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H/J/K/L", "pan")),
		panRight:    key.NewBinding(key.WithKeys("L", "shift+right")),
		panUp:       key.NewBinding(key.WithKeys("K", "shift+up")),
		panDown:     key.NewBinding(key.WithKeys("J", "shift+down")),
		zoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		zoomOut:     key.NewBinding(key.WithKeys("-", "_")),
		reset:       key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		toggleX:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x/y", "log scale")),
		toggleY:     key.NewBinding(key.WithKeys("y")),
		pick:        key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick")),
		box:         key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "box select")),
		confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply box")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		clearSearch: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear search")),
		clearAll:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
		nextFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "plot/table")),
		sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		order:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		qLimit:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "q filter")),
		rows:        key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "rows")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to plot")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) plotHelp() []key.Binding {
	return []key.Binding{k.left, k.panLeft, k.zoomIn, k.reset, k.toggleX, k.pick, k.box, k.cancel}
}

func (k keyMap) globalHelp() []key.Binding {
	return []key.Binding{k.search, k.clearSearch, k.clearAll, k.nextFocus, k.sort, k.order, k.qLimit, k.quit}
}

func (k keyMap) tableHelp() []key.Binding {
	return []key.Binding{k.rows, k.back}
}
