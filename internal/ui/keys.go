package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(hasQueue bool) string {
	s := "space play  ←/→ scrub  [/] phase  r rewind  x speed  o loop  t table  e export"
	if hasQueue {
		s += "  n/p recipe"
	}
	s += "  q quit"
	return s
}
