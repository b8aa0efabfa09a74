package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/coilsim/internal/recipe"
	"github.com/olivier-w/coilsim/internal/timeline"
)

// frameInterval is the animation frame period driving Store.Tick.
const frameInterval = time.Second / 30

type frameMsg time.Time
type cycleDoneMsg struct {
	store *timeline.Store
}
type recipeReloadedMsg struct {
	watcher *recipe.Watcher
	update  recipe.Update
}
type exportedMsg struct {
	path string
	err  error
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func waitCycle(s *timeline.Store) tea.Cmd {
	done := s.CycleDone()
	return func() tea.Msg {
		<-done
		return cycleDoneMsg{store: s}
	}
}

func waitRecipe(w *recipe.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return recipeReloadedMsg{watcher: w, update: u}
	}
}
