package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coilsim/internal/recipe"
)

// BrowserResult holds the outcome of the recipe picker. An empty Path with
// Cancelled unset selects the built-in default spring.
type BrowserResult struct {
	Path      string
	Cancelled bool
}

// BrowserSelectedMsg is emitted by an embedded browser when a recipe is picked.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg is emitted by an embedded browser when the user quits.
type BrowserCancelledMsg struct{}

type recipeItem struct {
	name string
	ext  string
	path string
}

func (i recipeItem) Title() string       { return i.name }
func (i recipeItem) Description() string { return i.ext }
func (i recipeItem) FilterValue() string { return i.name }

type defaultItem struct{}

func (i defaultItem) Title() string       { return "Default spring" }
func (i defaultItem) Description() string { return "built-in 8/10 coil closed & ground spring" }
func (i defaultItem) FilterValue() string { return "default" }

// BrowserModel is the Bubbletea model for the recipe picker screen.
type BrowserModel struct {
	list     list.Model
	embedded bool
	result   *BrowserResult
	err      error
}

// NewBrowser creates a recipe picker scanning the current directory.
func NewBrowser() BrowserModel {
	files, err := recipe.Scan(".")
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	items := []list.Item{defaultItem{}}
	for _, f := range files {
		base := filepath.Base(f)
		items = append(items, recipeItem{
			name: strings.TrimSuffix(base, filepath.Ext(base)),
			ext:  strings.ToLower(filepath.Ext(base)),
			path: f,
		})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "coilsim"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return BrowserModel{list: l}
}

// NewEmbeddedBrowser creates a picker that reports its outcome as messages
// instead of quitting the program.
func NewEmbeddedBrowser() BrowserModel {
	m := NewBrowser()
	m.embedded = true
	return m
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

// Result returns the browser result after the program finishes.
func (m BrowserModel) Result() BrowserResult {
	if m.result != nil {
		return *m.result
	}
	return BrowserResult{Cancelled: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("coilsim")
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if k, ok := msg.(tea.KeyMsg); ok && isQuit(k) {
			return m.finish(BrowserResult{Cancelled: true})
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case defaultItem:
				return m.finish(BrowserResult{})
			case recipeItem:
				return m.finish(BrowserResult{Path: item.path})
			}
		case "q", "esc", "ctrl+c":
			return m.finish(BrowserResult{Cancelled: true})
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) finish(r BrowserResult) (tea.Model, tea.Cmd) {
	m.result = &r
	if m.embedded {
		if r.Cancelled {
			return m, func() tea.Msg { return BrowserCancelledMsg{} }
		}
		path := r.Path
		return m, func() tea.Msg { return BrowserSelectedMsg{Path: path} }
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m BrowserModel) View() string {
	if m.err != nil {
		return "\n  " + headerStyle.Render("coilsim") + "\n\n  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	return m.list.View()
}
