package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coilsim/internal/process"
	"github.com/olivier-w/coilsim/internal/queue"
	"github.com/olivier-w/coilsim/internal/recipe"
	"github.com/olivier-w/coilsim/internal/timeline"
	"github.com/olivier-w/coilsim/internal/visualizer"
	"go.uber.org/zap"
)

const (
	fineStep   = 0.1 // s
	coarseStep = 1.0 // s
)

// Model is the Bubbletea model for the coilsim TUI.
type Model struct {
	store   *timeline.Store
	queue   *queue.Queue
	watcher *recipe.Watcher
	watch   bool
	log     *zap.SugaredLogger

	snap        timeline.Snapshot
	snaps       <-chan timeline.Snapshot
	unsubscribe func()
	lastTick    time.Time

	views    []visualizer.Visualizer
	progress progress.Model

	width      int
	height     int
	showPhases bool
	quitting   bool

	statusMsg     string    // transient status message
	statusMsgTime time.Time // when statusMsg was set
	exporting     bool
}

// New creates a Model that simulates the queue's current recipe on s.
// With watch set, the current recipe file is reloaded whenever it changes.
func New(s *timeline.Store, q *queue.Queue, log *zap.SugaredLogger, watch bool) Model {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	m := Model{
		store:    s,
		queue:    q,
		watch:    watch,
		log:      log,
		views:    visualizer.Modes(),
		progress: newProgressBar(),
	}
	m.snap = s.Snapshot()
	m.snaps, m.unsubscribe = s.Subscribe()
	if e := q.Current(); e != nil && e.Recipe != nil {
		m.applyRecipe(e.Recipe)
		m.startWatch(e.Path)
	}
	m.store.Play()
	m.refresh()
	m.updateVisualizers()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(),
		waitCycle(m.store),
		waitRecipe(m.watcher),
		tea.SetWindowTitle(windowTitle(m.recipeName(), false)),
	)
}

// applyRecipe regenerates the process from r. The store never picks up
// recipe changes on its own.
func (m *Model) applyRecipe(r *recipe.Recipe) {
	m.store.SetGenerator(r.Generator())
	p := m.store.GenerateProcess(r.Input())
	if speed, ok := r.SpeedMode(); ok {
		m.store.SetSpeed(speed)
	} else {
		m.log.Warnw("unsupported playback speed, keeping current", "speed", r.Playback.Speed, "recipe", r.Name)
	}
	loop := timeline.LoopOn
	if !r.Looping() {
		loop = timeline.LoopOff
	}
	m.store.SetLoopMode(loop)
	m.log.Infow("recipe applied", "name", r.Name, "path", r.Path, "cycle_time", p.TotalCycleTime)
}

func (m *Model) startWatch(path string) {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	if !m.watch || path == "" {
		return
	}
	w, err := recipe.Watch(path, m.log)
	if err != nil {
		m.log.Warnw("recipe watch failed", "path", path, "error", err)
		m.setStatus(fmt.Sprintf("Watch failed: %v", err))
		return
	}
	m.watcher = w
}

// refresh picks up the newest snapshot the store published, if any.
func (m *Model) refresh() {
	select {
	case snap, ok := <-m.snaps:
		if ok {
			m.snap = snap
		}
	default:
	}
}

// watchesCurrent reports whether w is the live watcher of the current entry.
func (m Model) watchesCurrent(w *recipe.Watcher) bool {
	if w == nil || w != m.watcher {
		return false
	}
	e := m.queue.Current()
	if e == nil || e.Path == "" {
		return false
	}
	abs, err := filepath.Abs(e.Path)
	return err == nil && abs == w.Path()
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusMsgTime = time.Now()
}

func (m Model) recipeName() string {
	if e := m.queue.Current(); e != nil {
		return e.Name
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.store.Tick(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		m.refresh()
		if m.statusMsg != "" && time.Since(m.statusMsgTime) > 5*time.Second {
			m.statusMsg = ""
		}
		m.updateVisualizers()
		return m, frameCmd()

	case cycleDoneMsg:
		if msg.store != m.store {
			return m, nil
		}
		m.refresh()
		m.log.Debugw("spring finished", "recipe", m.recipeName(), "cycles", m.snap.Cycles)
		return m, waitCycle(m.store)

	case recipeReloadedMsg:
		if !m.watchesCurrent(msg.watcher) {
			return m, nil
		}
		if msg.update.Err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", msg.update.Err))
			return m, waitRecipe(m.watcher)
		}
		m.queue.SetRecipe(m.queue.CurrentIndex(), msg.update.Recipe)
		m.applyRecipe(msg.update.Recipe)
		m.refresh()
		m.setStatus("Recipe reloaded")
		return m, tea.Batch(waitRecipe(m.watcher), tea.SetWindowTitle(windowTitle(m.recipeName(), false)))

	case exportedMsg:
		m.exporting = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Exported to %s", msg.path))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateVisualizers()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Close()
		}
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch msg.String() {
	case " ":
		m.store.TogglePause()
		m.refresh()
		return m, tea.SetWindowTitle(windowTitle(m.recipeName(), !m.snap.Playing))
	case "left", "h":
		m.store.Seek(-fineStep)
	case "right", "l":
		m.store.Seek(fineStep)
	case "shift+left", "H":
		m.store.Seek(-coarseStep)
	case "shift+right", "L":
		m.store.Seek(coarseStep)
	case "[":
		m.store.SetTime(previousPhaseStart(m.snap.Process, m.snap.CurrentTime))
	case "]":
		m.store.SetTime(nextPhaseStart(m.snap.Process, m.snap.CurrentTime))
	case "r":
		m.store.Reset()
	case "x":
		m.store.CycleSpeed()
	case "o":
		m.store.SetLoopMode(m.snap.Loop.Next())
	case "t":
		m.showPhases = !m.showPhases
	case "n", "p":
		prev := m.queue.CurrentIndex()
		var moved bool
		if msg.String() == "n" {
			moved = m.queue.Advance()
		} else {
			moved = m.queue.Previous()
		}
		if !moved {
			return m, nil
		}
		return m.switchRecipe(prev)
	case "e":
		if m.exporting || m.snap.Process == nil {
			return m, nil
		}
		m.exporting = true
		m.setStatus("Exporting...")
		p, name := m.snap.Process, m.recipeName()
		return m, func() tea.Msg {
			path, err := exportTimeline(p, name, ".", exportSamples)
			return exportedMsg{path: path, err: err}
		}
	default:
		return m, nil
	}

	m.refresh()
	m.updateVisualizers()
	return m, nil
}

// switchRecipe loads the queue's new current entry. Play state is kept.
// If the entry cannot be loaded it is marked failed and the queue goes back
// to prev, which is still the simulated recipe.
func (m Model) switchRecipe(prev int) (Model, tea.Cmd) {
	idx := m.queue.CurrentIndex()
	e := m.queue.Current()
	r := e.Recipe
	if e.Path != "" {
		loaded, err := recipe.Load(e.Path)
		if err != nil {
			m.queue.SetFailed(idx, err)
			m.queue.SetCurrentIndex(prev)
			m.setStatus(fmt.Sprintf("Cannot load %s: %v", e.Name, err))
			m.log.Warnw("recipe load failed", "path", e.Path, "error", err)
			return m, nil
		}
		m.queue.SetRecipe(idx, loaded)
		r = loaded
	}
	if r == nil {
		m.queue.SetCurrentIndex(prev)
		return m, nil
	}

	m.applyRecipe(r)
	m.startWatch(e.Path)
	m.refresh()
	m.updateVisualizers()
	return m, tea.Batch(waitRecipe(m.watcher), tea.SetWindowTitle(windowTitle(m.recipeName(), !m.snap.Playing)))
}

func (m Model) frame() visualizer.Frame {
	return visualizer.Frame{
		Process:   m.snap.Process,
		Time:      m.snap.CurrentTime,
		Positions: m.snap.Positions,
	}
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 46 {
		w = 60
	}
	return w
}

// viewHeight is the row budget of a visualizer, by name.
func viewHeight(name string) int {
	switch name {
	case "axes":
		return len(process.AllAxes())
	case "wire":
		return 4
	}
	return 2
}

func (m Model) updateVisualizers() {
	f := m.frame()
	w := m.contentWidth()
	for _, v := range m.views {
		v.Update(f, w, viewHeight(v.Name()))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	w := m.contentWidth()

	lines := "\n"
	lines += "  " + headerStyle.Render("coilsim") + "\n"
	lines += "\n"

	title := m.recipeName()
	if m.queue.Len() > 1 {
		title = fmt.Sprintf("%s  (%d/%d)", title, m.queue.CurrentIndex()+1, m.queue.Len())
	}
	lines += "  " + titleStyle.Render(title) + "\n"

	p := m.snap.Process
	if p == nil {
		lines += "\n  " + errorStyle.Render("no process loaded") + "\n"
		lines += "\n  " + helpStyle.Render(helpText(m.queue.Len() > 1)) + "\n"
		return lines
	}
	lines += "  " + specStyle.Render(renderSpringSpec(p.Geometry, p.Input.FeedSpeed)) + "\n"
	lines += "\n"
	lines += "  " + renderProgressLine(m.progress, m.snap.CurrentTime, p.TotalCycleTime, w) + "\n"
	lines += "\n"
	lines += "  " + m.statusLine(w) + "\n"
	lines += "\n"
	for i, v := range m.views {
		if i > 0 {
			lines += "\n"
		}
		lines += indentBlock(v.View(), "  ") + "\n"
	}
	if m.showPhases {
		lines += "\n"
		lines += indentBlock(renderPhaseTable(p, m.snap.Positions.CurrentPhase), "  ") + "\n"
	}
	if m.statusMsg != "" {
		lines += "\n  " + helpStyle.Render(m.statusMsg) + "\n"
	}
	lines += "\n"
	lines += "  " + helpStyle.Render(helpText(m.queue.Len() > 1)) + "\n"

	if m.height > 0 {
		if pad := m.height - lipgloss.Height(lines); pad > 0 {
			for range pad {
				lines += "\n"
			}
		}
	}
	return lines
}

func (m Model) statusLine(w int) string {
	statusIcon := "▶"
	statusText := "running"
	switch {
	case m.snap.Finished():
		statusIcon = "■"
		statusText = "finished"
	case !m.snap.Playing:
		statusIcon = "❚❚"
		statusText = "paused"
	}

	ph := m.snap.Positions.CurrentPhase
	phase := lipgloss.NewStyle().Bold(true).Foreground(visualizer.PhaseColor(ph)).Render(ph.Label())

	leftText := fmt.Sprintf("%s  %s", statusIcon, statusText)
	for _, icon := range []string{m.snap.Speed.Label(), m.snap.Loop.Icon()} {
		if icon != "" {
			leftText += "  " + icon
		}
	}
	right := fmt.Sprintf("coils %.2f/%g  springs %d", m.snap.Positions.CurrentCoils, m.snap.Process.Geometry.TotalCoils, m.snap.Cycles)

	gap := w - lipgloss.Width(leftText) - lipgloss.Width(ph.Label()) - lipgloss.Width(right) - 6
	if gap < 2 {
		gap = 2
	}
	return statusStyle.Render(leftText) + "  " + phase + spaces(gap) + statusStyle.Render(right)
}

func previousPhaseStart(p *process.CompressionSpringProcess, t float64) float64 {
	if p == nil {
		return 0
	}
	i := p.PhaseIndex(t)
	if i < 0 {
		i = len(p.Phases) - 1
	}
	// a second press within the first moments of a phase steps back again
	for ; i >= 0; i-- {
		if t-p.Phases[i].StartTime > 0.05 {
			return p.Phases[i].StartTime
		}
	}
	return 0
}

func nextPhaseStart(p *process.CompressionSpringProcess, t float64) float64 {
	if p == nil {
		return 0
	}
	for _, ph := range p.Phases {
		if ph.StartTime > t+1e-9 {
			return ph.StartTime
		}
	}
	return p.TotalCycleTime
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — coilsim"
	}
	return "▶ " + title + " — coilsim"
}
