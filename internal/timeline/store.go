// Package timeline holds the active manufacturing cycle and advances
// playback through it one frame at a time.
package timeline

import (
	"sync"

	"github.com/olivier-w/coilsim/internal/process"
	"go.uber.org/zap"
)

// Snapshot is a consistent view of the store. CurrentTime and Positions
// always belong to the same instant.
type Snapshot struct {
	Process     *process.CompressionSpringProcess
	CurrentTime float64
	Positions   process.AxisPositions
	Playing     bool
	Speed       SpeedMode
	Loop        LoopMode
	Cycles      int
}

// Progress returns CurrentTime / TotalCycleTime in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Process == nil || s.Process.TotalCycleTime <= 0 {
		return 0
	}
	return s.CurrentTime / s.Process.TotalCycleTime
}

// Finished reports whether single-shot playback has reached the end.
func (s Snapshot) Finished() bool {
	return s.Positions.CurrentPhase == process.PhaseDone
}

// Store owns the single active process and its playback state.
// All mutation goes through its methods and replaces the snapshot whole.
type Store struct {
	gen *process.Generator
	log *zap.SugaredLogger

	mu      sync.Mutex
	snap    Snapshot
	done    chan struct{}
	subs    map[int]chan Snapshot
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty, paused store.
func New(opts ...Option) *Store {
	s := &Store{
		gen:  process.NewGenerator(process.DefaultTiming()),
		log:  zap.NewNop().Sugar(),
		done: make(chan struct{}),
		subs: make(map[int]chan Snapshot),
	}
	s.snap.Positions = process.Sample(nil, 0)
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetGenerator swaps the generator used by later GenerateProcess calls.
func (s *Store) SetGenerator(g *process.Generator) {
	if g == nil {
		return
	}
	s.mu.Lock()
	s.gen = g
	s.mu.Unlock()
}

// GenerateProcess builds a new process from in, rewinds to t=0 and
// publishes it. Play state, speed and loop mode are kept.
func (s *Store) GenerateProcess(in process.SpringProcessInput) *process.CompressionSpringProcess {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.gen.Generate(in)
	next := s.snap
	next.Process = p
	next.CurrentTime = 0
	next.Positions = process.Sample(p, 0)
	s.commit(next)

	s.log.Debugw("process generated",
		"cycle_time", p.TotalCycleTime,
		"phases", len(p.Phases),
		"wire_length", p.Geometry.TotalWireLength,
	)
	return p
}

// SetTime moves playback to t, clamped into the cycle.
func (s *Store) SetTime(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(t)
}

// Seek moves playback by delta seconds from the current time.
func (s *Store) Seek(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(s.snap.CurrentTime + delta)
}

func (s *Store) seekLocked(t float64) {
	if s.snap.Process == nil {
		return
	}
	next := s.snap
	next.CurrentTime = next.Process.Clamp(t)
	next.Positions = process.Sample(next.Process, next.CurrentTime)
	s.commit(next)
}

// Play starts playback. A finished single-shot cycle restarts from t=0.
func (s *Store) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playLocked()
}

func (s *Store) playLocked() {
	next := s.snap
	if next.Finished() {
		next.CurrentTime = 0
		next.Positions = process.Sample(next.Process, 0)
	}
	next.Playing = true
	s.commit(next)
}

// Pause halts playback without moving time.
func (s *Store) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	next.Playing = false
	s.commit(next)
}

// TogglePause toggles between play and pause.
func (s *Store) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Playing {
		next := s.snap
		next.Playing = false
		s.commit(next)
		return
	}
	s.playLocked()
}

// Reset rewinds to t=0 and pauses.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	next.CurrentTime = 0
	next.Positions = process.Sample(next.Process, 0)
	next.Playing = false
	s.commit(next)
}

// SetSpeed sets the playback speed multiplier.
func (s *Store) SetSpeed(m SpeedMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	next.Speed = m
	s.commit(next)
}

// CycleSpeed advances to the next speed mode and returns it.
func (s *Store) CycleSpeed() SpeedMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	next.Speed = next.Speed.Next()
	s.commit(next)
	return next.Speed
}

// SetLoopMode sets what happens at the end of a cycle.
func (s *Store) SetLoopMode(l LoopMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	next.Loop = l
	s.commit(next)
}

// Tick advances playback by dt seconds of wall time scaled by the speed
// multiplier. It does nothing while paused or before a process exists.
// Reaching the end wraps to t=0 in LoopOn, and holds on the done phase in
// LoopOff.
func (s *Store) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.snap.Process
	if !s.snap.Playing || p == nil || dt <= 0 {
		return
	}

	next := s.snap
	next.CurrentTime += dt * next.Speed.Multiplier()
	if next.CurrentTime < p.TotalCycleTime {
		next.Positions = process.Sample(p, next.CurrentTime)
		s.commit(next)
		return
	}

	next.Cycles++
	if next.Loop == LoopOff {
		next.CurrentTime = p.TotalCycleTime
		next.Positions = process.Sample(p, next.CurrentTime)
		next.Positions.CurrentPhase = process.PhaseDone
		next.Playing = false
	} else {
		next.CurrentTime = 0
		next.Positions = process.Sample(p, 0)
	}
	s.commit(next)

	close(s.done)
	s.done = make(chan struct{})
	s.log.Debugw("cycle complete", "cycles", next.Cycles, "loop", next.Loop.String())
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// CycleDone returns a channel that closes when the current cycle completes.
// Call it again after it fires to wait for the next cycle.
func (s *Store) CycleDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Subscribe returns a channel that receives every published snapshot.
// A slow reader only sees the newest one. The returned func unsubscribes
// and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// commit must be called with mu held.
func (s *Store) commit(next Snapshot) {
	s.snap = next
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
