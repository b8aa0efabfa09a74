package queue

import "github.com/olivier-w/coilsim/internal/recipe"

// EntryState represents the load state of a queued recipe.
type EntryState int

const (
	Pending EntryState = iota
	Ready
	Active
	Failed
)

// Entry is a single recipe in the production queue.
type Entry struct {
	Name   string
	Path   string
	State  EntryState
	Recipe *recipe.Recipe
	Err    error
}

// Queue holds the recipes available for simulation, in order.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Queue struct {
	entries []Entry
	current int
}

// New creates a Queue from the given entries.
func New(entries []Entry) *Queue {
	return &Queue{entries: entries}
}

// FromRecipes creates a queue of already loaded recipes with the first one active.
func FromRecipes(rs ...*recipe.Recipe) *Queue {
	entries := make([]Entry, len(rs))
	for i, r := range rs {
		entries[i] = Entry{Name: r.Name, Path: r.Path, State: Ready, Recipe: r}
	}
	q := New(entries)
	if len(entries) > 0 {
		q.entries[0].State = Active
	}
	return q
}

// Current returns a pointer to the active entry, or nil if empty.
func (q *Queue) Current() *Entry {
	if q.current < 0 || q.current >= len(q.entries) {
		return nil
	}
	return &q.entries[q.current]
}

// Advance moves to the next entry, wrapping to the first. Returns false if
// the queue has fewer than two entries.
func (q *Queue) Advance() bool {
	if len(q.entries) < 2 {
		return false
	}
	q.activate((q.current + 1) % len(q.entries))
	return true
}

// Previous moves to the previous entry, wrapping to the last.
func (q *Queue) Previous() bool {
	if len(q.entries) < 2 {
		return false
	}
	q.activate((q.current - 1 + len(q.entries)) % len(q.entries))
	return true
}

func (q *Queue) activate(i int) {
	if cur := q.Current(); cur != nil && cur.State == Active {
		cur.State = Ready
	}
	q.current = i
	if q.entries[i].State != Failed {
		q.entries[i].State = Active
	}
}

// Peek returns up to n entries after the current one, wrapping around.
func (q *Queue) Peek(n int) []Entry {
	if len(q.entries) < 2 {
		return nil
	}
	if n > len(q.entries)-1 {
		n = len(q.entries) - 1
	}
	result := make([]Entry, n)
	for i := range n {
		result[i] = q.entries[(q.current+1+i)%len(q.entries)]
	}
	return result
}

// Len returns the total number of entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// CurrentIndex returns the zero-based index of the current entry.
func (q *Queue) CurrentIndex() int {
	return q.current
}

// SetCurrentIndex makes the entry at i active.
func (q *Queue) SetCurrentIndex(i int) {
	if i >= 0 && i < len(q.entries) {
		q.activate(i)
	}
}

// Entry returns a pointer to the entry at the given index, or nil if out of range.
func (q *Queue) Entry(i int) *Entry {
	if i < 0 || i >= len(q.entries) {
		return nil
	}
	return &q.entries[i]
}

// SetRecipe stores a freshly loaded recipe for the entry at i.
func (q *Queue) SetRecipe(i int, r *recipe.Recipe) {
	e := q.Entry(i)
	if e == nil {
		return
	}
	e.Recipe = r
	e.Err = nil
	e.Name = r.Name
	if i == q.current {
		e.State = Active
	} else {
		e.State = Ready
	}
}

// SetFailed marks the entry at i as unusable.
func (q *Queue) SetFailed(i int, err error) {
	if e := q.Entry(i); e != nil {
		e.State = Failed
		e.Err = err
	}
}
