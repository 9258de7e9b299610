// Package session turns a stream of key events into a resolved grid point.
package session

import (
	"fmt"

	"github.com/lixenwraith/vencoord/label"
)

// State of a selection session
type State uint8

const (
	StatePending   State = iota // Awaiting more input, the only non-terminal state
	StateResolved               // Input decoded to a label
	StateCancelled              // Cancel key pressed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// KeyEvent is one key press as seen by the session.
// Text may be empty for keys that produce no characters.
type KeyEvent struct {
	Cancel bool
	Text   string
}

// CellSize scales a grid index into output units
type CellSize struct {
	W uint32
	H uint32
}

// Point is a scaled coordinate.
// 64-bit so any decoded index times any cell size fits.
type Point struct {
	X uint64
	Y uint64
}

func (p Point) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}

// Outcome reports the session state; Index and Point are set only when resolved
type Outcome struct {
	State State
	Index label.Index
	Point Point
}

// Terminal reports whether the outcome ends the session
func (o Outcome) Terminal() bool {
	return o.State != StatePending
}

// Session accumulates typed characters until they decode to a label.
// Not safe for concurrent use; drive it from a single event loop.
type Session struct {
	cell    CellSize
	input   []byte
	outcome Outcome
}

// New creates a pending session scaling resolved indices by cell
func New(cell CellSize) *Session {
	return &Session{
		cell:  cell,
		input: make([]byte, 0, 8),
	}
}

// OnKey processes one event and returns the resulting outcome.
// A failed decode leaves the buffer as is; it is never trimmed or reset.
// Events after a terminal outcome are ignored.
func (s *Session) OnKey(ev KeyEvent) Outcome {
	if s.outcome.Terminal() {
		return s.outcome
	}

	if ev.Cancel {
		s.outcome = Outcome{State: StateCancelled}
		return s.outcome
	}

	if ev.Text == "" {
		return s.outcome
	}
	s.input = append(s.input, ev.Text...)

	ix, ok := label.Decode(string(s.input))
	if !ok {
		return s.outcome
	}

	s.outcome = Outcome{
		State: StateResolved,
		Index: ix,
		Point: Point{
			X: uint64(ix.Col) * uint64(s.cell.W),
			Y: uint64(ix.Row) * uint64(s.cell.H),
		},
	}
	return s.outcome
}

// IsTerminal reports whether the session has resolved or been cancelled
func (s *Session) IsTerminal() bool {
	return s.outcome.Terminal()
}

// Outcome returns the current outcome
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Input returns everything typed so far
func (s *Session) Input() string {
	return string(s.input)
}
