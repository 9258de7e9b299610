package session

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vencoord/label"
)

func typeString(s *Session, text string) []Outcome {
	var out []Outcome
	for _, r := range text {
		out = append(out, s.OnKey(KeyEvent{Text: string(r)}))
	}
	return out
}

func TestSession_ResolvesOnLastCharacter(t *testing.T) {
	s := New(CellSize{W: 40, H: 48})
	text := label.Encode(label.Index{Col: 3, Row: 1})

	outs := typeString(s, text)
	for i, o := range outs[:len(outs)-1] {
		assert.Equal(t, StatePending, o.State, "after char %d of %q", i, text)
	}

	last := outs[len(outs)-1]
	require.Equal(t, StateResolved, last.State)
	assert.Equal(t, label.Index{Col: 3, Row: 1}, last.Index)
	assert.Equal(t, Point{X: 120, Y: 48}, last.Point)
	assert.Equal(t, "120, 48", last.Point.String())
	assert.True(t, s.IsTerminal())
}

func TestSession_MultiCharacterPrefixLabel(t *testing.T) {
	s := New(CellSize{W: 1, H: 1})
	ix := label.Index{Col: 52, Row: 600}
	text := label.Encode(ix) // "1a11C"

	outs := typeString(s, text)
	for _, o := range outs[:len(outs)-1] {
		require.False(t, o.Terminal())
	}
	assert.Equal(t, ix, outs[len(outs)-1].Index)
}

func TestSession_CancelAtAnyPoint(t *testing.T) {
	text := label.Encode(label.Index{Col: 60, Row: 70})
	for cut := 0; cut < len(text); cut++ {
		s := New(CellSize{W: 1, H: 1})
		for _, o := range typeString(s, text[:cut]) {
			require.Equal(t, StatePending, o.State)
		}

		o := s.OnKey(KeyEvent{Cancel: true})
		require.Equal(t, StateCancelled, o.State, "cancel after %d chars", cut)

		// Further input is not processed
		after := typeString(s, text[cut:])
		for _, o := range after {
			assert.Equal(t, StateCancelled, o.State)
		}
		assert.Equal(t, text[:cut], s.Input())
	}
}

func TestSession_IgnoresEventsAfterResolve(t *testing.T) {
	s := New(CellSize{W: 2, H: 3})
	resolved := s.OnKey(KeyEvent{Text: "bc"})
	require.Equal(t, StateResolved, resolved.State)

	assert.Equal(t, resolved, s.OnKey(KeyEvent{Text: "zz"}))
	assert.Equal(t, resolved, s.OnKey(KeyEvent{Cancel: true}))
	assert.Equal(t, "bc", s.Input())
	assert.Equal(t, Point{X: 2, Y: 6}, s.Outcome().Point)
}

func TestSession_FailedDecodeKeepsBuffer(t *testing.T) {
	s := New(CellSize{W: 1, H: 1})
	assert.Equal(t, StatePending, s.OnKey(KeyEvent{Text: "!"}).State)
	assert.Equal(t, StatePending, s.OnKey(KeyEvent{Text: "a"}).State)
	// "!a" never decodes; the buffer only grows
	assert.Equal(t, StatePending, s.OnKey(KeyEvent{Text: "b"}).State)
	assert.Equal(t, "!ab", s.Input())

	long := strings.Repeat("!", 10000)
	s.OnKey(KeyEvent{Text: long})
	assert.Len(t, s.Input(), 3+len(long))
	assert.False(t, s.IsTerminal())
}

func TestSession_EmptyTextIsNoop(t *testing.T) {
	s := New(CellSize{W: 1, H: 1})
	o := s.OnKey(KeyEvent{})
	assert.Equal(t, StatePending, o.State)
	assert.Empty(t, s.Input())
}

func TestSession_MultiRuneEvent(t *testing.T) {
	s := New(CellSize{W: 10, H: 10})
	o := s.OnKey(KeyEvent{Text: "ab"})
	require.Equal(t, StateResolved, o.State)
	assert.Equal(t, label.Index{Col: 0, Row: 1}, o.Index)
}

func TestSession_TrailingInputWithinEvent(t *testing.T) {
	s := New(CellSize{W: 1, H: 1})
	o := s.OnKey(KeyEvent{Text: "abXYZ"})
	require.Equal(t, StateResolved, o.State)
	assert.Equal(t, label.Index{Col: 0, Row: 1}, o.Index)
}

func TestSession_OutOfRangeIndexAccepted(t *testing.T) {
	s := New(CellSize{W: math.MaxUint32, H: math.MaxUint32})
	o := s.OnKey(KeyEvent{Text: label.Encode(label.Index{Col: math.MaxUint32, Row: math.MaxUint32})})
	require.Equal(t, StateResolved, o.State)
	want := uint64(math.MaxUint32) * uint64(math.MaxUint32)
	assert.Equal(t, Point{X: want, Y: want}, o.Point)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "State(9)", State(9).String())
}
