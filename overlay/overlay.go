// Package overlay draws the label grid on a tcell screen and feeds key
// presses to a selection session until it resolves or is cancelled.
package overlay

import (
	"context"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vencoord/grid"
	"github.com/lixenwraith/vencoord/session"
)

// markerRune marks the grid point a label names
const markerRune = '·'

// Cues receives terminal outcomes, e.g. for audio feedback
type Cues interface {
	Resolve()
	Cancel()
}

// Options configures an Overlay
type Options struct {
	GapX, GapY int
	Cell       session.CellSize // Output units per grid step
	LabelColor tcell.Color
	DotColor   tcell.Color
	Cues       Cues // Optional
}

type styles struct {
	label     tcell.Style
	highlight tcell.Style
	dim       tcell.Style
	dot       tcell.Style
	chip      tcell.Style
}

func newStyles(opts Options) styles {
	label := tcell.StyleDefault.Foreground(opts.LabelColor)
	return styles{
		label:     label,
		highlight: label.Reverse(true).Bold(true),
		dim:       label.Dim(true),
		dot:       tcell.StyleDefault.Foreground(opts.DotColor),
		chip:      tcell.StyleDefault.Reverse(true),
	}
}

// Overlay owns the drawing and input loop for one selection
type Overlay struct {
	screen     tcell.Screen
	opts       Options
	styles     styles
	sess       *session.Session
	geo        grid.Geometry
	placements []grid.Placement
}

// New creates an overlay on an initialized screen
func New(screen tcell.Screen, opts Options) *Overlay {
	return &Overlay{
		screen: screen,
		opts:   opts,
		styles: newStyles(opts),
		sess:   session.New(opts.Cell),
		geo:    grid.Geometry{GapX: opts.GapX, GapY: opts.GapY},
	}
}

// Session exposes the selection state, mainly for inspection after Run
func (o *Overlay) Session() *session.Session {
	return o.sess
}

// Run draws the grid and processes events until the session ends.
// Context cancellation and screen shutdown end the run as cancelled;
// the former also returns ctx.Err().
func (o *Overlay) Run(ctx context.Context) (session.Outcome, error) {
	if err := o.geo.Validate(); err != nil {
		return session.Outcome{}, err
	}

	o.layout()
	o.draw()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go o.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return o.finish(session.Outcome{State: session.StateCancelled}), ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return o.finish(session.Outcome{State: session.StateCancelled}), nil
			}
			if out, done := o.handle(ev); done {
				return o.finish(out), nil
			}
		}
	}
}

// handle processes one event, reporting whether the session ended
func (o *Overlay) handle(ev tcell.Event) (session.Outcome, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		o.screen.Sync()
		o.layout()
		o.draw()

	case *tcell.EventKey:
		out := o.sess.OnKey(KeyEvent(ev))
		if out.Terminal() {
			return out, true
		}
		o.draw()
	}
	return o.sess.Outcome(), false
}

func (o *Overlay) finish(out session.Outcome) session.Outcome {
	log.Printf("overlay: %s after input %q", out.State, o.sess.Input())
	if o.opts.Cues == nil {
		return out
	}
	switch out.State {
	case session.StateResolved:
		o.opts.Cues.Resolve()
	case session.StateCancelled:
		o.opts.Cues.Cancel()
	}
	return out
}

// KeyEvent maps a tcell key press onto a session event.
// Escape and Ctrl-C cancel; plain runes are text; every other key is ignored.
func KeyEvent(ev *tcell.EventKey) session.KeyEvent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return session.KeyEvent{Cancel: true}
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			// Some terminals report Ctrl-C as a rune with the modifier
			if ev.Rune() == 'c' || ev.Rune() == 'C' {
				return session.KeyEvent{Cancel: true}
			}
			return session.KeyEvent{}
		}
		return session.KeyEvent{Text: string(ev.Rune())}
	}
	return session.KeyEvent{}
}

// layout rebuilds every label for the current screen size
func (o *Overlay) layout() {
	o.geo.Width, o.geo.Height = o.screen.Size()
	o.placements = o.geo.Placements()

	log.Printf("overlay: screen %dx%d, grid %dx%d", o.geo.Width, o.geo.Height, o.geo.Columns(), o.geo.Rows())
	if o.geo.Clipped() {
		log.Printf("overlay: labels up to %d cells overlap at gap %d", o.geo.MaxLabelLen(), o.geo.GapX)
	}
}

func (o *Overlay) draw() {
	o.screen.Clear()

	input := o.sess.Input()
	for _, p := range o.placements {
		style := o.styles.label
		if input != "" {
			if strings.HasPrefix(p.Text, input) {
				style = o.styles.highlight
			} else {
				style = o.styles.dim
			}
		}

		o.screen.SetContent(p.X, p.Y, markerRune, nil, o.styles.dot)
		for i := 0; i < len(p.Text); i++ {
			o.screen.SetContent(p.X+1+i, p.Y, rune(p.Text[i]), nil, style)
		}
	}

	if input != "" {
		o.drawChip(input)
	}
	o.screen.Show()
}

// drawChip shows the typed input in the bottom-right corner
func (o *Overlay) drawChip(input string) {
	w, h := o.screen.Size()
	if w < 3 || h < 1 {
		return
	}
	text := " " + runewidth.Truncate(input, w/2, "…") + " "
	x := w - runewidth.StringWidth(text)
	for _, r := range text {
		o.screen.SetContent(x, h-1, r, nil, o.styles.chip)
		x += runewidth.RuneWidth(r)
	}
}
