// Package feedback plays short audio cues when a selection resolves or is cancelled.
// Audio is optional: every method is a no-op until Init succeeds.
package feedback

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker for the lifetime of one run
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
	pending     chan struct{} // closed when the last queued cue finishes
}

// NewPlayer creates a player with volume in [0, 1]
func NewPlayer(volume float64) *Player {
	return &Player{volume: volume}
}

// Init opens the audio device. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Resolve plays the rising chime
func (p *Player) Resolve() {
	s, err := chime()
	if err != nil {
		return
	}
	p.play(s)
}

// Cancel plays the low buzz
func (p *Player) Cancel() {
	p.play(buzz())
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	done := make(chan struct{})
	p.pending = done
	speaker.Play(beep.Seq(withVolume(s, p.volume), beep.Callback(func() {
		close(done)
	})))
}

// Wait blocks until the last cue has played or timeout elapses.
// The process exits right after a selection, which would otherwise cut the cue off.
func (p *Player) Wait(timeout time.Duration) bool {
	p.mu.Lock()
	done := p.pending
	p.mu.Unlock()

	if done == nil {
		return true
	}
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Close stops playback and releases the device
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
	p.pending = nil
}
