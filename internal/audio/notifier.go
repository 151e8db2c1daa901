// Package audio turns session events into short synthesized sounds.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
	"github.com/vovakirdan/astrarun/internal/telemetry"
)

const queueSize = 16

// Notifier plays a sound per event on a background goroutine.
// Notify never blocks; events arriving while the queue is full are dropped.
type Notifier struct {
	rate   beep.SampleRate
	volume float64
	sink   func(beep.Streamer)

	mu     sync.RWMutex
	closed bool
	queue  chan core.Event
	done   chan struct{}
}

// New initializes the speaker and starts the playback worker.
// A disabled config or a failed speaker init yields a silent notifier.
func New(cfg config.AudioConfig, logger *log.Logger) *Notifier {
	rate := beep.SampleRate(cfg.SampleRate)
	volume := core.ClampF(cfg.Volume, 0, 1)
	if !cfg.Enabled || volume <= 0 {
		return newNotifier(rate, 0, nil)
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return newNotifier(rate, 0, nil)
	}
	return newNotifier(rate, volume, func(s beep.Streamer) { speaker.Play(s) })
}

func newNotifier(rate beep.SampleRate, volume float64, sink func(beep.Streamer)) *Notifier {
	n := &Notifier{
		rate:   rate,
		volume: volume,
		sink:   sink,
		queue:  make(chan core.Event, queueSize),
		done:   make(chan struct{}),
	}
	go n.loop()
	return n
}

// Notify queues ev for playback. Events after Close are dropped.
func (n *Notifier) Notify(ev core.Event) {
	if n.sink == nil {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- ev:
	default:
	}
}

func (n *Notifier) loop() {
	defer close(n.done)
	for ev := range n.queue {
		n.play(ev)
	}
}

func (n *Notifier) play(ev core.Event) {
	defer telemetry.Recover("audio")
	if s := n.Sound(ev); s != nil {
		n.sink(s)
	}
}

// Close stops the worker after queued sounds are handed to the speaker.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	<-n.done
}

// Sound builds the streamer for ev, or nil for events without a sound.
func (n *Notifier) Sound(ev core.Event) beep.Streamer {
	var s beep.Streamer
	switch ev {
	case core.EventJump:
		s = sweep(n.rate, 420, 720, 90*time.Millisecond)
	case core.EventNewHighScore:
		s = beep.Seq(
			tone(n.rate, 987.77, 90*time.Millisecond),
			tone(n.rate, 1318.51, 220*time.Millisecond),
		)
	case core.EventSessionEnded:
		s = sweep(n.rate, 220, 90, 320*time.Millisecond)
	default:
		return nil
	}
	return withVolume(s, n.volume)
}

// tone is a fixed-pitch sine with a linear fade out.
func tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return sweep(rate, freq, freq, d)
}

// sweep glides linearly from one frequency to another over d.
func sweep(rate beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	total := rate.N(d)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			progress := float64(pos) / float64(total)
			freq := from + (to-from)*progress
			v := math.Sin(2*math.Pi*phase) * (1 - progress)
			samples[i][0] = v
			samples[i][1] = v
			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
}

// math.Log2(0) is -Inf, so zero volume is expressed as silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
