package deafeq

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	intaudio "github.com/cbegin/deafeq-go/internal/audio"
	intdecode "github.com/cbegin/deafeq-go/internal/decode"
	inteq "github.com/cbegin/deafeq-go/internal/eq"
)

// State is the engine lifecycle state.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StatePlaying
	StateStopped
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	case StateLoadFailed:
		return "loadFailed"
	default:
		return "unknown"
	}
}

// EngineEvent carries lifecycle events from Watch().
type EngineEvent struct {
	Kind         int // EventLoaded, EventLoadFailed, EventPlaybackStarted, EventPlaybackStopped, or EventCurveChanged
	State        State
	CurveEnabled bool
}

const (
	EventLoaded int = iota
	EventLoadFailed
	EventPlaybackStarted
	EventPlaybackStopped
	EventCurveChanged
)

type EngineOption func(*engineConfig)

type engineConfig struct {
	sampleTap func([]float32)
}

// WithSampleTap installs a callback invoked with each stereo buffer after
// filtering. The callback runs on the audio thread; keep work brief and
// non-blocking.
func WithSampleTap(tap func([]float32)) EngineOption {
	return func(cfg *engineConfig) {
		cfg.sampleTap = tap
	}
}

// Engine owns one decoded clip and plays it in a loop through a fixed
// six-band filter chain. An engine loads at most one asset in its lifetime.
type Engine struct {
	mu         sync.Mutex
	sampleRate int
	output     intaudio.Output
	state      State
	closed     bool
	loadCalled bool
	curveOn    bool
	clip       *intdecode.Clip
	chain      *inteq.Chain
	session    *session
	sampleTap  func([]float32)
	eventCh    chan EngineEvent
	eventChMu  sync.Mutex
}

// session pairs one player with its sample source. A session is single-use:
// stopping it closes the player and marks the source dead, and the next
// start builds a fresh one.
type session struct {
	player intaudio.Player
	source *loopSource
}

// loopSource streams the clip forever, wrapping at the end, and runs the
// filter chain over each buffer. Process runs on the audio thread.
type loopSource struct {
	clip    *intdecode.Clip
	chain   *inteq.Chain
	tap     func([]float32)
	stopped atomic.Bool
	pos     int // frame index into the clip
}

func (s *loopSource) Process(dst []float32) {
	if s.stopped.Load() {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	samples := s.clip.Samples()
	frames := s.clip.Frames()
	for filled := 0; filled < len(dst)/2; {
		n := copy(dst[filled*2:], samples[s.pos*2:])
		nf := n / 2
		filled += nf
		s.pos += nf
		if s.pos >= frames {
			s.pos = 0
		}
	}
	s.chain.Process(dst)
	if s.tap != nil {
		s.tap(dst)
	}
}

// NewEngine creates an engine that plays at the given sample rate. The
// filter chain is built here, flat, and only its gains change afterwards.
func NewEngine(sampleRate int, opts ...EngineOption) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	chain, err := inteq.NewChain(sampleRate)
	if err != nil {
		return nil, err
	}
	return &Engine{
		sampleRate: sampleRate,
		output:     intaudio.NewOutput(sampleRate),
		chain:      chain,
		sampleTap:  cfg.sampleTap,
	}, nil
}

// Load decodes the asset and readies the engine. An engine decodes once: any
// call after the first returns nil without touching the stored clip. A
// failed decode moves the engine to StateLoadFailed permanently.
func (e *Engine) Load(asset []byte) error {
	e.mu.Lock()
	if e.closed || e.loadCalled {
		e.mu.Unlock()
		return nil
	}
	e.loadCalled = true
	e.state = StateLoading
	rate := e.sampleRate
	e.mu.Unlock()

	clip, err := intdecode.Decode(asset, rate)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if err != nil {
		e.state = StateLoadFailed
		e.sendEvent(EngineEvent{Kind: EventLoadFailed, State: StateLoadFailed})
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	e.clip = clip
	e.state = StateReady
	e.sendEvent(EngineEvent{Kind: EventLoaded, State: StateReady})
	return nil
}

// SetCurveEnabled switches between the shaped curve and flat response. Band
// gains glide to the new targets from wherever they are now; re-applying the
// current choice changes nothing. Before a successful Load the call is
// ignored.
func (e *Engine) SetCurveEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateReady, StatePlaying, StateStopped:
	default:
		return
	}
	if e.curveOn == enabled {
		return
	}
	e.curveOn = enabled
	e.chain.SetTargets(ActiveCurve(enabled).Gains())
	e.sendEvent(EngineEvent{Kind: EventCurveChanged, State: e.state, CurveEnabled: enabled})
}

// TogglePlayback starts or stops the loop and reports whether audio is
// playing after the call. Starting requires the output device to be ready;
// if it is not, ErrOutputUnavailable is returned and the toggle can be
// retried once the user has interacted. Outside Ready, Playing, and Stopped
// the call does nothing.
func (e *Engine) TogglePlayback() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StatePlaying:
		e.stopSessionLocked()
		e.state = StateStopped
		e.sendEvent(EngineEvent{Kind: EventPlaybackStopped, State: StateStopped, CurveEnabled: e.curveOn})
		return false, nil
	case StateReady, StateStopped:
	default:
		return false, nil
	}

	if !e.output.Ready() {
		return false, ErrOutputUnavailable
	}
	e.chain.Reset()
	src := &loopSource{clip: e.clip, chain: e.chain, tap: e.sampleTap}
	pl, err := e.output.NewPlayer(src)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}
	e.session = &session{player: pl, source: src}
	pl.Play()
	e.state = StatePlaying
	e.sendEvent(EngineEvent{Kind: EventPlaybackStarted, State: StatePlaying, CurveEnabled: e.curveOn})
	return true, nil
}

func (e *Engine) stopSessionLocked() error {
	if e.session == nil {
		return nil
	}
	e.session.source.stopped.Store(true)
	err := e.session.player.Close()
	e.session = nil
	return err
}

// Close stops playback and releases the engine. It is safe in any state and
// safe to call repeatedly; the engine ends in StateUnloaded and ignores
// every later call.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	hadSession := e.session != nil
	err := e.stopSessionLocked()
	e.clip = nil
	e.state = StateUnloaded
	e.mu.Unlock()
	if hadSession {
		e.sendEvent(EngineEvent{Kind: EventPlaybackStopped, State: StateUnloaded})
	}
	return err
}

func (e *Engine) sendEvent(ev EngineEvent) {
	e.eventChMu.Lock()
	ch := e.eventCh
	e.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}

// Watch returns a channel that receives engine events. The channel is
// buffered (cap 8) and events are dropped when it is full; receive in a
// goroutine to keep up. Only the most recent Watch() channel receives
// events.
func (e *Engine) Watch() <-chan EngineEvent {
	ch := make(chan EngineEvent, 8)
	e.eventChMu.Lock()
	e.eventCh = ch
	e.eventChMu.Unlock()
	return ch
}

// State returns the engine lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StatePlaying
}

// CurveEnabled reports whether the shaped curve is the active target.
func (e *Engine) CurveEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.curveOn
}

func (e *Engine) SampleRate() int { return e.sampleRate }

// Duration returns the decoded clip length, or 0 before a successful Load.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clip == nil {
		return 0
	}
	return e.clip.Duration()
}

// PlaybackPosition returns the current output position of the audio driver
// in frames, i.e. what the listener actually hears right now. Returns 0 if
// not playing.
func (e *Engine) PlaybackPosition() int64 {
	e.mu.Lock()
	s := e.session
	e.mu.Unlock()
	if s == nil {
		return 0
	}
	pos := s.player.Position()
	return int64(pos.Seconds() * float64(e.sampleRate))
}

// ChartSeries returns the labels and values a bar chart consumes: band labels
// and the active curve's target gains.
func (e *Engine) ChartSeries() (labels [NumBands]string, values [NumBands]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ActiveCurve(e.curveOn).ChartSeries()
}

// BandGains returns the instantaneous per-band gains in dB, mid-ramp values
// included.
func (e *Engine) BandGains() [NumBands]float64 {
	return e.chain.CurrentGains()
}

// ResponseCurveDB evaluates the combined filter response in dB at the given
// frequencies, using the instantaneous band gains.
func (e *Engine) ResponseCurveDB(freqs []float64) []float64 {
	return e.chain.ResponseDB(freqs)
}
