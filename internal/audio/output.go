package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Player is a handle to one stream being fed to the output device.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Position() time.Duration
	Close() error
}

// Output abstracts the audio output device. Ready reports whether the device
// will actually produce sound; on browsers it stays false until a user
// gesture unlocks audio.
type Output interface {
	SampleRate() int
	Ready() bool
	NewPlayer(source SampleSource) (Player, error)
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten audio context, creating
// it on first use. ebiten allows one context per process, so every Output in
// the process must agree on the sample rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// NewOutput returns the device-backed Output. The underlying context is not
// created until the first Ready or NewPlayer call.
func NewOutput(sampleRate int) Output {
	return &deviceOutput{sampleRate: sampleRate}
}

type deviceOutput struct {
	sampleRate int
}

func (o *deviceOutput) SampleRate() int { return o.sampleRate }

func (o *deviceOutput) Ready() bool {
	ctx, err := sharedAudioContext(o.sampleRate)
	if err != nil {
		return false
	}
	return ctx.IsReady()
}

func (o *deviceOutput) NewPlayer(source SampleSource) (Player, error) {
	ctx, err := sharedAudioContext(o.sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &devicePlayer{player: pl, reader: reader}, nil
}

type devicePlayer struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

func (p *devicePlayer) Play()                   { p.player.Play() }
func (p *devicePlayer) Pause()                  { p.player.Pause() }
func (p *devicePlayer) IsPlaying() bool         { return p.player.IsPlaying() }
func (p *devicePlayer) Position() time.Duration { return p.player.Position() }

func (p *devicePlayer) Close() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}
