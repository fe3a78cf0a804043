package decode

import "time"

// Clip is a fully decoded audio asset: stereo interleaved float32 samples
// at a fixed sample rate. Clips are immutable after construction; the
// playback and render paths only read from them.
type Clip struct {
	samples    []float32
	sampleRate int
}

// NewClip wraps stereo interleaved samples. The slice length must be even
// (left/right pairs); a trailing odd sample is dropped.
func NewClip(samples []float32, sampleRate int) *Clip {
	if len(samples)%2 != 0 {
		samples = samples[:len(samples)-1]
	}
	return &Clip{samples: samples, sampleRate: sampleRate}
}

// Samples returns the interleaved stereo sample data. Callers must not
// modify the returned slice.
func (c *Clip) Samples() []float32 {
	return c.samples
}

// Frames returns the number of stereo frames in the clip.
func (c *Clip) Frames() int {
	return len(c.samples) / 2
}

// SampleRate returns the clip's sample rate in Hz.
func (c *Clip) SampleRate() int {
	return c.sampleRate
}

// Duration returns the clip's playing time.
func (c *Clip) Duration() time.Duration {
	if c.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(c.Frames()) / float64(c.sampleRate) * float64(time.Second))
}
