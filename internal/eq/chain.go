package eq

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// NumBands is the number of peaking bands in a Chain.
const NumBands = 6

// Frequencies lists the band centers in Hz, low to high.
var Frequencies = [NumBands]float64{60, 150, 250, 1000, 4000, 15000}

const (
	// BandQ is the quality factor shared by all bands.
	BandQ = 1.0
	// GainLimitDB bounds band gains to +/-12 dB.
	GainLimitDB = 12.0
	// TimeConstant is the gain ramp time constant in seconds.
	TimeConstant = 0.12

	// controlInterval is the number of frames rendered between gain refreshes.
	controlInterval = 64

	// rebuildDB is the minimum gain movement that triggers a coefficient rebuild.
	rebuildDB = 0.01
)

// Chain runs stereo interleaved samples through NumBands peaking filters in
// series. Gains are the only mutable parameter after construction. Retargets
// are published as ramps and picked up lock-free by the audio thread, which
// rebuilds coefficients in place so the filter state carries across without
// clicks.
type Chain struct {
	sampleRate float64

	ramps [NumBands]atomic.Pointer[gainRamp]
	clock atomic.Int64 // frames rendered so far

	// Audio-thread state.
	sections [NumBands][2]*biquad.Section // [band][channel]
	applied  [NumBands]float64            // gains currently baked into sections
}

// NewChain creates a chain with every band flat. The sample rate must keep
// every band center below Nyquist.
func NewChain(sampleRate int) (*Chain, error) {
	top := Frequencies[NumBands-1]
	if float64(sampleRate) <= 2*top {
		return nil, fmt.Errorf("eq: sample rate %d cannot represent %g Hz band", sampleRate, top)
	}
	c := &Chain{sampleRate: float64(sampleRate)}
	for b := 0; b < NumBands; b++ {
		co := design.Peak(Frequencies[b], 0, BandQ, c.sampleRate)
		c.sections[b][0] = biquad.NewSection(co)
		c.sections[b][1] = biquad.NewSection(co)
		c.ramps[b].Store(&gainRamp{tau: TimeConstant})
	}
	return c, nil
}

func clampGain(db float64) float64 {
	if db > GainLimitDB {
		return GainLimitDB
	}
	if db < -GainLimitDB {
		return -GainLimitDB
	}
	return db
}

// SetTargets retargets every band. Each ramp starts from the band's current
// value at the moment of the call. A band already headed to the same target
// keeps its running ramp.
func (c *Chain) SetTargets(gains [NumBands]float64) {
	now := c.clock.Load()
	for b := 0; b < NumBands; b++ {
		t := clampGain(gains[b])
		old := c.ramps[b].Load()
		if old.target == t {
			continue
		}
		c.ramps[b].Store(&gainRamp{
			target: t,
			start:  old.valueAt(now, c.sampleRate),
			anchor: now,
			tau:    TimeConstant,
		})
	}
}

// SetGains applies gains immediately, without ramping.
func (c *Chain) SetGains(gains [NumBands]float64) {
	now := c.clock.Load()
	for b := 0; b < NumBands; b++ {
		t := clampGain(gains[b])
		c.ramps[b].Store(&gainRamp{target: t, start: t, anchor: now, tau: TimeConstant})
	}
}

// Targets returns the gain each band is ramping toward.
func (c *Chain) Targets() [NumBands]float64 {
	var out [NumBands]float64
	for b := 0; b < NumBands; b++ {
		out[b] = c.ramps[b].Load().target
	}
	return out
}

// CurrentGains returns the instantaneous ramp value of each band in dB.
func (c *Chain) CurrentGains() [NumBands]float64 {
	now := c.clock.Load()
	var out [NumBands]float64
	for b := 0; b < NumBands; b++ {
		out[b] = c.ramps[b].Load().valueAt(now, c.sampleRate)
	}
	return out
}

// Process filters a stereo interleaved buffer in place. Gains are refreshed
// every controlInterval frames.
func (c *Chain) Process(buf []float32) {
	frames := len(buf) / 2
	pos := 0
	for pos < frames {
		n := controlInterval
		if rem := frames - pos; rem < n {
			n = rem
		}
		c.refreshGains()
		for f := pos; f < pos+n; f++ {
			l := float64(buf[f*2])
			r := float64(buf[f*2+1])
			for b := 0; b < NumBands; b++ {
				l = c.sections[b][0].ProcessSample(l)
				r = c.sections[b][1].ProcessSample(r)
			}
			buf[f*2] = float32(l)
			buf[f*2+1] = float32(r)
		}
		c.clock.Add(int64(n))
		pos += n
	}
}

// refreshGains rebuilds band coefficients whose ramp value has moved since
// the last rebuild. Swapping coefficients keeps each section's delay line.
func (c *Chain) refreshGains() {
	now := c.clock.Load()
	for b := 0; b < NumBands; b++ {
		r := c.ramps[b].Load()
		g := r.valueAt(now, c.sampleRate)
		if g == c.applied[b] {
			continue
		}
		if g != r.target && math.Abs(g-c.applied[b]) < rebuildDB {
			continue
		}
		co := design.Peak(Frequencies[b], g, BandQ, c.sampleRate)
		c.sections[b][0].Coefficients = co
		c.sections[b][1].Coefficients = co
		c.applied[b] = g
	}
}

// Reset clears the filter delay lines. Gains and ramps are unaffected.
func (c *Chain) Reset() {
	for b := range c.sections {
		c.sections[b][0].Reset()
		c.sections[b][1].Reset()
	}
}

// ResponseDB evaluates the chain's combined magnitude response in dB at the
// given frequencies, using the instantaneous ramp gains.
func (c *Chain) ResponseDB(freqs []float64) []float64 {
	gains := c.CurrentGains()
	var coeffs [NumBands]biquad.Coefficients
	for b := 0; b < NumBands; b++ {
		coeffs[b] = design.Peak(Frequencies[b], gains[b], BandQ, c.sampleRate)
	}
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		var db float64
		for b := 0; b < NumBands; b++ {
			db += coeffs[b].MagnitudeDB(f, c.sampleRate)
		}
		out[i] = db
	}
	return out
}
