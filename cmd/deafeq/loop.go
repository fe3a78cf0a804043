package main

import (
	"math"
	"math/rand"

	"github.com/cbegin/deafeq-go"
)

// demoLoopWAV synthesizes the built-in demo loop: an eight-beat pattern with
// parts spread across the six curve bands (kick at 60 Hz, bassline around
// 150-250 Hz, lead stabs near 1 kHz, hats and noise up at 4-15 kHz), so the
// curve toggle is easy to hear.
func demoLoopWAV() []byte {
	const bpm = 112.0
	const beats = 8
	rate := uiSampleRate
	beatFrames := int(float64(rate) * 60.0 / bpm)
	frames := beatFrames * beats
	buf := make([]float32, frames*2)
	rng := rand.New(rand.NewSource(7))

	// D minor bassline landing on the 150/250 Hz bands.
	bass := []float64{147.0, 147.0, 175.0, 196.0, 147.0, 147.0, 220.0, 196.0}
	// Sparse lead stabs near the 1 kHz band.
	lead := []float64{0, 880.0, 0, 1046.5, 0, 880.0, 1174.7, 0}

	for b := 0; b < beats; b++ {
		start := b * beatFrames
		addKick(buf, rate, start)
		if b%2 == 1 {
			addSnare(buf, rate, start, rng)
		}
		for s := 0; s < 4; s++ {
			open := b%4 == 3 && s == 2
			addHat(buf, rate, start+s*beatFrames/4, rng, open)
		}
		addTone(buf, rate, start, beatFrames*3/4, bass[b], 0.22, 5)
		if lead[b] > 0 {
			addTone(buf, rate, start+beatFrames/2, beatFrames/3, lead[b], 0.10, 9)
		}
	}

	// Leave headroom: the bass-heavy curve adds up to 12 dB of boost.
	peak := float32(0)
	for _, s := range buf {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak > 0.25 {
		g := 0.25 / peak
		for i := range buf {
			buf[i] *= g
		}
	}

	return deafeq.EncodeWAV(buf, rate)
}

// addKick mixes in a kick drum: a sine with a fast pitch sweep that settles
// onto the 60 Hz band.
func addKick(buf []float32, rate int, start int) {
	dur := rate / 4
	phase := 0.0
	for i := 0; i < dur; i++ {
		t := float64(i) / float64(rate)
		freq := 55.0 + 90.0*math.Exp(-t*35)
		phase += 2 * math.Pi * freq / float64(rate)
		v := math.Sin(phase) * math.Exp(-t*16) * 0.55
		mixFrame(buf, start+i, float32(v))
	}
}

func addSnare(buf []float32, rate int, start int, rng *rand.Rand) {
	dur := rate / 6
	phase := 0.0
	for i := 0; i < dur; i++ {
		t := float64(i) / float64(rate)
		phase += 2 * math.Pi * 180.0 / float64(rate)
		body := math.Sin(phase) * 0.25
		n := (rng.Float64()*2 - 1) * 0.35
		mixFrame(buf, start+i, float32((body+n)*math.Exp(-t*22)))
	}
}

func addHat(buf []float32, rate int, start int, rng *rand.Rand, open bool) {
	dur := rate / 30
	decay := 240.0
	amp := 0.10
	if open {
		dur = rate / 8
		decay = 40.0
		amp = 0.12
	}
	prev := 0.0
	for i := 0; i < dur; i++ {
		t := float64(i) / float64(rate)
		n := rng.Float64()*2 - 1
		// First difference tilts the noise toward the top bands.
		v := (n - prev) * 0.5
		prev = n
		mixFrame(buf, start+i, float32(v*amp*math.Exp(-t*decay)))
	}
}

// addTone mixes in a decaying sine with a soft second harmonic. The short
// attack ramp avoids clicks at note onsets.
func addTone(buf []float32, rate int, start int, dur int, freq float64, amp float64, decay float64) {
	attack := rate / 200
	phase := 0.0
	for i := 0; i < dur; i++ {
		t := float64(i) / float64(rate)
		phase += 2 * math.Pi * freq / float64(rate)
		env := math.Exp(-t * decay)
		if i < attack && attack > 0 {
			env *= float64(i) / float64(attack)
		}
		v := (math.Sin(phase) + 0.3*math.Sin(2*phase)) * amp * env
		mixFrame(buf, start+i, float32(v))
	}
}

func mixFrame(buf []float32, frame int, v float32) {
	i := frame * 2
	if i < 0 || i+1 >= len(buf) {
		return
	}
	buf[i] += v
	buf[i+1] += v
}
