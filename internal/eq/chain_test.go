package eq

import (
	"math"
	"testing"
)

const testRate = 44100

func mustChain(t *testing.T) *Chain {
	t.Helper()
	c, err := NewChain(testRate)
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}
	return c
}

func stereoSineBuf(frames int, freq, amp float64) []float32 {
	buf := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		v := float32(amp * math.Sin(2*math.Pi*freq*float64(f)/testRate))
		buf[f*2] = v
		buf[f*2+1] = v
	}
	return buf
}

func rmsOf(buf []float32, from, to int) float64 {
	var sum float64
	for i := from; i < to; i++ {
		v := float64(buf[i])
		sum += v * v
	}
	return math.Sqrt(sum / float64(to-from))
}

// processSilence advances the chain clock without touching filter state.
func processSilence(c *Chain, frames int) {
	buf := make([]float32, frames*2)
	c.Process(buf)
}

func TestNewChainRejectsLowSampleRate(t *testing.T) {
	if _, err := NewChain(20000); err == nil {
		t.Fatalf("expected error for 20 kHz sample rate")
	}
}

func TestFlatChainPassesSignalThrough(t *testing.T) {
	c := mustChain(t)
	buf := stereoSineBuf(4096, 440, 0.5)
	want := make([]float32, len(buf))
	copy(want, buf)

	c.Process(buf)
	for i := range buf {
		if diff := math.Abs(float64(buf[i]) - float64(want[i])); diff > 1e-6 {
			t.Fatalf("sample %d changed by %v", i, diff)
		}
	}
}

func TestSetTargetsRampsMonotonically(t *testing.T) {
	c := mustChain(t)
	c.SetTargets([NumBands]float64{12, 0, 0, 0, 0, -12})

	prevUp, prevDown := 0.0, 0.0
	for i := 0; i < 80; i++ {
		processSilence(c, 1024)
		g := c.CurrentGains()
		if g[0] < prevUp || g[0] > 12 {
			t.Fatalf("band 0 not monotonic at step %d: %v after %v", i, g[0], prevUp)
		}
		if g[5] > prevDown || g[5] < -12 {
			t.Fatalf("band 5 not monotonic at step %d: %v after %v", i, g[5], prevDown)
		}
		prevUp, prevDown = g[0], g[5]
	}
	if prevUp != 12 {
		t.Fatalf("band 0 settled at %v, want exactly 12", prevUp)
	}
	if prevDown != -12 {
		t.Fatalf("band 5 settled at %v, want exactly -12", prevDown)
	}
}

func TestSetTargetsSameTargetKeepsRamp(t *testing.T) {
	c := mustChain(t)
	targets := [NumBands]float64{12, 10, 4, -6, -8, -12}
	c.SetTargets(targets)
	processSilence(c, 2048)

	before := c.ramps[0].Load()
	mid := c.CurrentGains()
	c.SetTargets(targets)
	if c.ramps[0].Load() != before {
		t.Fatalf("re-applying identical targets replaced the running ramp")
	}
	after := c.CurrentGains()
	for b := 0; b < NumBands; b++ {
		if after[b] != mid[b] {
			t.Fatalf("band %d value jumped from %v to %v", b, mid[b], after[b])
		}
	}
}

func TestRampRoundTripReturnsToFlat(t *testing.T) {
	c := mustChain(t)
	c.SetTargets([NumBands]float64{12, 10, 4, -6, -8, -12})
	processSilence(c, 64*1024)
	c.SetTargets([NumBands]float64{})
	processSilence(c, 64*1024)

	for b, g := range c.CurrentGains() {
		if g != 0 {
			t.Fatalf("band %d = %v after round trip, want exactly 0", b, g)
		}
	}

	buf := stereoSineBuf(4096, 440, 0.5)
	want := make([]float32, len(buf))
	copy(want, buf)
	c.Process(buf)
	for i := range buf {
		if diff := math.Abs(float64(buf[i]) - float64(want[i])); diff > 1e-6 {
			t.Fatalf("sample %d changed by %v after round trip", i, diff)
		}
	}
}

func TestTargetsClampToLimit(t *testing.T) {
	c := mustChain(t)
	c.SetTargets([NumBands]float64{20, -20, 0, 0, 0, 0})
	got := c.Targets()
	if got[0] != GainLimitDB {
		t.Fatalf("band 0 target = %v, want %v", got[0], GainLimitDB)
	}
	if got[1] != -GainLimitDB {
		t.Fatalf("band 1 target = %v, want %v", got[1], -GainLimitDB)
	}
}

func TestSetGainsAppliesImmediately(t *testing.T) {
	c := mustChain(t)
	want := [NumBands]float64{3, -3, 6, -6, 9, -9}
	c.SetGains(want)
	if got := c.CurrentGains(); got != want {
		t.Fatalf("gains = %v, want %v", got, want)
	}
}

func TestBassBoostMatchesDesignedResponse(t *testing.T) {
	c := mustChain(t)
	c.SetGains([NumBands]float64{12, 10, 4, -6, -8, -12})

	const frames = testRate
	buf := stereoSineBuf(frames, 60, 0.1)
	in := make([]float32, len(buf))
	copy(in, buf)
	c.Process(buf)

	wantDB := c.ResponseDB([]float64{60})[0]
	if wantDB < 10 {
		t.Fatalf("designed response at 60 Hz = %v dB, expected a strong boost", wantDB)
	}
	half := len(buf) / 2
	gotDB := 20 * math.Log10(rmsOf(buf, half, len(buf))/rmsOf(in, half, len(in)))
	if math.Abs(gotDB-wantDB) > 0.5 {
		t.Fatalf("measured 60 Hz gain %v dB, designed %v dB", gotDB, wantDB)
	}
}

func TestResponseDBShape(t *testing.T) {
	c := mustChain(t)

	flat := c.ResponseDB([]float64{60, 250, 1000, 4000, 15000})
	for i, db := range flat {
		if math.Abs(db) > 1e-9 {
			t.Fatalf("flat response[%d] = %v dB, want 0", i, db)
		}
	}

	c.SetGains([NumBands]float64{12, 10, 4, -6, -8, -12})
	shaped := c.ResponseDB([]float64{60, 15000})
	if shaped[0] <= 0 {
		t.Fatalf("response at 60 Hz = %v dB, want positive", shaped[0])
	}
	if shaped[1] >= 0 {
		t.Fatalf("response at 15 kHz = %v dB, want negative", shaped[1])
	}
}
