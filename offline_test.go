package deafeq

import (
	"errors"
	"math"
	"testing"

	inteq "github.com/cbegin/deafeq-go/internal/eq"
)

func rmsWindow(buf []float32, from, to int) float64 {
	var sum float64
	for i := from; i < to; i++ {
		v := float64(buf[i])
		sum += v * v
	}
	return math.Sqrt(sum / float64(to-from))
}

func TestRenderProcessedFlatMatchesSource(t *testing.T) {
	const rate = 44100
	const frames = rate / 5
	src := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		v := float32(0.5 * math.Sin(2*math.Pi*440*float64(f)/rate))
		src[f*2] = v
		src[f*2+1] = v
	}

	out, err := RenderProcessed(EncodeWAV(src, rate), rate, false, 0.2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != len(src) {
		t.Fatalf("rendered %d samples, want %d", len(out), len(src))
	}
	for i := range src {
		if diff := math.Abs(float64(out[i]) - float64(src[i])); diff > 1e-3 {
			t.Fatalf("sample %d off by %v with flat curve", i, diff)
		}
	}
}

func TestRenderProcessedBassHeavyBoostsBass(t *testing.T) {
	const rate = 44100
	const frames = rate
	src := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		v := float32(0.1 * math.Sin(2*math.Pi*60*float64(f)/rate))
		src[f*2] = v
		src[f*2+1] = v
	}

	out, err := RenderProcessed(EncodeWAV(src, rate), rate, true, 1.0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	chain, err := inteq.NewChain(rate)
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}
	chain.SetGains(GetCurve(CurveBassHeavy).Gains())
	wantDB := chain.ResponseDB([]float64{60})[0]
	if wantDB < 10 {
		t.Fatalf("designed response at 60 Hz = %v dB, expected a strong boost", wantDB)
	}

	half := len(out) / 2
	gotDB := 20 * math.Log10(rmsWindow(out, half, len(out))/rmsWindow(src, half, len(src)))
	if math.Abs(gotDB-wantDB) > 0.5 {
		t.Fatalf("measured 60 Hz gain %v dB, designed %v dB", gotDB, wantDB)
	}
}

func TestRenderProcessedRejectsGarbage(t *testing.T) {
	_, err := RenderProcessed([]byte("not a clip"), 44100, false, 0.1)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want %v", err, ErrDecode)
	}
}
