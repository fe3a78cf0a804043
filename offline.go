package deafeq

import (
	"fmt"

	intdecode "github.com/cbegin/deafeq-go/internal/decode"
	inteq "github.com/cbegin/deafeq-go/internal/eq"
)

// RenderProcessed decodes an asset and renders the first seconds of its loop
// through the filter chain with the chosen curve, returning stereo
// interleaved samples. Gains are applied instantly rather than ramped, so
// the output is steady-state from the first frame.
func RenderProcessed(asset []byte, sampleRate int, curveEnabled bool, seconds float64) ([]float32, error) {
	clip, err := intdecode.Decode(asset, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	chain, err := inteq.NewChain(sampleRate)
	if err != nil {
		return nil, err
	}
	chain.SetGains(ActiveCurve(curveEnabled).Gains())
	src := &loopSource{clip: clip, chain: chain}
	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	src.Process(out)
	return out, nil
}

// EncodeWAV packs stereo interleaved samples into a 16-bit PCM WAV file.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	return intdecode.EncodeWAVInt16LE(samples, sampleRate, 2)
}
