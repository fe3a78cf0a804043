package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// SampleSource produces stereo interleaved float32 frames. Process must fill
// dst completely; it runs on the audio thread.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal the end of its stream.
// Once Finished reports true the next Read returns io.EOF.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// StreamReader adapts a SampleSource to the io.Reader consumed by the output
// device: stereo float32 little-endian, 8 bytes per frame.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return frames * 8, io.EOF
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }
