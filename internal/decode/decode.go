package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

var (
	// ErrUnknownFormat indicates the asset bytes match no supported container.
	ErrUnknownFormat = errors.New("decode: unrecognized audio format")
	// ErrEmptyAsset indicates a zero-length asset.
	ErrEmptyAsset = errors.New("decode: empty asset")
	// ErrChannelCount indicates a source with more than two channels.
	ErrChannelCount = errors.New("decode: unsupported channel count")
)

// Decode sniffs the container format (WAV or MP3), decodes the asset, and
// returns a stereo clip at targetRate. Mono sources are duplicated to both
// channels; sources at other rates are resampled.
func Decode(data []byte, targetRate int) (*Clip, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("decode: invalid target rate %d", targetRate)
	}
	if len(data) == 0 {
		return nil, ErrEmptyAsset
	}
	switch {
	case isWAV(data):
		return decodeWAV(data, targetRate)
	case isMP3(data):
		return decodeMP3(data, targetRate)
	default:
		return nil, ErrUnknownFormat
	}
}

func isWAV(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return true
	}
	// Bare frame sync: 11 set bits.
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

func decodeWAV(data []byte, targetRate int) (*Clip, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.New("decode: malformed WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("decode: locate WAV data chunk: %w", err)
	}
	format := dec.Format()
	bitDepth := int(dec.SampleBitDepth())
	if bitDepth == 0 {
		return nil, errors.New("decode: WAV bit depth unknown")
	}
	bytesPerSample := (bitDepth-1)/8 + 1
	nsamples := int(dec.PCMLen()) / bytesPerSample
	if nsamples == 0 {
		return nil, errors.New("decode: WAV has no sample data")
	}
	channels := format.NumChannels
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannelCount, channels)
	}

	buf := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, nsamples),
		SourceBitDepth: bitDepth,
	}
	n, err := dec.PCMBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("decode: read WAV samples: %w", err)
	}
	if n == 0 {
		return nil, errors.New("decode: WAV has no sample data")
	}

	scale := 1.0 / math.Pow(2, float64(bitDepth-1))
	frames := n / channels
	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			chans[ch][f] = float64(buf.Data[f*channels+ch]) * scale
		}
	}
	return buildClip(chans, format.SampleRate, targetRate)
}

func decodeMP3(data []byte, targetRate int) (*Clip, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: parse MP3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode: read MP3 samples: %w", err)
	}
	// go-mp3 always emits 16-bit little-endian stereo.
	frames := len(raw) / 4
	if frames == 0 {
		return nil, errors.New("decode: MP3 has no sample data")
	}
	chans := [][]float64{make([]float64, frames), make([]float64, frames)}
	for f := 0; f < frames; f++ {
		l := int16(binary.LittleEndian.Uint16(raw[f*4:]))
		r := int16(binary.LittleEndian.Uint16(raw[f*4+2:]))
		chans[0][f] = float64(l) / 32768
		chans[1][f] = float64(r) / 32768
	}
	return buildClip(chans, dec.SampleRate(), targetRate)
}

// buildClip resamples each channel to targetRate if needed, upmixes mono to
// stereo, and interleaves into a Clip.
func buildClip(chans [][]float64, srcRate, targetRate int) (*Clip, error) {
	if srcRate <= 0 {
		return nil, fmt.Errorf("decode: invalid source rate %d", srcRate)
	}
	if srcRate != targetRate {
		for ch := range chans {
			r, err := resample.NewForRates(float64(srcRate), float64(targetRate))
			if err != nil {
				return nil, fmt.Errorf("decode: resample %d Hz to %d Hz: %w", srcRate, targetRate, err)
			}
			chans[ch] = r.Process(chans[ch])
		}
	}

	left := chans[0]
	right := left
	if len(chans) == 2 {
		right = chans[1]
	}
	frames := len(left)
	if len(right) < frames {
		frames = len(right)
	}
	if frames == 0 {
		return nil, errors.New("decode: no audio frames")
	}
	out := make([]float32, frames*2)
	for f := 0; f < frames; f++ {
		out[f*2] = clampSample(float32(left[f]))
		out[f*2+1] = clampSample(float32(right[f]))
	}
	return NewClip(out, targetRate), nil
}

func clampSample(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
