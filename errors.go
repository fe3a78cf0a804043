package deafeq

import "errors"

var (
	// ErrDecode reports an asset the engine could not decode. The engine is
	// left in StateLoadFailed and will not accept another Load.
	ErrDecode = errors.New("deafeq: undecodable audio asset")
	// ErrOutputUnavailable reports that the output device cannot produce
	// sound yet. On gesture-gated platforms this clears after the first user
	// interaction; retry the toggle.
	ErrOutputUnavailable = errors.New("deafeq: audio output unavailable")
)
