package eq

import "math"

// snapDB is the distance from target below which a ramp is treated as settled.
const snapDB = 1e-3

// gainRamp describes an exponential approach from start toward target,
// anchored at the frame counter value current when the retarget was issued.
// A published ramp is immutable; retargeting publishes a new one.
type gainRamp struct {
	target float64 // dB
	start  float64 // dB
	anchor int64   // frame index at publish time
	tau    float64 // seconds
}

// valueAt returns the ramp gain in dB at the given frame. Once the value is
// within snapDB of the target it returns the target exactly.
func (r *gainRamp) valueAt(frame int64, sampleRate float64) float64 {
	if frame <= r.anchor {
		return r.start
	}
	dt := float64(frame-r.anchor) / sampleRate
	g := r.target + (r.start-r.target)*math.Exp(-dt/r.tau)
	if math.Abs(g-r.target) <= snapDB {
		return r.target
	}
	return g
}
