package eq

import (
	"math"
	"testing"
)

func TestGainRampValueAt(t *testing.T) {
	const rate = 44100.0
	r := &gainRamp{target: 12, start: 0, anchor: 0, tau: TimeConstant}

	if got := r.valueAt(0, rate); got != 0 {
		t.Fatalf("value at anchor = %v, want 0", got)
	}
	if got := r.valueAt(-100, rate); got != 0 {
		t.Fatalf("value before anchor = %v, want 0", got)
	}

	oneTau := int64(TimeConstant * rate)
	want := 12 * (1 - math.Exp(-1))
	if got := r.valueAt(oneTau, rate); math.Abs(got-want) > 1e-6 {
		t.Fatalf("value after one tau = %v, want %v", got, want)
	}

	if got := r.valueAt(10*oneTau, rate); got != 12 {
		t.Fatalf("settled value = %v, want exactly 12", got)
	}
}

func TestGainRampNeverOvershoots(t *testing.T) {
	const rate = 44100.0
	up := &gainRamp{target: 12, start: -3, anchor: 500, tau: TimeConstant}
	down := &gainRamp{target: -12, start: 7, anchor: 500, tau: TimeConstant}

	prevUp, prevDown := up.start, down.start
	for frame := int64(500); frame < 500+int64(3*rate); frame += 37 {
		u := up.valueAt(frame, rate)
		d := down.valueAt(frame, rate)
		if u < prevUp || u > up.target {
			t.Fatalf("rising ramp not monotonic at frame %d: %v after %v", frame, u, prevUp)
		}
		if d > prevDown || d < down.target {
			t.Fatalf("falling ramp not monotonic at frame %d: %v after %v", frame, d, prevDown)
		}
		prevUp, prevDown = u, d
	}
	if prevUp != 12 || prevDown != -12 {
		t.Fatalf("ramps did not settle: %v, %v", prevUp, prevDown)
	}
}
