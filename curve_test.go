package deafeq

import "testing"

func TestGetCurveIsTotal(t *testing.T) {
	cases := []struct {
		name CurveName
		want CurveName
	}{
		{CurveFlat, CurveFlat},
		{CurveBassHeavy, CurveBassHeavy},
		{CurveName("sparkle"), CurveFlat},
		{CurveName(""), CurveFlat},
	}
	for _, tc := range cases {
		if got := GetCurve(tc.name).Name(); got != tc.want {
			t.Fatalf("GetCurve(%q).Name() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestActiveCurveMapping(t *testing.T) {
	if got := ActiveCurve(true).Name(); got != CurveBassHeavy {
		t.Fatalf("enabled curve = %q, want %q", got, CurveBassHeavy)
	}
	if got := ActiveCurve(false).Name(); got != CurveFlat {
		t.Fatalf("disabled curve = %q, want %q", got, CurveFlat)
	}
}

func TestCurveGains(t *testing.T) {
	if got := GetCurve(CurveFlat).Gains(); got != [NumBands]float64{} {
		t.Fatalf("flat gains = %v, want all zero", got)
	}
	want := [NumBands]float64{12, 10, 4, -6, -8, -12}
	if got := GetCurve(CurveBassHeavy).Gains(); got != want {
		t.Fatalf("bassHeavy gains = %v, want %v", got, want)
	}
	for name, c := range curves {
		for b, g := range c.Gains() {
			if g > GainLimitDB || g < -GainLimitDB {
				t.Fatalf("curve %q band %d gain %v exceeds +/-%v dB", name, b, g, GainLimitDB)
			}
		}
	}
}

func TestChartSeries(t *testing.T) {
	labels, values := GetCurve(CurveBassHeavy).ChartSeries()
	wantLabels := [NumBands]string{"60Hz", "150Hz", "250Hz", "1kHz", "4kHz", "15kHz"}
	if labels != wantLabels {
		t.Fatalf("labels = %v, want %v", labels, wantLabels)
	}
	if values != GetCurve(CurveBassHeavy).Gains() {
		t.Fatalf("values = %v, want curve gains", values)
	}
}
