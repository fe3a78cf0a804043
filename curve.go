package deafeq

import (
	inteq "github.com/cbegin/deafeq-go/internal/eq"
)

// NumBands is the number of EQ bands in a curve.
const NumBands = inteq.NumBands

// GainLimitDB bounds per-band gains to +/-12 dB.
const GainLimitDB = inteq.GainLimitDB

// BandFrequencies lists the band centers in Hz, low to high.
var BandFrequencies = inteq.Frequencies

// BandLabels holds display labels for the band centers, in band order.
var BandLabels = [NumBands]string{"60Hz", "150Hz", "250Hz", "1kHz", "4kHz", "15kHz"}

// CurveName identifies one of the fixed EQ curves.
type CurveName string

const (
	CurveFlat      CurveName = "flat"
	CurveBassHeavy CurveName = "bassHeavy"
)

// Curve is a fixed set of per-band gains in dB. The demo ships exactly two
// curves; nothing about a curve is user-editable.
type Curve struct {
	name  CurveName
	gains [NumBands]float64
}

var curves = map[CurveName]Curve{
	CurveFlat:      {name: CurveFlat},
	CurveBassHeavy: {name: CurveBassHeavy, gains: [NumBands]float64{12, 10, 4, -6, -8, -12}},
}

// GetCurve returns the named curve. Unknown names fall back to flat, so the
// lookup is total.
func GetCurve(name CurveName) Curve {
	if c, ok := curves[name]; ok {
		return c
	}
	return curves[CurveFlat]
}

// ActiveCurve maps the toggle state to its curve: enabled selects bassHeavy,
// disabled selects flat.
func ActiveCurve(enabled bool) Curve {
	if enabled {
		return GetCurve(CurveBassHeavy)
	}
	return GetCurve(CurveFlat)
}

func (c Curve) Name() CurveName { return c.name }

// Gains returns the per-band gains in dB, ordered to match BandFrequencies.
func (c Curve) Gains() [NumBands]float64 { return c.gains }

// ChartSeries returns the labels and values a bar chart consumes.
func (c Curve) ChartSeries() (labels [NumBands]string, values [NumBands]float64) {
	return BandLabels, c.gains
}
