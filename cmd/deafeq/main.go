package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cbegin/deafeq-go"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	windowW      = 980
	windowH      = 640
	minWindowW   = 860
	minWindowH   = 560
	uiSampleRate = 48000

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale
)

var (
	bgColor     = color.RGBA{192, 192, 192, 255}
	borderColor = color.RGBA{128, 128, 128, 255}
	buttonColor = color.RGBA{192, 192, 192, 255}

	// 3D bevel colors for old-school embossed look.
	bevelLight  = color.RGBA{255, 255, 255, 255}
	bevelDarker = color.RGBA{64, 64, 64, 255}

	// Sunken panel interior.
	sunkenBgColor = color.RGBA{24, 24, 32, 255}

	boostBarColor  = color.RGBA{80, 200, 255, 220}
	cutBarColor    = color.RGBA{255, 150, 80, 220}
	targetTickTint = color.RGBA{230, 230, 230, 255}
	responseColor  = color.RGBA{120, 255, 160, 220}
)

const (
	fftSize    = 2048
	ringBufLen = 131072
)

type analyzer struct {
	mu          sync.Mutex
	sampleRate  int
	ring        []float32 // mono ring buffer
	writePos    int
	totalTapped int64 // total mono samples written since last reset
}

func newAnalyzer(sampleRate int) *analyzer {
	return &analyzer{
		sampleRate: sampleRate,
		ring:       make([]float32, ringBufLen),
	}
}

// Tap is called from the audio thread. Keep it minimal: just copy into ring.
func (a *analyzer) Tap(samples []float32) {
	a.mu.Lock()
	for i := 0; i+1 < len(samples); i += 2 {
		mono := (samples[i] + samples[i+1]) * 0.5
		a.ring[a.writePos] = mono
		a.writePos = (a.writePos + 1) % ringBufLen
		a.totalTapped++
	}
	a.mu.Unlock()
}

// Reset clears the tapped sample counter (call on new playback).
func (a *analyzer) Reset() {
	a.mu.Lock()
	a.totalTapped = 0
	a.mu.Unlock()
}

// Snapshot copies n samples aligned to what the listener actually hears.
// playbackPos is the audio driver's current output position in samples.
func (a *analyzer) Snapshot(n int, playbackPos int64) []float32 {
	if n > ringBufLen {
		n = ringBufLen
	}
	out := make([]float32, n)
	a.mu.Lock()
	// The delay is how far ahead the tap is from the speaker output.
	delay := int(a.totalTapped - playbackPos)
	if delay < 0 {
		delay = 0
	}
	if delay > ringBufLen-n {
		delay = ringBufLen - n
	}
	// Read from writePos - delay - n (i.e. what's playing now).
	start := (a.writePos - delay - n + ringBufLen*2) % ringBufLen
	for i := 0; i < n; i++ {
		out[i] = a.ring[(start+i)%ringBufLen]
	}
	a.mu.Unlock()
	return out
}

type game struct {
	engine   *deafeq.Engine
	events   <-chan deafeq.EngineEvent
	analyzer *analyzer

	assetName string

	scopeImg *ebiten.Image
	scopeW   int
	scopeH   int
	// Smoothed spectrum bins for display (log-magnitude, 0..1 range).
	specBins []float64
	wavePeak float64

	fftPlan *algofft.Plan[complex128]
	hann    []float64
	fftIn   []complex128
	fftOut  []complex128

	status    string
	statusErr bool

	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
}

func newGame(asset []byte, assetName string) (*game, error) {
	a := newAnalyzer(uiSampleRate)
	eng, err := deafeq.NewEngine(uiSampleRate, deafeq.WithSampleTap(a.Tap))
	if err != nil {
		return nil, err
	}
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}
	g := &game{
		engine:    eng,
		events:    eng.Watch(),
		analyzer:  a,
		assetName: assetName,
		fftPlan:   plan,
		hann:      window.Generate(window.TypeHann, fftSize, window.WithPeriodic()),
		fftIn:     make([]complex128, fftSize),
		fftOut:    make([]complex128, fftSize),
		textCache: make(map[string]*ebiten.Image, 256),
		viewW:     windowW,
		viewH:     windowH,
	}
	if err := eng.Load(asset); err != nil {
		g.setError(err.Error())
	} else {
		g.setStatus(fmt.Sprintf("Loaded %s (%.1fs) - press Play", assetName, eng.Duration().Seconds()))
	}
	return g, nil
}

func (g *game) Update() error {
	g.pollEvents()
	g.handleMouse()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	l := g.layoutRects()

	g.drawDarkPanel(screen, l.chart)
	g.drawDarkPanel(screen, l.scope)
	g.drawButton(screen, l.play, g.playButtonLabel(), buttonColor)
	g.drawButton(screen, l.curve, g.curveButtonLabel(), buttonColor)
	g.drawSunkenPanel(screen, l.status)

	g.drawCurveChart(screen, l.chart)
	g.drawScope(screen, l.scope)
	g.drawStatus(screen, l.status)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW < minWindowW {
		outsideW = minWindowW
	}
	if outsideH < minWindowH {
		outsideH = minWindowH
	}
	g.viewW = outsideW
	g.viewH = outsideH
	return outsideW, outsideH
}

func (g *game) Close() { _ = g.engine.Close() }

func (g *game) pollEvents() {
	for {
		select {
		case ev, ok := <-g.events:
			if !ok {
				return
			}
			if ev.Kind == deafeq.EventLoadFailed {
				g.setError("Could not decode the audio asset")
			}
		default:
			return
		}
	}
}

func (g *game) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()
	switch {
	case pointInRect(mx, my, l.play):
		g.togglePlayback()
	case pointInRect(mx, my, l.curve):
		g.toggleCurve()
	}
}

type uiLayout struct {
	chart, scope image.Rectangle
	play, curve  image.Rectangle
	status       image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w := g.viewW
	h := g.viewH
	if w < minWindowW {
		w = minWindowW
	}
	if h < minWindowH {
		h = minWindowH
	}

	pad := 20
	rowH := 44
	statusH := 40

	// Bottom: status row, then controls row above it.
	statusTop := h - pad - statusH
	controlsTop := statusTop - 8 - rowH
	contentBottom := controlsTop - 12

	// Curve chart on the left, waveform/spectrum scope on the right.
	chartW := int(float64(w-pad*2-12) * 0.46)
	if chartW < 360 {
		chartW = 360
	}
	chartRect := image.Rect(pad, pad, pad+chartW, contentBottom)
	scopeRect := image.Rect(pad+chartW+12, pad, w-pad, contentBottom)

	playRect := image.Rect(pad, controlsTop, pad+130, controlsTop+rowH)
	curveRect := image.Rect(pad+142, controlsTop, pad+360, controlsTop+rowH)
	statusRect := image.Rect(pad, statusTop, w-pad, statusTop+statusH)

	return uiLayout{
		chart: chartRect, scope: scopeRect,
		play: playRect, curve: curveRect,
		status: statusRect,
	}
}

func (g *game) playButtonLabel() string {
	if g.engine.IsPlaying() {
		return "Pause"
	}
	return "Play"
}

func (g *game) curveButtonLabel() string {
	if g.engine.CurveEnabled() {
		return "EQ Curve: On"
	}
	return "EQ Curve: Off"
}

func (g *game) togglePlayback() {
	playing, err := g.engine.TogglePlayback()
	if err != nil {
		if errors.Is(err, deafeq.ErrOutputUnavailable) {
			g.setError("Audio output not ready yet - click Play again")
			return
		}
		g.setError(err.Error())
		return
	}
	switch {
	case playing:
		g.analyzer.Reset()
		g.setStatus("Playing " + g.assetName)
	case g.engine.State() == deafeq.StateStopped:
		g.setStatus("Paused")
	default:
		g.setStatus("Nothing to play")
	}
}

func (g *game) toggleCurve() {
	want := !g.engine.CurveEnabled()
	g.engine.SetCurveEnabled(want)
	if g.engine.CurveEnabled() != want {
		g.setError("Load an asset before changing the curve")
		return
	}
	if want {
		g.setStatus("EQ curve on - band gains gliding to " + string(deafeq.CurveBassHeavy))
	} else {
		g.setStatus("EQ curve off - gliding back to flat")
	}
}

func (g *game) drawCurveChart(screen *ebiten.Image, rect image.Rectangle) {
	inner := image.Rect(rect.Min.X+10, rect.Min.Y+10, rect.Max.X-10, rect.Max.Y-10)
	if inner.Dx() < 60 || inner.Dy() < 80 {
		return
	}

	g.drawText(screen, "EQ curve (dB)", inner.Min.X, inner.Min.Y)

	plot := image.Rect(inner.Min.X, inner.Min.Y+lineH+8, inner.Max.X, inner.Max.Y-lineH-6)
	plotH := plot.Dy()
	plotW := plot.Dx()
	if plotH < 40 || plotW < 60 {
		return
	}
	centerY := plot.Min.Y + plotH/2
	scale := float64(plotH/2-4) / deafeq.GainLimitDB

	// Grid: 0 dB center line plus +/-6 and +/-12 marks.
	ebitenutil.DrawRect(screen, float64(plot.Min.X), float64(centerY), float64(plotW), 1, borderColor)
	for _, db := range []float64{6, 12} {
		off := int(db * scale)
		ebitenutil.DrawRect(screen, float64(plot.Min.X), float64(centerY-off), float64(plotW), 1, color.RGBA{60, 64, 80, 255})
		ebitenutil.DrawRect(screen, float64(plot.Min.X), float64(centerY+off), float64(plotW), 1, color.RGBA{60, 64, 80, 255})
	}

	gains := g.engine.BandGains()
	labels, targets := g.engine.ChartSeries()
	bandW := plotW / deafeq.NumBands

	for i := 0; i < deafeq.NumBands; i++ {
		bx := plot.Min.X + i*bandW
		barX := bx + bandW/4
		barW := bandW / 2
		if barW < 4 {
			barW = 4
		}

		// Bar from the 0 dB line to the instantaneous gain. Mid-ramp values
		// animate as the bands glide.
		gdb := gains[i]
		barH := int(math.Abs(gdb) * scale)
		col := boostBarColor
		y := centerY - barH
		if gdb < 0 {
			col = cutBarColor
			y = centerY + 1
		}
		if barH > 0 {
			ebitenutil.DrawRect(screen, float64(barX), float64(y), float64(barW), float64(barH), col)
		}

		// Target tick.
		ty := centerY - int(targets[i]*scale)
		ebitenutil.DrawRect(screen, float64(barX-2), float64(ty), float64(barW+4), 2, targetTickTint)

		label := labels[i]
		lx := bx + (bandW-len(label)*charW)/2
		g.drawText(screen, label, lx, plot.Max.Y+6)

		value := fmt.Sprintf("%+.0f", gdb)
		vx := bx + (bandW-len(value)*charW)/2
		g.drawText(screen, value, vx, plot.Min.Y-4)
	}

	g.drawResponseOverlay(screen, plot, centerY, scale)
}

// drawResponseOverlay traces the combined magnitude response of all six
// filters over a log frequency axis, on top of the per-band bars.
func (g *game) drawResponseOverlay(screen *ebiten.Image, plot image.Rectangle, centerY int, scale float64) {
	const points = 64
	freqs := make([]float64, points)
	logMin := math.Log(40.0)
	logMax := math.Log(18000.0)
	for i := range freqs {
		frac := float64(i) / float64(points-1)
		freqs[i] = math.Exp(logMin + frac*(logMax-logMin))
	}
	dbs := g.engine.ResponseCurveDB(freqs)

	prevX, prevY := 0, 0
	for i, db := range dbs {
		x := plot.Min.X + i*plot.Dx()/(points-1)
		off := int(db * scale)
		if off > plot.Dy()/2 {
			off = plot.Dy() / 2
		}
		if off < -plot.Dy()/2 {
			off = -plot.Dy() / 2
		}
		y := centerY - off
		if i > 0 {
			ebitenutil.DrawLine(screen, float64(prevX), float64(prevY), float64(x), float64(y), responseColor)
		}
		prevX, prevY = x, y
	}
}

func (g *game) drawScope(screen *ebiten.Image, rect image.Rectangle) {
	inner := image.Rect(rect.Min.X+8, rect.Min.Y+8, rect.Max.X-8, rect.Max.Y-8)
	width := inner.Dx()
	height := inner.Dy()
	if width <= 0 || height <= 0 {
		return
	}

	if g.scopeImg == nil || g.scopeW != width || g.scopeH != height {
		g.scopeW = width
		g.scopeH = height
		g.scopeImg = ebiten.NewImage(width, height)
	}

	g.scopeImg.Fill(color.RGBA{14, 16, 22, 255})

	// Grab latest samples aligned to what the speaker is emitting.
	snap := g.analyzer.Snapshot(fftSize, g.engine.PlaybackPosition())

	// --- Waveform (top 45%) ---
	waveH := int(float64(height) * 0.45)
	g.drawWaveform(g.scopeImg, snap, width, waveH)

	// Divider line.
	ebitenutil.DrawRect(g.scopeImg, 0, float64(waveH), float64(width), 1, color.RGBA{50, 54, 68, 180})

	// --- Spectrum analyzer (bottom 55%) ---
	specY := waveH + 1
	specH := height - specY
	g.drawSpectrumBars(g.scopeImg, snap, width, specH, specY)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
	screen.DrawImage(g.scopeImg, op)
}

func (g *game) drawWaveform(dst *ebiten.Image, samples []float32, width int, height int) {
	if len(samples) < 2 || width < 2 || height < 4 {
		return
	}
	midY := height / 2

	// Center line.
	ebitenutil.DrawRect(dst, 0, float64(midY), float64(width), 1, color.RGBA{40, 44, 58, 100})

	// Auto-gain: track peak with fast attack, slow release.
	peak := float32(0)
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	target := float64(peak)
	if target < 0.01 {
		target = 0.01
	}
	if target > g.wavePeak {
		g.wavePeak = g.wavePeak*0.3 + target*0.7
	} else {
		g.wavePeak = g.wavePeak*0.995 + target*0.005
	}
	if g.wavePeak < 0.01 {
		g.wavePeak = 0.01
	}
	gain := float64(midY-2) / g.wavePeak

	// Draw the waveform, downsampling to pixel width.
	// Use zero-crossing trigger to stabilize the display.
	triggerOffset := findZeroCrossing(samples, len(samples)/4)
	visible := len(samples) - triggerOffset
	if visible < 2 {
		visible = 2
	}

	waveColor := color.RGBA{80, 200, 255, 220}
	prevX := 0
	prevY := midY - int(float64(samples[triggerOffset])*gain)
	for px := 1; px < width; px++ {
		si := triggerOffset + px*visible/width
		if si >= len(samples) {
			si = len(samples) - 1
		}
		y := midY - int(float64(samples[si])*gain)
		ebitenutil.DrawLine(dst, float64(prevX), float64(prevY), float64(px), float64(y), waveColor)
		prevX = px
		prevY = y
	}
}

// findZeroCrossing finds a rising zero-crossing in samples to stabilize the waveform display.
func findZeroCrossing(samples []float32, searchLen int) int {
	if searchLen > len(samples)-2 {
		searchLen = len(samples) - 2
	}
	for i := 1; i < searchLen; i++ {
		if samples[i-1] <= 0 && samples[i] > 0 {
			return i
		}
	}
	return 0
}

func (g *game) drawSpectrumBars(dst *ebiten.Image, samples []float32, width int, height int, yOffset int) {
	if len(samples) < fftSize || len(g.hann) != fftSize || width < 4 || height < 4 {
		return
	}

	// Apply Hann window and run the FFT plan.
	for i := 0; i < fftSize; i++ {
		g.fftIn[i] = complex(float64(samples[len(samples)-fftSize+i])*g.hann[i], 0)
	}
	if err := g.fftPlan.Forward(g.fftOut, g.fftIn); err != nil {
		return
	}

	// Convert to log-magnitude, mapped to display bins.
	// Use log-frequency scale: map pixel columns to FFT bins logarithmically.
	numBars := width / 3
	if numBars < 16 {
		numBars = 16
	}
	if numBars > 256 {
		numBars = 256
	}

	// Ensure our smoothing buffer is the right size.
	if len(g.specBins) != numBars {
		g.specBins = make([]float64, numBars)
	}

	halfFFT := fftSize / 2
	minBin := 1                                             // skip DC
	maxBin := halfFFT * 18000 / (g.analyzer.sampleRate / 2) // up to ~18kHz
	if maxBin > halfFFT {
		maxBin = halfFFT
	}
	logMin := math.Log(float64(minBin))
	logMax := math.Log(float64(maxBin))

	for i := 0; i < numBars; i++ {
		// Log-frequency mapping.
		frac0 := float64(i) / float64(numBars)
		frac1 := float64(i+1) / float64(numBars)
		binStart := int(math.Exp(logMin + frac0*(logMax-logMin)))
		binEnd := int(math.Exp(logMin + frac1*(logMax-logMin)))
		if binEnd <= binStart {
			binEnd = binStart + 1
		}
		if binEnd > halfFFT {
			binEnd = halfFFT
		}

		// Average magnitude in this range.
		sum := 0.0
		for b := binStart; b < binEnd; b++ {
			sum += cmplx.Abs(g.fftOut[b])
		}
		avg := sum / float64(binEnd-binStart)

		// Convert to dB, normalize to 0..1 range (~-80dB to 0dB).
		db := 20.0 * math.Log10(avg/float64(fftSize)+1e-10)
		norm := (db + 80.0) / 80.0
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}

		// Smooth: fast attack, slower decay.
		prev := g.specBins[i]
		if norm > prev {
			g.specBins[i] = prev*0.3 + norm*0.7
		} else {
			g.specBins[i] = prev*0.85 + norm*0.15
		}
	}

	// Draw bars.
	barW := float64(width) / float64(numBars)
	for i := 0; i < numBars; i++ {
		v := g.specBins[i]
		barH := v * float64(height-4)
		if barH < 1 {
			barH = 1
		}
		x := float64(i) * barW
		y := float64(yOffset) + float64(height-2) - barH

		// Color gradient: blue at bottom -> green at mid -> orange/red at top.
		r, gr, b := spectrumColor(v)
		col := color.RGBA{r, gr, b, 220}
		ebitenutil.DrawRect(dst, x+1, y, barW-1, barH, col)
	}
}

func spectrumColor(v float64) (uint8, uint8, uint8) {
	if v < 0.33 {
		t := v / 0.33
		return uint8(30 + 20*t), uint8(80 + 120*t), uint8(200 + 55*t)
	}
	if v < 0.66 {
		t := (v - 0.33) / 0.33
		return uint8(50 + 140*t), uint8(200 + 30*t), uint8(255 - 100*t)
	}
	t := (v - 0.66) / 0.34
	return uint8(190 + 65*t), uint8(230 - 100*t), uint8(155 - 100*t)
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle) {
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	maxChars := max(8, (rect.Dx()-16)/charW)
	g.drawText(screen, shortenEnd(msg, maxChars), rect.Min.X+8, rect.Min.Y+6)
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func (g *game) drawSunkenPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), sunkenBgColor)
	drawSunkenBorder(screen, rect)
}

func (g *game) drawDarkPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), color.RGBA{0, 0, 0, 255})
	drawSunkenBorder(screen, rect)
}

func (g *game) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, fill color.Color) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), fill)
	drawBorder(screen, rect)
	labelW := len([]rune(label)) * charW
	x := rect.Min.X + (rect.Dx()-labelW)/2
	y := rect.Min.Y + (rect.Dy()-lineH)/2
	g.drawText(screen, label, x, y)
}

// drawBorder draws a raised 3D bevel (highlight top/left, shadow bottom/right).
func drawBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	// Outer highlight: top and left.
	ebitenutil.DrawRect(screen, x, y, w-1, 1, bevelLight)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, bevelLight)
	// Outer shadow: bottom and right.
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelDarker)
	// Inner shadow: bottom and right.
	ebitenutil.DrawRect(screen, x+1, y+h-2, w-3, 1, borderColor)
	ebitenutil.DrawRect(screen, x+w-2, y+1, 1, h-3, borderColor)
}

// drawSunkenBorder draws a sunken 3D bevel (shadow top/left, highlight bottom/right).
func drawSunkenBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	// Outer shadow: top and left.
	ebitenutil.DrawRect(screen, x, y, w-1, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, borderColor)
	// Outer highlight: bottom and right.
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelLight)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelLight)
	// Inner shadow: top and left.
	ebitenutil.DrawRect(screen, x+1, y+1, w-3, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+1, y+2, 1, h-4, bevelDarker)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		w := max(1, len([]rune(msg))*7)
		img = ebiten.NewImage(w, 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 3000 {
			g.textCache = make(map[string]*ebiten.Image, 256)
		}
		g.textCache[msg] = img
	}
	// Embossed shadow (dark offset behind text).
	opS := &ebiten.DrawImageOptions{}
	opS.GeoM.Scale(textScale, textScale)
	opS.GeoM.Translate(float64(x+2), float64(y+2))
	opS.ColorScale.Scale(0, 0, 0, 1)
	screen.DrawImage(img, opS)
	// Main text (white).
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func shortenEnd(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		return string(r[:max(0, maxChars)])
	}
	return string(r[:maxChars-3]) + "..."
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

func main() {
	var asset []byte
	name := "built-in loop"
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("read %q: %v", os.Args[1], err)
		}
		asset = data
		name = filepath.Base(os.Args[1])
	} else {
		asset = demoLoopWAV()
	}

	g, err := newGame(asset, name)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("deafeq demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
