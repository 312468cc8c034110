package dsp

import "math"

// twoPi is a full circle in radians, used for phase wrapping.
const twoPi = 2 * math.Pi

// SineChunk generates round(duration*sampleRate) samples of
// sin(2π·freq·t + phase) over the half-open interval [0, duration) and
// returns the phase offset to pass into the next call:
//
//	newPhase = (phase + 2π·freq·duration) mod 2π
//
// Chaining the returned phase into the next call joins consecutive chunks
// without a waveform discontinuity. SineChunk is a pure function of its
// four inputs.
//
// A zero frequency yields a constant signal at sin(phase). Negative
// frequencies are permitted and reverse the apparent direction.
func SineChunk(freq, duration float64, sampleRate int, phase float64) ([]float64, float64) {
	n := int(math.Round(duration * float64(sampleRate)))
	if n < 0 {
		n = 0
	}

	samples := make([]float64, n)
	step := twoPi * freq / float64(sampleRate)
	for i := range n {
		samples[i] = math.Sin(phase + float64(i)*step)
	}

	newPhase := math.Mod(phase+twoPi*freq*duration, twoPi)
	if newPhase < 0 {
		newPhase += twoPi
	}

	return samples, newPhase
}

// Oscillator produces successive phase-continuous sine chunks. The phase
// state is explicit and owned by the oscillator, so chunk N+1 starts
// exactly where chunk N ended. One oscillator serves one channel; it is
// not safe for concurrent use.
type Oscillator struct {
	freq       float64
	sampleRate int
	phase      float64
}

// NewOscillator returns an oscillator at the given frequency and sample
// rate, starting at the given phase offset in radians.
func NewOscillator(freq float64, sampleRate int, phase float64) *Oscillator {
	return &Oscillator{
		freq:       freq,
		sampleRate: sampleRate,
		phase:      phase,
	}
}

// Next returns the next n samples and advances the phase state.
func (o *Oscillator) Next(n int) []float64 {
	duration := float64(n) / float64(o.sampleRate)
	chunk, newPhase := SineChunk(o.freq, duration, o.sampleRate, o.phase)
	o.phase = newPhase
	return chunk
}

// Phase returns the current phase offset in radians, in [0, 2π).
func (o *Oscillator) Phase() float64 {
	return o.phase
}
