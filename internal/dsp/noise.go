package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Spectral shaping constants.
const (
	// minNoiseFreq is the low-frequency floor in Hz. Bins below it are
	// removed entirely (high-pass) and the 1/f gain is clamped at it so
	// very-low-frequency gain cannot explode.
	minNoiseFreq = 20.0

	// ditherSigma is the standard deviation of the white dither added
	// after shaping so a chunk can never be degenerate silence.
	ditherSigma = 0.001

	// RMSTarget is the loudness target used by RMS normalization.
	RMSTarget = 0.1

	// RMSCrestBound is the assumed worst-case crest factor of an
	// RMS-normalized noise chunk, used when sizing a fixed master gain.
	RMSCrestBound = 4.0

	// alphaRolloff attenuates the effective exponent for α > 1 to keep
	// low-frequency energy from swamping the rest of the band. This is a
	// perceptual tuning heuristic, not a physical law.
	alphaRolloff = 0.25

	// alphaRolloffThreshold is the exponent above which the rolloff kicks in.
	alphaRolloffThreshold = 1.0
)

// ErrNonFinite reports NaN or Inf samples after spectral shaping.
var ErrNonFinite = errors.New("spectral shaping produced non-finite samples")

// NormalizePolicy selects how a noise chunk is scaled after synthesis.
// One policy must be applied uniformly across every chunk of a run;
// adapting per chunk causes audible loudness jumps at chunk boundaries.
type NormalizePolicy int

const (
	// NormalizePeak scales each chunk so its peak absolute value is 1.
	NormalizePeak NormalizePolicy = iota

	// NormalizeRMS scales each chunk to RMSTarget loudness, then caps
	// the peak at 1 if the crest exceeds full scale.
	NormalizeRMS
)

// NoiseGenerator synthesizes chunks of colored noise whose power spectral
// density is proportional to 1/f^α. Each chunk is an independent draw from
// the same stationary process, so chunk boundaries carry no discontinuity
// beyond the noise floor itself. Not safe for concurrent use.
type NoiseGenerator struct {
	sampleRate int
	exponent   float64
	alphaScale bool
	policy     NormalizePolicy
	rng        *rand.Rand

	// FFT plan cached across chunks of the same length. Only the final
	// truncated chunk of a run differs in size.
	fft     *fourier.FFT
	fftSize int
}

// NewNoiseGenerator returns a generator for noise with spectral exponent
// exponent at the given sample rate. When alphaScale is true, exponents
// above 1 are attenuated to effective = α·(1 − 0.25·(α−1)). The seed
// makes the generator deterministic; distinct seeds give independent
// streams.
func NewNoiseGenerator(sampleRate int, exponent float64, alphaScale bool, policy NormalizePolicy, seed uint64) *NoiseGenerator {
	return &NoiseGenerator{
		sampleRate: sampleRate,
		exponent:   exponent,
		alphaScale: alphaScale,
		policy:     policy,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// EffectiveExponent returns the exponent actually applied to the
// spectrum, after the optional α > 1 rolloff.
func (g *NoiseGenerator) EffectiveExponent() float64 {
	if g.alphaScale && g.exponent > alphaRolloffThreshold {
		return g.exponent * (1.0 - alphaRolloff*(g.exponent-alphaRolloffThreshold))
	}
	return g.exponent
}

// Chunk synthesizes n samples of colored noise.
//
// A white normal-noise buffer is transformed to the frequency domain
// (n/2+1 complex bins), bins below minNoiseFreq are zeroed, the remaining
// bin magnitudes are scaled by 1/f^(eff/2), and the spectrum is inverse
// transformed back to a real time-domain signal. A small white dither is
// added before normalization so the chunk is never silent.
func (g *NoiseGenerator) Chunk(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chunk length must be positive, got %d", n)
	}

	if g.fft == nil || g.fftSize != n {
		g.fft = fourier.NewFFT(n)
		g.fftSize = n
	}

	white := make([]float64, n)
	for i := range white {
		white[i] = g.rng.NormFloat64()
	}

	spectrum := g.fft.Coefficients(nil, white)

	eff := g.EffectiveExponent()
	binHz := float64(g.sampleRate) / float64(n)
	for i := range spectrum {
		f := float64(i) * binHz
		if f < minNoiseFreq {
			// High-pass: remove DC and sub-audible bins. This also
			// keeps the 1/f gain bounded near zero.
			spectrum[i] = 0
			continue
		}
		spectrum[i] *= complex(1.0/math.Pow(f, eff/2.0), 0)
	}

	signal := g.fft.Sequence(nil, spectrum)
	// gonum's inverse transform is unnormalized.
	floats.Scale(1.0/float64(n), signal)

	for i := range signal {
		signal[i] += g.rng.NormFloat64() * ditherSigma
	}

	if !allFinite(signal) {
		return nil, fmt.Errorf("%w (exponent %g)", ErrNonFinite, g.exponent)
	}

	g.normalize(signal)
	return signal, nil
}

// normalize applies the configured loudness policy in place.
func (g *NoiseGenerator) normalize(signal []float64) {
	switch g.policy {
	case NormalizeRMS:
		if rms := RMS(signal); rms > 0 {
			floats.Scale(RMSTarget/rms, signal)
		}
		LimitPeak(signal)
	default:
		if peak := PeakAbs(signal); peak > 0 {
			floats.Scale(1.0/peak, signal)
		}
	}
}

func allFinite(signal []float64) bool {
	for _, s := range signal {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}
