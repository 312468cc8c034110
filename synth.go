package synth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-audio-synth/internal/dsp"
)

// Common errors returned by the synthesis pipeline.
var (
	// ErrInvalidConfig indicates invalid generation parameters.
	ErrInvalidConfig = errors.New("invalid synthesis configuration")

	// ErrNumerical indicates synthesis produced non-finite values.
	// The run is aborted rather than writing corrupted samples.
	ErrNumerical = errors.New("numerical failure during synthesis")
)

// NoiseNormalization selects the loudness policy for colored-noise chunks.
// The chosen policy applies uniformly to every chunk of a run.
type NoiseNormalization int

const (
	// NoisePeak scales each noise chunk so its peak amplitude is 1.
	// This is the default and matches a layered tone/noise mix, where
	// the mix recipe's fixed volumes set the final balance.
	NoisePeak NoiseNormalization = iota

	// NoiseRMS scales each noise chunk to a fixed RMS loudness. Useful
	// for standalone noise output where perceived loudness should not
	// depend on the spectral exponent.
	NoiseRMS
)

// NoiseColors maps conventional noise color names to spectral exponents.
var NoiseColors = map[string]float64{
	"white":  0.0,
	"silver": 0.3,
	"pearl":  0.6,
	"pink":   1.0,
	"coral":  1.3,
	"copper": 1.6,
	"brown":  2.0,
}

// NoiseExponentFor looks up the spectral exponent for a color name,
// case-insensitively. The second return is false for unknown names.
func NoiseExponentFor(name string) (float64, bool) {
	alpha, ok := NoiseColors[strings.ToLower(name)]
	return alpha, ok
}

// Config describes one layered generation run: a binaural tone pair mixed
// over a colored-noise bed, streamed chunk by chunk to a WAV file.
type Config struct {
	// BaseFreq is the tone frequency in Hz delivered to the left ear.
	BaseFreq float64

	// BeatFreq is the frequency difference in Hz added for the right
	// ear. The perceived beat pulses at this rate.
	BeatFreq float64

	// ToneVolume weights the binaural tone layer (typically 0-1).
	ToneVolume float64

	// NoiseVolume weights the colored-noise layer (typically 0-1).
	NoiseVolume float64

	// NoiseExponent is the spectral exponent α: 0 = white, 1 = pink,
	// 2 = brown. See NoiseColors for intermediate shades.
	NoiseExponent float64

	// DisableAlphaScaling turns off the perceptual attenuation of
	// exponents above 1. With scaling on (the default), the effective
	// exponent is α·(1 − 0.25·(α−1)) so low frequencies do not swamp
	// the band at high α.
	DisableAlphaScaling bool

	// Normalization is the per-chunk noise loudness policy.
	Normalization NoiseNormalization

	// Duration is the total output length in seconds. Must be positive.
	Duration float64

	// SampleRate in Hz. Defaults to DefaultSampleRate.
	SampleRate int

	// Channels is 1 (mono tone at BaseFreq) or 2 (stereo binaural).
	// Defaults to stereo.
	Channels int

	// ChunkDuration is the synthesis granularity in seconds. Memory
	// usage is proportional to one chunk regardless of Duration.
	// Defaults to DefaultChunkDuration.
	ChunkDuration float64

	// FadeDuration is the linear fade-in/fade-out length in seconds,
	// applied once at the edges of the whole output, never per chunk.
	// Defaults to DefaultFadeDuration.
	FadeDuration float64

	// Seed fixes the noise generator's random stream. Zero selects an
	// arbitrary seed; runs with the same nonzero seed are reproducible.
	Seed uint64

	// Progress, when non-nil, is called after each written chunk with
	// the cumulative and total frame counts.
	Progress func(framesWritten, totalFrames int64)
}

// Validate checks the configuration without applying defaults.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.ToneVolume < 0 || c.NoiseVolume < 0 {
		return fmt.Errorf("%w: volumes must be non-negative", ErrInvalidConfig)
	}
	if c.NoiseExponent < 0 {
		return fmt.Errorf("%w: noise exponent must be non-negative, got %g", ErrInvalidConfig, c.NoiseExponent)
	}
	if c.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Channels != 0 && c.Channels != monoChannels && c.Channels != stereoChannels {
		return fmt.Errorf("%w: channels must be 1 or 2, got %d", ErrInvalidConfig, c.Channels)
	}
	if c.ChunkDuration < 0 {
		return fmt.Errorf("%w: chunk duration must be positive, got %g", ErrInvalidConfig, c.ChunkDuration)
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("%w: fade duration must be non-negative, got %g", ErrInvalidConfig, c.FadeDuration)
	}
	return nil
}

// withDefaults returns a copy with zero-valued fields filled in.
func (c *Config) withDefaults() Config {
	out := *c
	if out.SampleRate == 0 {
		out.SampleRate = DefaultSampleRate
	}
	if out.Channels == 0 {
		out.Channels = stereoChannels
	}
	if out.ChunkDuration == 0 {
		out.ChunkDuration = DefaultChunkDuration
	}
	if out.FadeDuration == 0 {
		out.FadeDuration = DefaultFadeDuration
	}
	return out
}

// noisePolicy maps the public normalization choice onto the DSP layer.
func (c *Config) noisePolicy() dsp.NormalizePolicy {
	if c.Normalization == NoiseRMS {
		return dsp.NormalizeRMS
	}
	return dsp.NormalizePeak
}
