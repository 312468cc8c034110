package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/tphakala/go-audio-synth/internal/dsp"
	"github.com/tphakala/go-audio-synth/internal/wavio"
)

// Stats summarizes a completed generation run.
type Stats struct {
	// Path is the written output file.
	Path string

	// Frames is the number of per-channel frames written.
	Frames int64

	// Chunks is the number of synthesis iterations, including a final
	// truncated chunk when the duration does not divide evenly.
	Chunks int

	SampleRate int
	Channels   int
}

// Duration returns the written output length in seconds.
func (s *Stats) Duration() float64 {
	return float64(s.Frames) / float64(s.SampleRate)
}

// Generate synthesizes a layered binaural/noise mix and streams it to a
// WAV file at path chunk by chunk, so memory stays bounded regardless of
// the target duration. When path is empty a parameter-encoding filename
// is derived from the configuration.
//
// The final chunk is synthesized at exactly the remaining sample count,
// so the output duration matches the target to within one sample period
// and never exceeds it. On failure any fully flushed chunks remain on
// disk as a valid prefix; nothing is written for an invalid configuration.
func Generate(cfg *Config, path string) (stats *Stats, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.withDefaults()
	if path == "" {
		path = OutputFilename(&c)
	}

	totalFrames := int64(math.Round(c.Duration * float64(c.SampleRate)))
	if totalFrames == 0 {
		return nil, fmt.Errorf("%w: duration %gs is shorter than one sample period", ErrInvalidConfig, c.Duration)
	}

	chunkFrames := int(math.Round(c.ChunkDuration * float64(c.SampleRate)))
	if chunkFrames <= 0 || int64(chunkFrames) > totalFrames {
		chunkFrames = int(totalFrames)
	}

	fadeFrames := int(math.Round(c.FadeDuration * float64(c.SampleRate)))
	if int64(2*fadeFrames) > totalFrames {
		fadeFrames = int(totalFrames / 2)
	}

	// One oscillator per channel; each threads its own phase state so
	// chunk boundaries join without discontinuity. The noise bed is
	// shared between both ears, as a real room's ambience would be.
	left := dsp.NewOscillator(c.BaseFreq, c.SampleRate, 0)
	var right *dsp.Oscillator
	if c.Channels == stereoChannels {
		right = dsp.NewOscillator(c.BaseFreq+c.BeatFreq, c.SampleRate, 0)
	}
	noise := dsp.NewNoiseGenerator(c.SampleRate, c.NoiseExponent, !c.DisableAlphaScaling, c.noisePolicy(), noiseSeed(c.Seed))

	// Master gain is fixed up front from the mix recipe. Normalizing
	// each chunk independently would pump the loudness at chunk
	// boundaries.
	gain := masterGain(c.ToneVolume, c.NoiseVolume, c.Normalization)

	out, err := wavio.Create(path, c.SampleRate, c.Channels)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	mixL := make([]float64, chunkFrames)
	mixR := make([]float64, chunkFrames)
	frame := make([]float64, chunkFrames*c.Channels)
	intBuf := make([]int, chunkFrames*c.Channels)

	var written int64
	chunks := 0
	for written < totalFrames {
		n := chunkFrames
		if remaining := totalFrames - written; int64(n) > remaining {
			n = int(remaining)
		}

		noiseChunk, noiseErr := noise.Chunk(n)
		if noiseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNumerical, noiseErr)
		}

		lch := mixL[:n]
		clear(lch)
		dsp.MixInto(lch, left.Next(n), c.ToneVolume)
		dsp.MixInto(lch, noiseChunk, c.NoiseVolume)

		samples := frame[:n*c.Channels]
		if c.Channels == stereoChannels {
			rch := mixR[:n]
			clear(rch)
			dsp.MixInto(rch, right.Next(n), c.ToneVolume)
			dsp.MixInto(rch, noiseChunk, c.NoiseVolume)
			dsp.InterleaveStereo(samples, lch, rch)
		} else {
			copy(samples, lch)
		}

		if gain != 1.0 {
			dsp.ApplyGain(samples, gain)
		}
		dsp.ApplyEdgeFade(samples, c.Channels, written, totalFrames, fadeFrames)

		quantized := intBuf[:len(samples)]
		dsp.QuantizeInto(quantized, samples)
		if writeErr := out.WriteSamples(quantized); writeErr != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", writeErr)
		}

		written += int64(n)
		chunks++
		if c.Progress != nil {
			c.Progress(written, totalFrames)
		}
	}

	stats = &Stats{
		Path:       path,
		Frames:     written,
		Chunks:     chunks,
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
	}
	return stats, nil
}

// masterGain returns the fixed attenuation applied to every chunk. The
// bound assumes |tone| ≤ 1 and a noise peak bound set by the
// normalization policy: 1 for peak-normalized chunks, crest × target RMS
// for RMS-normalized ones.
func masterGain(toneVolume, noiseVolume float64, policy NoiseNormalization) float64 {
	noisePeak := 1.0
	if policy == NoiseRMS {
		noisePeak = dsp.RMSCrestBound * dsp.RMSTarget
	}
	ceiling := toneVolume + noiseVolume*noisePeak
	if ceiling <= unityGainCeiling {
		return 1.0
	}
	return unityGainCeiling / ceiling
}

// noiseSeed resolves the configured seed, substituting an arbitrary
// time-derived one when unset.
func noiseSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}
