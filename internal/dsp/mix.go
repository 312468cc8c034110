package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Quantization constants.
const (
	// maxInt16 is the full-scale value for 16-bit PCM output.
	maxInt16 = 32767.0
)

// MixInto accumulates volume·signal into dst. dst and signal must have
// equal length. Callers zero dst before mixing the first source.
func MixInto(dst, signal []float64, volume float64) {
	floats.AddScaled(dst, volume, signal)
}

// InterleaveStereo writes left and right into dst as an interleaved
// stereo frame: dst[0]=left[0], dst[1]=right[0], dst[2]=left[1], ...
// dst must have length 2·len(left) and both channels equal length.
func InterleaveStereo(dst, left, right []float64) {
	f64.Interleave2(dst, left, right)
}

// ApplyGain scales the frame in place by a fixed factor.
func ApplyGain(frame []float64, gain float64) {
	f64.Scale(frame, frame, gain)
}

// ApplyEdgeFade applies a linear fade-in over the first fadeFrames and a
// fade-out over the last fadeFrames of the whole output, identified by
// absolute position. frame holds interleaved samples for channels
// channels starting at absolute frame index pos of a totalFrames-long
// output. Chunks away from the edges pass through untouched; fading
// every chunk would create periodic volume dips.
func ApplyEdgeFade(frame []float64, channels int, pos, totalFrames int64, fadeFrames int) {
	if fadeFrames <= 0 || channels <= 0 {
		return
	}

	frames := int64(len(frame) / channels)
	fadeOutStart := totalFrames - int64(fadeFrames)

	for j := int64(0); j < frames; j++ {
		abs := pos + j
		gain := 1.0
		if abs < int64(fadeFrames) {
			gain *= float64(abs) / float64(fadeFrames)
		}
		if abs >= fadeOutStart {
			gain *= float64(totalFrames-abs-1) / float64(fadeFrames)
		}
		if gain == 1.0 {
			continue
		}
		base := j * int64(channels)
		for ch := range channels {
			frame[base+int64(ch)] *= gain
		}
	}
}

// QuantizeInto converts normalized float samples to 16-bit PCM integer
// values, clamping to [-1, 1] first so output is safe for lossless
// integer storage without wraparound.
func QuantizeInto(dst []int, frame []float64) {
	for i, s := range frame {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		dst[i] = int(s * maxInt16)
	}
}

// PeakAbs returns the peak absolute value of the signal.
func PeakAbs(signal []float64) float64 {
	peak := 0.0
	for _, s := range signal {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root mean square of the signal, or 0 for an empty one.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	sumSq := f64.DotProductUnsafe(signal, signal)
	return math.Sqrt(sumSq / float64(len(signal)))
}

// ScaleToRMS scales the signal in place to the target RMS loudness.
// A silent signal is left untouched.
func ScaleToRMS(signal []float64, target float64) {
	if rms := RMS(signal); rms > 0 {
		floats.Scale(target/rms, signal)
	}
}

// LimitPeak rescales the signal in place only if its peak absolute value
// exceeds 1, preserving relative balance.
func LimitPeak(signal []float64) {
	if peak := PeakAbs(signal); peak > 1.0 {
		floats.Scale(1.0/peak, signal)
	}
}
