package synth

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-synth/internal/dsp"
	"github.com/tphakala/go-audio-synth/internal/wavio"
)

// GenerateLoopableBeat writes a short stereo binaural beat clip built to
// loop seamlessly: the duration is snapped down to a whole number of beat
// periods, and the right channel starts at phase π so the beat envelope
// sits at a zero crossing at both edges. Each channel is normalized to
// the same RMS loudness, with a shared clip-protection scale on top.
//
// The snapped duration is returned through the stats; it is at most the
// requested duration and at least one beat period. When path is empty a
// parameter-encoding filename is derived.
func GenerateLoopableBeat(baseFreq, beatFreq, duration float64, sampleRate int, path string) (stats *Stats, err error) {
	if beatFreq <= 0 {
		return nil, fmt.Errorf("%w: beat frequency must be positive, got %g", ErrInvalidConfig, beatFreq)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, duration)
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	beatPeriod := 1.0 / beatFreq
	periods := int(duration / beatPeriod)
	if periods < 1 {
		return nil, fmt.Errorf("%w: duration %gs is shorter than one beat period (%gs)", ErrInvalidConfig, duration, beatPeriod)
	}
	snapped := float64(periods) * beatPeriod

	if path == "" {
		path = BeatFilename(baseFreq, beatFreq, snapped)
	}

	left, _ := dsp.SineChunk(baseFreq, snapped, sampleRate, 0)
	right, _ := dsp.SineChunk(baseFreq+beatFreq, snapped, sampleRate, math.Pi)

	dsp.ScaleToRMS(left, dsp.RMSTarget)
	dsp.ScaleToRMS(right, dsp.RMSTarget)

	frame := make([]float64, 2*len(left))
	dsp.InterleaveStereo(frame, left, right)
	dsp.LimitPeak(frame)

	out, err := wavio.Create(path, sampleRate, stereoChannels)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	quantized := make([]int, len(frame))
	dsp.QuantizeInto(quantized, frame)
	if writeErr := out.WriteSamples(quantized); writeErr != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", writeErr)
	}

	stats = &Stats{
		Path:       path,
		Frames:     int64(len(left)),
		Chunks:     1,
		SampleRate: sampleRate,
		Channels:   stereoChannels,
	}
	return stats, nil
}
