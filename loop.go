package synth

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-synth/internal/wavio"
)

// LoopStats summarizes a completed loop run.
type LoopStats struct {
	// Path is the written output file.
	Path string

	// Repeats is the number of input copies written.
	Repeats int

	// Frames is the number of per-channel frames written.
	Frames int64

	// InputDuration is the decoded clip length in seconds.
	InputDuration float64

	// Duration is the output length in seconds. It is always
	// Repeats × InputDuration and may overshoot the target.
	Duration float64

	SampleRate int
	Channels   int
}

// Loop tiles an existing audio clip until it reaches targetSeconds,
// writing batchRepeats copies per batch so peak memory is proportional to
// the batch rather than the whole output. batchRepeats ≤ 0 selects
// DefaultBatchRepeats.
//
// The repeat count is ceil(target / clip duration) and the final repeat
// is written whole, so the output duration always meets or overshoots the
// target. This deliberately differs from Generate, which truncates to the
// target exactly; looped clips are built to be seamless and cutting one
// mid-cycle would defeat that.
func Loop(inputPath, outputPath string, targetSeconds float64, batchRepeats int) (stats *LoopStats, err error) {
	if targetSeconds <= 0 {
		return nil, fmt.Errorf("%w: target duration must be positive, got %g", ErrInvalidConfig, targetSeconds)
	}
	if batchRepeats <= 0 {
		batchRepeats = DefaultBatchRepeats
	}

	clip, err := wavio.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	if clip.Frames() == 0 {
		return nil, fmt.Errorf("%w: input clip %s has zero duration", ErrInvalidConfig, inputPath)
	}

	clipSeconds := clip.Duration()
	repeats := LoopRepeats(targetSeconds, clipSeconds)

	out, err := wavio.Create(outputPath, clip.SampleRate, clip.Channels)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	batch := make([]int, 0, len(clip.Samples)*min(batchRepeats, repeats))
	for start := 0; start < repeats; start += batchRepeats {
		count := min(batchRepeats, repeats-start)
		batch = batch[:0]
		for range count {
			batch = append(batch, clip.Samples...)
		}
		if writeErr := out.WriteSamples(batch); writeErr != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", writeErr)
		}
	}

	stats = &LoopStats{
		Path:          outputPath,
		Repeats:       repeats,
		Frames:        int64(repeats) * int64(clip.Frames()),
		InputDuration: clipSeconds,
		Duration:      float64(repeats) * clipSeconds,
		SampleRate:    clip.SampleRate,
		Channels:      clip.Channels,
	}
	return stats, nil
}

// LoopRepeats returns the number of clip repetitions needed to reach the
// target duration: ceil(target / clip). The result never undershoots.
func LoopRepeats(targetSeconds, clipSeconds float64) int {
	return int(math.Ceil(targetSeconds / clipSeconds))
}
