package synth

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-synth/internal/dsp"
	"github.com/tphakala/go-audio-synth/internal/wavio"
)

func TestGenerateLoopableBeat_SnapsToBeatPeriod(t *testing.T) {
	tmpDir := t.TempDir()

	// 0.3 Hz beat → 3.33s period; 5s request snaps down to one period.
	stats, err := GenerateLoopableBeat(100, 0.3, 5, 8000, filepath.Join(tmpDir, "snap.wav"))
	require.NoError(t, err)

	wantFrames := int64(math.Round((1.0 / 0.3) * 8000))
	assert.Equal(t, wantFrames, stats.Frames)
}

func TestGenerateLoopableBeat_ExactMultipleKeepsDuration(t *testing.T) {
	tmpDir := t.TempDir()

	// 2 Hz beat → 0.5s period; 5s is ten whole periods.
	stats, err := GenerateLoopableBeat(100, 2, 5, 8000, filepath.Join(tmpDir, "exact.wav"))
	require.NoError(t, err)

	assert.Equal(t, int64(5*8000), stats.Frames)
	assert.InDelta(t, 5.0, stats.Duration(), 1e-9)
	assert.Equal(t, 2, stats.Channels)
}

func TestGenerateLoopableBeat_WritesStereoFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "beat.wav")

	stats, err := GenerateLoopableBeat(100, 2, 1, 8000, path)
	require.NoError(t, err)

	clip, err := wavio.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, clip.Channels)
	assert.Equal(t, int(stats.Frames), clip.Frames())

	// Both channels carry signal at matching loudness.
	left := make([]float64, clip.Frames())
	right := make([]float64, clip.Frames())
	for f := range clip.Frames() {
		left[f] = float64(clip.Samples[f*2]) / 32767.0
		right[f] = float64(clip.Samples[f*2+1]) / 32767.0
	}
	require.Greater(t, dsp.RMS(left), 0.0)
	assert.InEpsilon(t, dsp.RMS(left), dsp.RMS(right), 0.01)
	assert.LessOrEqual(t, dsp.PeakAbs(left), 1.0)
	assert.LessOrEqual(t, dsp.PeakAbs(right), 1.0)
}

func TestGenerateLoopableBeat_EnvelopeStartsAtMinimum(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "envelope.wav")

	_, err := GenerateLoopableBeat(100, 2, 1, 44100, path)
	require.NoError(t, err)

	clip, err := wavio.ReadFile(path)
	require.NoError(t, err)

	// With the right channel offset by π, the summed signal starts at a
	// beat-envelope minimum: L+R ≈ 0 at the first frames.
	for f := range 5 {
		sum := float64(clip.Samples[f*2])/32767.0 + float64(clip.Samples[f*2+1])/32767.0
		assert.InDelta(t, 0.0, sum, 0.02, "frame %d", f)
	}
}

func TestGenerateLoopableBeat_InvalidParams(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.wav")

	_, err := GenerateLoopableBeat(100, 0, 5, 8000, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = GenerateLoopableBeat(100, 2, 0, 8000, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// Shorter than one beat period.
	_, err = GenerateLoopableBeat(100, 0.1, 5, 8000, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateLoopableBeat_DefaultFilename(t *testing.T) {
	t.Chdir(t.TempDir())

	stats, err := GenerateLoopableBeat(100, 2, 5, 8000, "")
	require.NoError(t, err)
	assert.Equal(t, BeatFilename(100, 2, 5), stats.Path)
}
