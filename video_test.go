package synth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioLoopCount(t *testing.T) {
	cases := []struct {
		name   string
		target float64
		clip   float64
		want   int
	}{
		{"even_division", 120, 5, 23},     // floor(24) - 1
		{"uneven_division", 100, 7, 13},   // floor(14.28) - 1
		{"target_shorter_than_clip", 3, 5, 0},
		{"target_equals_clip", 5, 5, 0},
		{"just_over_one_clip", 7, 5, 0},
		{"two_clips", 10, 5, 1},
		{"zero_clip_duration", 10, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AudioLoopCount(tc.target, tc.clip))
		})
	}
}

func TestVideoConfigDefaults(t *testing.T) {
	c := VideoConfig{}.withDefaults()

	assert.Equal(t, "1920x1080", c.Resolution)
	assert.Equal(t, "black", c.Color)
	assert.Equal(t, "libx264", c.VideoCodec)
	assert.Equal(t, "18", c.CRF)
	assert.Equal(t, "veryslow", c.Preset)
	assert.Equal(t, "yuv420p", c.PixelFormat)
	assert.Equal(t, "aac", c.AudioCodec)
	assert.Equal(t, "192k", c.AudioBitrate)

	// Explicit settings survive.
	c = VideoConfig{Resolution: "1280x720", CRF: "23"}.withDefaults()
	assert.Equal(t, "1280x720", c.Resolution)
	assert.Equal(t, "23", c.CRF)
	assert.Equal(t, "libx264", c.VideoCodec)
}

func TestAssembleVideo_InvalidTarget(t *testing.T) {
	err := AssembleVideo("in.wav", "out.mp4", 0, VideoConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAssembleVideo_MissingEncoder(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := AssembleVideo("in.wav", filepath.Join(t.TempDir(), "out.mp4"), 60, VideoConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg not found in PATH")
}
