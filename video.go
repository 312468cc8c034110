package synth

import (
	"bytes"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tphakala/go-audio-synth/internal/wavio"
)

// Default encoder parameters for video assembly.
const (
	defaultResolution   = "1920x1080"
	defaultCanvasColor  = "black"
	defaultVideoCodec   = "libx264"
	defaultCRF          = "18"      // lower = higher quality, 18-28 is sensible
	defaultPreset       = "veryslow"
	defaultPixelFormat  = "yuv420p" // widely compatible
	defaultAudioCodec   = "aac"
	defaultAudioBitrate = "192k"
)

// VideoConfig controls the external ffmpeg invocation that wraps a
// generated audio clip in a long solid-color video. Zero-valued fields
// take the defaults above.
type VideoConfig struct {
	Resolution   string // e.g. "1920x1080"
	Color        string // lavfi color name for the canvas
	VideoCodec   string
	CRF          string
	Preset       string
	PixelFormat  string
	AudioCodec   string
	AudioBitrate string
}

func (c VideoConfig) withDefaults() VideoConfig {
	if c.Resolution == "" {
		c.Resolution = defaultResolution
	}
	if c.Color == "" {
		c.Color = defaultCanvasColor
	}
	if c.VideoCodec == "" {
		c.VideoCodec = defaultVideoCodec
	}
	if c.CRF == "" {
		c.CRF = defaultCRF
	}
	if c.Preset == "" {
		c.Preset = defaultPreset
	}
	if c.PixelFormat == "" {
		c.PixelFormat = defaultPixelFormat
	}
	if c.AudioCodec == "" {
		c.AudioCodec = defaultAudioCodec
	}
	if c.AudioBitrate == "" {
		c.AudioBitrate = defaultAudioBitrate
	}
	return c
}

// AudioLoopCount returns the -stream_loop value passed to the encoder:
// floor(target/clip) − 1, clamped to zero. The encoder plays the input
// once plus this many extra passes and the shortest-stream flag trims the
// tail against the video track, so the count leans low rather than high.
// Preserved as-is from the original pipeline; do not "fix" without
// re-testing encoder edge behavior.
func AudioLoopCount(targetSeconds, clipSeconds float64) int {
	if clipSeconds <= 0 {
		return 0
	}
	n := int(math.Floor(targetSeconds/clipSeconds)) - 1
	if n < 0 {
		n = 0
	}
	return n
}

// AssembleVideo renders a solid-color video of targetSeconds with the
// audio clip looped underneath, by invoking ffmpeg as a subprocess.
// A missing binary, a non-zero exit, or unusable audio input all surface
// as fatal errors; encoder stderr is included in the failure message.
func AssembleVideo(audioPath, outputPath string, targetSeconds float64, cfg VideoConfig) error {
	if targetSeconds <= 0 {
		return fmt.Errorf("%w: target duration must be positive, got %g", ErrInvalidConfig, targetSeconds)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	clipSeconds, err := wavio.ProbeDuration(audioPath)
	if err != nil {
		return err
	}
	if clipSeconds <= 0 {
		return fmt.Errorf("%w: audio clip %s has zero duration", ErrInvalidConfig, audioPath)
	}

	c := cfg.withDefaults()
	loops := AudioLoopCount(targetSeconds, clipSeconds)

	args := []string{
		"-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%s:d=%g", c.Color, c.Resolution, targetSeconds),
		"-stream_loop", strconv.Itoa(loops),
		"-i", audioPath,
		"-c:v", c.VideoCodec,
		"-crf", c.CRF,
		"-preset", c.Preset,
		"-pix_fmt", c.PixelFormat,
		"-c:a", c.AudioCodec,
		"-b:a", c.AudioBitrate,
		"-shortest",
		"-y", outputPath,
	}

	cmd := exec.Command("ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
