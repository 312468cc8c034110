package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// Clip is a fully decoded audio clip. Inputs are short loopable segments,
// so reading them whole is acceptable; long outputs are never read back.
type Clip struct {
	// Samples holds interleaved integer PCM values.
	Samples    []int
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadFile decodes an entire WAV file into memory. It rejects files whose
// format is unusable (zero channels or sample rate).
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("unusable WAV file %s: zero channels", path)
	}
	if buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("unusable WAV file %s: zero sample rate", path)
	}

	return &Clip{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   int(decoder.BitDepth),
	}, nil
}

// Frames returns the number of per-channel frames in the clip.
func (c *Clip) Frames() int {
	return len(c.Samples) / c.Channels
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return float64(c.Frames()) / float64(c.SampleRate)
}

// ProbeDuration reads just enough of a WAV file to report its duration in
// seconds, without decoding sample data into memory.
func ProbeDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read duration of %s: %w", path, err)
	}
	return d.Seconds(), nil
}
