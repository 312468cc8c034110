package wavio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_InvalidParams(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.wav")

	_, err := Create(path, 0, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample rate")

	_, err = Create(path, 44100, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel count")
}

func TestCreate_InvalidDirectory(t *testing.T) {
	_, err := Create("/nonexistent/dir/out.wav", 44100, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWriter_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.wav")

	w, err := Create(path, 8000, 2)
	require.NoError(t, err)

	samples := []int{0, 100, -100, 32767, -32767, 7, 8, -9}
	require.NoError(t, w.WriteSamples(samples[:4]))
	require.NoError(t, w.WriteSamples(samples[4:]))
	assert.Equal(t, int64(4), w.Frames())
	require.NoError(t, w.Close())

	clip, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, clip.SampleRate)
	assert.Equal(t, 2, clip.Channels)
	assert.Equal(t, 16, clip.BitDepth)
	assert.Equal(t, 4, clip.Frames())
	assert.Equal(t, samples, clip.Samples)
}

func TestWriter_IncrementalWritesStayValid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "incremental.wav")

	w, err := Create(path, 44100, 1)
	require.NoError(t, err)

	const chunks = 20
	chunk := make([]int, 441)
	for i := range chunk {
		chunk[i] = i - 220
	}
	for range chunks {
		require.NoError(t, w.WriteSamples(chunk))
	}
	require.NoError(t, w.Close())

	clip, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, chunks*len(chunk), clip.Frames())
}

func TestWriter_HeaderAccounting(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "header.wav")

	w, err := Create(path, 8000, 2)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(make([]int, 1000)))
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	// 44-byte header plus 2 bytes per sample.
	assert.Equal(t, int64(headerSize+1000*bytesPerSample), info.Size())
}

func TestWriter_SampleTruncation(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "trunc.wav")

	w, err := Create(path, 8000, 1)
	require.NoError(t, err)
	// Values beyond int16 range are truncated to 16 bits, matching the
	// quantizer's contract that callers clamp beforehand.
	require.NoError(t, w.WriteSamples([]int{32767, -32768}))
	require.NoError(t, w.Close())

	clip, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []int{32767, -32768}, clip.Samples)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadFile_NotWAV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestClip_Duration(t *testing.T) {
	clip := &Clip{
		Samples:    make([]int, 44100*2),
		SampleRate: 44100,
		Channels:   2,
	}
	assert.Equal(t, 44100, clip.Frames())
	assert.InDelta(t, 1.0, clip.Duration(), 1e-12)
}

func TestProbeDuration(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "probe.wav")

	w, err := Create(path, 8000, 2)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(make([]int, 8000*2))) // one second
	require.NoError(t, w.Close())

	seconds, err := ProbeDuration(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, seconds, 1e-6)
}

func TestWriter_OutputReadableByDecoder(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "decode.wav")

	w, err := Create(path, 44100, 2)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(make([]int, 882)))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	require.True(t, decoder.IsValidFile())
	assert.Equal(t, 44100, decoder.Format().SampleRate)
	assert.Equal(t, 2, decoder.Format().NumChannels)
	assert.Equal(t, uint16(16), decoder.BitDepth)
}
