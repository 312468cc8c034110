// Package wavio provides streaming WAV output and whole-file WAV input
// for the synthesis pipeline. The writer appends 16-bit PCM data
// incrementally and patches the RIFF sizes on Close, so memory stays
// bounded for arbitrarily long outputs and an interrupted run leaves all
// fully flushed chunks on disk.
package wavio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// WAV header layout.
	headerSize     = 44 // total header size in bytes
	riffHeaderSize = 36 // file size field = riffHeaderSize + dataSize
	pcmSubchunkLen = 16 // fmt subchunk size for PCM
	fileSizeOffset = 4  // byte offset of the RIFF size field
	dataSizeOffset = 40 // byte offset of the data size field

	// Output is always 16-bit signed PCM.
	bitsPerSample  = 16
	bytesPerSample = 2

	// I/O buffer sizes.
	writerBufferSize = 256 * 1024
	uint32Size       = 4
)

// Writer streams interleaved 16-bit PCM samples to a WAV file. It writes
// a header with placeholder sizes up front so samples can be appended one
// chunk at a time, then fills in the real sizes when closed.
type Writer struct {
	f          *os.File
	w          *bufio.Writer
	sampleRate int
	channels   int
	dataSize   uint32
	byteBuf    []byte
}

// Create opens path for writing and emits the WAV header. The caller
// must Close the writer to finalize the header fields.
func Create(path string, sampleRate, channels int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("channel count must be at least 1, got %d", channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := &Writer{
		f:          f,
		w:          bufio.NewWriterSize(f, writerBufferSize),
		sampleRate: sampleRate,
		channels:   channels,
	}

	if err := w.writeHeader(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	return w, nil
}

func (w *Writer) writeHeader() error {
	byteRate := w.sampleRate * w.channels * bytesPerSample
	blockAlign := w.channels * bytesPerSample

	header := make([]byte, headerSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // placeholder for file size - 8
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], pcmSubchunkLen)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // placeholder for data size

	_, err := w.w.Write(header)
	return err
}

// WriteSamples appends interleaved samples, each truncated to the 16-bit
// signed range.
func (w *Writer) WriteSamples(samples []int) error {
	needed := len(samples) * bytesPerSample
	if cap(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(int16(s)))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Frames returns the number of per-channel frames written so far.
func (w *Writer) Frames() int64 {
	return int64(w.dataSize) / int64(bytesPerSample*w.channels)
}

// SampleRate returns the writer's sample rate in Hz.
func (w *Writer) SampleRate() int { return w.sampleRate }

// Channels returns the writer's channel count.
func (w *Writer) Channels() int { return w.channels }

// Close flushes buffered samples, patches the RIFF and data size fields
// with the final counts, and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.f.Close()
		return err
	}

	fileSize := riffHeaderSize + w.dataSize

	sizeBytes := make([]byte, uint32Size)
	if _, err := w.f.Seek(fileSizeOffset, io.SeekStart); err != nil {
		_ = w.f.Close()
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, fileSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		_ = w.f.Close()
		return err
	}

	if _, err := w.f.Seek(dataSizeOffset, io.SeekStart); err != nil {
		_ = w.f.Close()
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		_ = w.f.Close()
		return err
	}

	return w.f.Close()
}
