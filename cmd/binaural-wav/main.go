// Command binaural-wav generates a layered binaural tone / colored noise
// mix and streams it to a WAV file.
//
// Usage:
//
//	binaural-wav -base 100 -beat 2 -duration 43200 -exponent 2
//	binaural-wav -base 200 -beat 10 -color pink -tone-volume 0.5
//	binaural-wav -beat 0 -tone-volume 0 -color brown -minutes 90  # noise only
//
// Memory use is bounded by one chunk regardless of duration, so targets
// of many hours are fine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	synth "github.com/tphakala/go-audio-synth"
)

const (
	defaultBaseFreq    = 100.0
	defaultBeatFreq    = 2.0
	defaultToneVolume  = 0.06
	defaultNoiseVolume = 0.8
	defaultExponent    = 2.0
	minutesPerHour     = 60
	secondsPerMinute   = 60
	percentScale       = 100
	progressInterval   = 10 // print progress every N%
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	baseFreq := flag.Float64("base", defaultBaseFreq, "Base tone frequency in Hz (left ear)")
	beatFreq := flag.Float64("beat", defaultBeatFreq, "Beat frequency in Hz (difference between ears)")
	toneVolume := flag.Float64("tone-volume", defaultToneVolume, "Volume multiplier for the binaural tones (0-1)")
	noiseVolume := flag.Float64("noise-volume", defaultNoiseVolume, "Volume multiplier for the colored noise (0-1)")
	exponent := flag.Float64("exponent", defaultExponent, "Noise spectral exponent: 0 white, 1 pink, 2 brown")
	color := flag.String("color", "", "Noise color name (white, silver, pearl, pink, coral, copper, brown); overrides -exponent")
	duration := flag.Float64("duration", 0, "Target duration in seconds")
	minutes := flag.Float64("minutes", 0, "Target duration in minutes")
	hours := flag.Float64("hours", 0, "Target duration in hours")
	rate := flag.Int("rate", synth.DefaultSampleRate, "Sample rate in Hz")
	chunk := flag.Float64("chunk", synth.DefaultChunkDuration, "Synthesis chunk duration in seconds")
	mono := flag.Bool("mono", false, "Write a mono file (single tone at the base frequency)")
	rms := flag.Bool("rms", false, "Normalize noise chunks by RMS instead of peak")
	noAlphaScaling := flag.Bool("no-alpha-scaling", false, "Disable exponent attenuation for alpha > 1")
	seed := flag.Uint64("seed", 0, "Noise RNG seed (0 = arbitrary)")
	output := flag.String("o", "", "Output path (default: parameter-encoded filename)")
	verbose := flag.Bool("v", false, "Verbose output with progress")
	flag.Parse()

	targetSeconds, err := resolveDuration(*duration, *minutes, *hours)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return err
	}

	alpha := *exponent
	if *color != "" {
		a, ok := synth.NoiseExponentFor(*color)
		if !ok {
			return fmt.Errorf("unknown noise color %q", *color)
		}
		alpha = a
	}

	cfg := &synth.Config{
		BaseFreq:            *baseFreq,
		BeatFreq:            *beatFreq,
		ToneVolume:          *toneVolume,
		NoiseVolume:         *noiseVolume,
		NoiseExponent:       alpha,
		DisableAlphaScaling: *noAlphaScaling,
		Duration:            targetSeconds,
		SampleRate:          *rate,
		ChunkDuration:       *chunk,
		Seed:                *seed,
	}
	if *rms {
		cfg.Normalization = synth.NoiseRMS
	}
	if *mono {
		cfg.Channels = 1
	}
	if *verbose {
		cfg.Progress = newProgressFunc()
	}

	start := time.Now()
	stats, err := synth.Generate(cfg, *output)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Exported %s\n", stats.Path)
	fmt.Printf("  %d Hz, %d channels, %d chunks, %d frames (%.2fs)\n",
		stats.SampleRate, stats.Channels, stats.Chunks, stats.Frames, stats.Duration())
	fmt.Printf("  Generated in %.2fs (%.1fx realtime)\n",
		elapsed.Seconds(), stats.Duration()/elapsed.Seconds())
	if info, statErr := os.Stat(stats.Path); statErr == nil {
		fmt.Printf("  File size: %d bytes\n", info.Size())
	}

	return nil
}

// resolveDuration combines the mutually exclusive duration flags into
// seconds.
func resolveDuration(seconds, minutes, hours float64) (float64, error) {
	set := 0
	for _, v := range []float64{seconds, minutes, hours} {
		if v != 0 {
			set++
		}
	}
	if set == 0 {
		return 0, fmt.Errorf("one of -duration, -minutes or -hours is required")
	}
	if set > 1 {
		return 0, fmt.Errorf("-duration, -minutes and -hours are mutually exclusive")
	}
	switch {
	case hours != 0:
		return hours * minutesPerHour * secondsPerMinute, nil
	case minutes != 0:
		return minutes * secondsPerMinute, nil
	default:
		return seconds, nil
	}
}

// newProgressFunc returns a callback that logs progress at percentage
// thresholds.
func newProgressFunc() func(written, total int64) {
	lastProgress := 0
	return func(written, total int64) {
		if total == 0 {
			return
		}
		progress := int(float64(written) / float64(total) * percentScale)
		if progress >= lastProgress+progressInterval {
			log.Printf("Progress: %d%%", progress)
			lastProgress = progress
		}
	}
}
