// Package synth generates synthetic relaxation/focus audio in pure Go:
// binaural tone pairs, FFT-shaped colored noise, and layered stereo mixes,
// streamed to 16-bit PCM WAV files chunk by chunk so hours-long outputs
// use bounded memory.
//
// # Features
//
//   - Phase-continuous sine oscillators: consecutive chunks join without
//     discontinuity, with the phase threaded explicitly through each call
//   - Colored noise with power spectral density ∝ 1/f^α via a real FFT
//     (white α=0, pink α=1, brown α=2, and named shades in between)
//   - Chunked streaming WAV writer with truncating duration accounting
//   - Loop engine that tiles a short seamless clip out to a target
//     duration in batched writes
//   - Solid-color video assembly around looped audio via an external
//     ffmpeg process
//
// # Quick Start
//
// Generate twelve hours of brown noise with a soft delta-range binaural
// tone underneath:
//
//	cfg := &synth.Config{
//	    BaseFreq:      100,
//	    BeatFreq:      2,
//	    ToneVolume:    0.06,
//	    NoiseVolume:   0.8,
//	    NoiseExponent: 2,
//	    Duration:      43200,
//	}
//	stats, err := synth.Generate(cfg, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%.0fs)\n", stats.Path, stats.Duration())
//
// Loop an existing five-second clip out to an hour:
//
//	stats, err := synth.Loop("beat.wav", "beat_1h.wav", 3600, 0)
//
// # Duration policies
//
// Generate truncates its final chunk so the output matches the requested
// duration to within one sample period. Loop never truncates: it writes
// whole repeats and may overshoot the target, because cutting a seamless
// clip mid-cycle would produce an audible click. Both policies are
// intentional and serve different callers.
//
// # Thread Safety
//
// Each generation run owns its own oscillator phase state and output
// file. Concurrent runs are safe as long as they target distinct output
// paths; individual generators are not safe for concurrent use.
package synth
