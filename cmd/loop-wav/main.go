// Command loop-wav tiles a short seamless audio clip out to a target
// duration, writing in batches so memory stays bounded.
//
// Usage:
//
//	loop-wav -i beat.wav -o beat_30m.wav -minutes 30
//	loop-wav -i beat.wav -o beat_8h.wav -hours 8
//
// The output always contains whole repeats of the input and may slightly
// overshoot the target duration.
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
	minutesPerHour   = 60
	secondsPerMinute = 60
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("i", "", "Path to the input audio clip to loop")
	output := flag.String("o", "", "Path to write the looped output file")
	minutes := flag.Float64("minutes", 0, "Target duration in minutes")
	hours := flag.Float64("hours", 0, "Target duration in hours")
	batch := flag.Int("batch", synth.DefaultBatchRepeats, "Repeats written per batch (bounds peak memory)")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -i input.wav -o output.wav (-minutes N | -hours N)\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("input and output paths are required")
	}
	if (*minutes == 0) == (*hours == 0) {
		return fmt.Errorf("exactly one of -minutes or -hours is required")
	}

	targetSeconds := *minutes * secondsPerMinute
	if *hours != 0 {
		targetSeconds = *hours * minutesPerHour * secondsPerMinute
	}

	start := time.Now()
	log.Printf("Started at %s", start.Format(time.DateTime))

	stats, err := synth.Loop(*input, *output, targetSeconds, *batch)
	if err != nil {
		return err
	}

	fmt.Printf("Length of sample file: %.2f seconds\n", stats.InputDuration)
	fmt.Printf("Number of repeats: %d\n", stats.Repeats)
	fmt.Printf("Final duration: %.2f seconds\n", stats.Duration)
	fmt.Printf("Time taken: %.2f seconds\n", time.Since(start).Seconds())
	if info, statErr := os.Stat(stats.Path); statErr == nil {
		fmt.Printf("Final file size: %d bytes\n", info.Size())
	}
	fmt.Printf("Final file written to: %s\n", stats.Path)

	return nil
}
