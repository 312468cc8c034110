// Command loop-video renders a long solid-color video with a looped
// audio clip underneath, for upload to platforms that require a video
// track. Requires ffmpeg on the PATH.
//
// Usage:
//
//	loop-video -i beat.wav -o beat_1h.mp4 -d 3600
//	loop-video -i noise.wav -o noise.mp4 -d 7200 -resolution 1280x720
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	synth "github.com/tphakala/go-audio-synth"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("i", "", "Path to the audio clip to loop")
	output := flag.String("o", "", "Path to the final output video")
	duration := flag.Float64("d", 0, "Target duration of the video in seconds")
	resolution := flag.String("resolution", "1920x1080", "Video resolution")
	color := flag.String("color", "black", "Canvas color")
	crf := flag.String("crf", "18", "H.264 constant rate factor (lower = higher quality)")
	preset := flag.String("preset", "veryslow", "Encoder preset (slower = better compression)")
	flag.Parse()

	if *input == "" || *output == "" || *duration == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s -i audio.wav -o video.mp4 -d seconds\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("input, output and duration are required")
	}

	cfg := synth.VideoConfig{
		Resolution: *resolution,
		Color:      *color,
		CRF:        *crf,
		Preset:     *preset,
	}

	start := time.Now()
	log.Printf("Started generation at %s", start.Format(time.DateTime))

	if err := synth.AssembleVideo(*input, *output, *duration, cfg); err != nil {
		return err
	}

	fmt.Printf("File saved to: %s\n", *output)
	fmt.Printf("Time taken: %.2f seconds\n", time.Since(start).Seconds())

	return nil
}
