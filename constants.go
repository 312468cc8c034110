package synth

// Default generation parameters.
const (
	// DefaultSampleRate is CD-quality audio, the standard for music.
	DefaultSampleRate = 44100

	// DefaultChunkDuration is the synthesis chunk length in seconds.
	// Ten seconds keeps peak memory around one megabyte per channel
	// while amortizing FFT setup across long runs.
	DefaultChunkDuration = 10.0

	// DefaultFadeDuration is the edge fade length in seconds, long
	// enough to suppress clicks at the start and end of the output.
	DefaultFadeDuration = 0.02

	// DefaultBatchRepeats is the number of input copies tiled per write
	// batch by the loop engine, bounding its peak memory to
	// batch × clip length.
	DefaultBatchRepeats = 100
)

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2
)

// unityGainCeiling is the mix amplitude bound below which no master
// attenuation is needed.
const unityGainCeiling = 1.0
