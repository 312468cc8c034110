package synth

import "fmt"

// OutputFilename encodes the generation parameters into a filename so
// output files are traceable to the settings that produced them:
//
//	layered_mix_<base>Hz_<beat>Hz_exp<α>_tv<tone>_nv<noise>_<duration>s.wav
//
// Runs with identical parameters map to the same name and overwrite each
// other, which is idempotent by design.
func OutputFilename(cfg *Config) string {
	return fmt.Sprintf("layered_mix_%gHz_%gHz_exp%g_tv%g_nv%g_%gs.wav",
		cfg.BaseFreq, cfg.BeatFreq, cfg.NoiseExponent,
		cfg.ToneVolume, cfg.NoiseVolume, cfg.Duration)
}

// BeatFilename names a loopable beat clip by its left/right tone
// frequencies and duration.
func BeatFilename(baseFreq, beatFreq, duration float64) string {
	return fmt.Sprintf("binaural_beat_%gHz_L_%gHz_R_%.1fs.wav",
		baseFreq, baseFreq+beatFreq, duration)
}
