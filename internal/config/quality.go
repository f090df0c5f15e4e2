package config

// QualityPreset bundles the baseline timing and pool-size values that
// quality_mode selects between. Values are tuned for the narration voice
// model at its native sample rate; see Load for how they combine with
// environment/file overrides.
type QualityPreset struct {
	MaxParallel          int
	MaxChunkChars        int
	MaxSentencesPerChunk int
	JobWorkers           int
	LengthScale          float64
	NoiseScale           float64
	NoiseW               float64
	SilenceSceneMs       int
	SilenceDialogueMs    int
	SilenceExclaimMs     int
	SilenceQuestionMs    int
	SilencePeriodMs      int
	SilenceCommaMs       int
	SilenceDefaultMs     int
}

// qualityPresets mirrors the three baseline profiles of the original
// synthesis service: fast (speed-first), balanced (tradeoff), max (slowest,
// highest fidelity).
var qualityPresets = map[string]QualityPreset{
	"fast": {
		MaxParallel:          6,
		MaxChunkChars:        260,
		MaxSentencesPerChunk: 3,
		JobWorkers:           4,
		LengthScale:          1.20,
		NoiseScale:           0.56,
		NoiseW:               0.66,
		SilenceSceneMs:       540,
		SilenceDialogueMs:    390,
		SilenceExclaimMs:     330,
		SilenceQuestionMs:    340,
		SilencePeriodMs:      260,
		SilenceCommaMs:       180,
		SilenceDefaultMs:     270,
	},
	"balanced": {
		MaxParallel:          4,
		MaxChunkChars:        340,
		MaxSentencesPerChunk: 2,
		JobWorkers:           3,
		LengthScale:          1.30,
		NoiseScale:           0.50,
		NoiseW:               0.60,
		SilenceSceneMs:       620,
		SilenceDialogueMs:    460,
		SilenceExclaimMs:     410,
		SilenceQuestionMs:    430,
		SilencePeriodMs:      320,
		SilenceCommaMs:       220,
		SilenceDefaultMs:     330,
	},
	"max": {
		MaxParallel:          2,
		MaxChunkChars:        560,
		MaxSentencesPerChunk: 1,
		JobWorkers:           2,
		LengthScale:          1.38,
		NoiseScale:           0.44,
		NoiseW:               0.54,
		SilenceSceneMs:       700,
		SilenceDialogueMs:    520,
		SilenceExclaimMs:     450,
		SilenceQuestionMs:    500,
		SilencePeriodMs:      380,
		SilenceCommaMs:       260,
		SilenceDefaultMs:     360,
	},
}

func presetFor(mode string) QualityPreset {
	if p, ok := qualityPresets[mode]; ok {
		return p
	}
	return qualityPresets["max"]
}
