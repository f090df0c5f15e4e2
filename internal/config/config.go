// Package config builds the immutable EngineConfig threaded through the
// narration pipeline. It is read once at process startup (see cmd/narrator)
// and never mutated afterward, so every pipeline stage can treat it as a
// plain read-only value instead of reaching into ambient globals.
package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig is the process-wide, read-only configuration for one engine
// instance. See SPEC_FULL.md §4 for the full enumerated surface.
type EngineConfig struct {
	QualityMode string

	MaxParallel          int
	MaxChunkChars        int
	MaxSentencesPerChunk int
	JobWorkers           int

	DefaultLengthScale float64
	DefaultNoiseScale  float64
	DefaultNoiseW      float64

	SilenceSceneMs    int
	SilenceDialogueMs int
	SilenceExclaimMs  int
	SilenceQuestionMs int
	SilencePeriodMs   int
	SilenceCommaMs    int
	SilenceDefaultMs  int

	EnableDynamicChunkTuning bool

	EnableOutputNormalization bool
	OutputTargetPeak          float64
	OutputEdgeFadeMs          int

	EnableCharacterVoiceVariation bool
	EnableEmotionVariation        bool

	EnablePhonemeSilence     bool
	PhonemeSilenceComma      float64
	PhonemeSilencePeriod     float64
	PhonemeSilenceQuestion   float64
	PhonemeSilenceExclaim    float64
	PhonemeSilenceColon      float64
	PhonemeSilenceSemicolon  float64
	PhonemeSilenceEllipsis   float64

	EnableEmotionalModel bool

	EnableFFmpegPostprocess bool
	FFmpegFilterChain       string
	FFmpegBinaryPath        string

	MinLengthScale float64
	MaxLengthScale float64
	MinNoiseScale  float64
	MaxNoiseScale  float64
	MinNoiseW      float64
	MaxNoiseW      float64

	MinRelativeLengthMult float64
	MaxRelativeLengthMult float64

	LongChunkThreshold  int
	LongChunkLengthMult float64

	EnableProsodySmoothing bool
	MaxLengthScaleStep     float64
	MaxNoiseScaleStep      float64
	MaxNoiseWStep          float64

	CustomPronunciations   []PronunciationRule
	CharacterVoiceProfiles map[string]VoiceProfile

	NarrationModelPath string
	EmotionalModelPath string
	TTSBinaryPath      string
}

const defaultFilterChain = "highpass=f=60," +
	"acompressor=threshold=0.06:ratio=2.5:attack=8:release=150:makeup=1.5," +
	"alimiter=limit=0.95"

// Load builds an EngineConfig from environment variables, optionally
// overlaid with a JSON file at configPath (mirrors the teacher's
// gateway.json tuning overlay — missing or unreadable files just mean
// "use defaults", never a fatal error).
func Load(configPath string) (*EngineConfig, error) {
	v := viper.New()
	v.SetConfigType("json")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			slog.Info("no config file, using defaults", "path", configPath)
		} else {
			slog.Info("loaded config overlay", "path", configPath)
		}
	}
	v.AutomaticEnv()

	mode := strings.ToLower(strValOr(v, "quality_mode", "max"))
	if mode != "fast" && mode != "balanced" && mode != "max" {
		mode = "max"
	}
	preset := presetFor(mode)

	enablePhonemeSilence := boolValOr(v, "enable_phoneme_silence", true)
	reduced := reduceForPhonemeSilence(preset, enablePhonemeSilence)

	customPronunciations := ParsePronunciations(strValOr(v, "custom_pronunciations", ""))
	characterVoiceProfiles := ParseVoiceProfiles(strValOr(v, "character_voice_profiles", ""))

	cfg := &EngineConfig{
		QualityMode:          mode,
		MaxParallel:          intValOr(v, "max_parallel", preset.MaxParallel),
		MaxChunkChars:        intValOr(v, "max_chunk_chars", preset.MaxChunkChars),
		MaxSentencesPerChunk: intValOr(v, "max_sentences_per_chunk", preset.MaxSentencesPerChunk),
		JobWorkers:           intValOr(v, "job_workers", preset.JobWorkers),

		DefaultLengthScale: floatValOr(v, "default_length_scale", preset.LengthScale),
		DefaultNoiseScale:  floatValOr(v, "default_noise_scale", preset.NoiseScale),
		DefaultNoiseW:      floatValOr(v, "default_noise_w", preset.NoiseW),

		SilenceSceneMs:    intValOr(v, "silence_scene_ms", reduced.SilenceSceneMs),
		SilenceDialogueMs: intValOr(v, "silence_dialogue_ms", reduced.SilenceDialogueMs),
		SilenceExclaimMs:  intValOr(v, "silence_exclaim_ms", reduced.SilenceExclaimMs),
		SilenceQuestionMs: intValOr(v, "silence_question_ms", reduced.SilenceQuestionMs),
		SilencePeriodMs:   intValOr(v, "silence_period_ms", reduced.SilencePeriodMs),
		SilenceCommaMs:    intValOr(v, "silence_comma_ms", reduced.SilenceCommaMs),
		SilenceDefaultMs:  intValOr(v, "silence_default_ms", reduced.SilenceDefaultMs),

		EnableDynamicChunkTuning: boolValOr(v, "enable_dynamic_chunk_tuning", true),

		EnableOutputNormalization: boolValOr(v, "enable_output_normalization", true),
		OutputTargetPeak:          clamp(floatValOr(v, "output_target_peak", 0.93), 0.10, 0.99),
		OutputEdgeFadeMs:          intValOr(v, "output_edge_fade_ms", 6),

		EnableCharacterVoiceVariation: boolValOr(v, "enable_character_voice_variation", true),
		EnableEmotionVariation:        boolValOr(v, "enable_emotion_variation", true),

		EnablePhonemeSilence:    enablePhonemeSilence,
		PhonemeSilenceComma:     floatValOr(v, "phoneme_silence_comma", 0.20),
		PhonemeSilencePeriod:    floatValOr(v, "phoneme_silence_period", 0.35),
		PhonemeSilenceQuestion:  floatValOr(v, "phoneme_silence_question", 0.42),
		PhonemeSilenceExclaim:   floatValOr(v, "phoneme_silence_exclaim", 0.35),
		PhonemeSilenceColon:     floatValOr(v, "phoneme_silence_colon", 0.18),
		PhonemeSilenceSemicolon: floatValOr(v, "phoneme_silence_semicolon", 0.22),
		PhonemeSilenceEllipsis:  floatValOr(v, "phoneme_silence_ellipsis", 0.55),

		EnableEmotionalModel: boolValOr(v, "enable_emotional_model", true),

		EnableFFmpegPostprocess: boolValOr(v, "enable_ffmpeg_postprocess", true),
		FFmpegFilterChain:       strValOr(v, "ffmpeg_filter_chain", defaultFilterChain),
		FFmpegBinaryPath:        strValOr(v, "ffmpeg_binary_path", "ffmpeg"),

		MinLengthScale: floatValOr(v, "min_length_scale", 1.00),
		MaxLengthScale: floatValOr(v, "max_length_scale", 1.95),
		MinNoiseScale:  floatValOr(v, "min_noise_scale", 0.05),
		MaxNoiseScale:  floatValOr(v, "max_noise_scale", 1.30),
		MinNoiseW:      floatValOr(v, "min_noise_w", 0.05),
		MaxNoiseW:      floatValOr(v, "max_noise_w", 1.30),

		MinRelativeLengthMult: floatValOr(v, "min_relative_length_mult", 0.94),
		MaxRelativeLengthMult: floatValOr(v, "max_relative_length_mult", 1.10),

		LongChunkThreshold:  intValOr(v, "long_chunk_threshold", 180),
		LongChunkLengthMult: floatValOr(v, "long_chunk_length_mult", 0.96),

		EnableProsodySmoothing: boolValOr(v, "enable_prosody_smoothing", true),
		MaxLengthScaleStep:     floatValOr(v, "max_length_scale_step", 0.12),
		MaxNoiseScaleStep:      floatValOr(v, "max_noise_scale_step", 0.08),
		MaxNoiseWStep:          floatValOr(v, "max_noise_w_step", 0.08),

		CustomPronunciations:   customPronunciations,
		CharacterVoiceProfiles: characterVoiceProfiles,

		NarrationModelPath: strValOr(v, "narration_model_path", "/app/model.onnx"),
		EmotionalModelPath: strValOr(v, "emotional_model_path", "/app/emotional_model.onnx"),
		TTSBinaryPath:      strValOr(v, "tts_binary_path", "/usr/local/bin/piper_bin/piper"),
	}

	slog.Info("engine config loaded",
		"quality_mode", cfg.QualityMode,
		"max_parallel", cfg.MaxParallel,
		"max_chunk_chars", cfg.MaxChunkChars,
		"job_workers", cfg.JobWorkers,
		"dynamic_tuning", cfg.EnableDynamicChunkTuning,
		"smoothing", cfg.EnableProsodySmoothing,
		"character_variation", cfg.EnableCharacterVoiceVariation,
		"emotion_variation", cfg.EnableEmotionVariation,
		"phoneme_silence", cfg.EnablePhonemeSilence,
		"emotional_model", cfg.EnableEmotionalModel,
		"ffmpeg_postprocess", cfg.EnableFFmpegPostprocess,
		"custom_pronunciations", len(cfg.CustomPronunciations),
		"character_voice_profiles", len(cfg.CharacterVoiceProfiles),
	)

	return cfg, nil
}

// reduceForPhonemeSilence lowers the preset's inter-chunk silence durations
// when the model itself will emit punctuation-aware pauses, floored at
// 30-50ms. Mirrors the original service's in-place _QUALITY adjustment.
func reduceForPhonemeSilence(p QualityPreset, enabled bool) QualityPreset {
	if !enabled {
		return p
	}
	p.SilenceSceneMs = maxInt(50, p.SilenceSceneMs-280)
	p.SilenceDialogueMs = maxInt(50, p.SilenceDialogueMs-220)
	p.SilenceExclaimMs = maxInt(50, p.SilenceExclaimMs-300)
	p.SilenceQuestionMs = maxInt(50, p.SilenceQuestionMs-350)
	p.SilencePeriodMs = maxInt(50, p.SilencePeriodMs-300)
	p.SilenceCommaMs = maxInt(30, p.SilenceCommaMs-160)
	p.SilenceDefaultMs = maxInt(50, p.SilenceDefaultMs-220)
	return p
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func strValOr(v *viper.Viper, key, fallback string) string {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
	}
	return fallback
}

func intValOr(v *viper.Viper, key string, fallback int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return fallback
}

func floatValOr(v *viper.Viper, key string, fallback float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return fallback
}

func boolValOr(v *viper.Viper, key string, fallback bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return fallback
}
