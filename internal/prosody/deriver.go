package prosody

import (
	"strings"

	"github.com/dschilow/talea-narration-engine/internal/config"
)

// Params is the derived per-chunk synthesis setting triple plus model
// routing.
type Params struct {
	LengthScale float64
	NoiseScale  float64
	NoiseW      float64
	ModelPath   string
	SpeakerID   *int
}

// Derive computes target (length_scale, noise_scale, noise_w) for one chunk
// starting from the request's base values, applying emotion shaping,
// content-adaptive tuning, and character voice variation in that order,
// then clamping to the relative window around the base and finally to the
// absolute range.
func Derive(chunkText string, baseLength, baseNoise, baseNoiseW float64, cfg *config.EngineConfig) (float64, float64, float64) {
	normalized := strings.TrimSpace(chunkText)
	length := baseLength
	noise := baseNoise
	noiseW := baseNoiseW

	emotionLength, emotionNoise, emotionNoiseW := EmotionTuningFromText(normalized, cfg.EnableEmotionVariation)
	length *= emotionLength
	noise += emotionNoise
	noiseW += emotionNoiseW

	if cfg.EnableDynamicChunkTuning {
		hasDialogue := strings.Contains(normalized, `"`)
		hasExclamation := strings.HasSuffix(normalized, "!!") || strings.HasSuffix(normalized, "!")
		hasQuestion := strings.HasSuffix(normalized, "?")
		hasSuspense := strings.HasSuffix(normalized, "...") || strings.HasSuffix(normalized, "…") ||
			strings.Contains(normalized, "...") || strings.Contains(normalized, "…")

		if hasDialogue {
			length *= 1.03
			noise += 0.04
			noiseW += 0.04
		}
		if hasExclamation {
			length *= 0.98
			noise += 0.10
			noiseW += 0.08
		}
		if hasQuestion {
			noise += 0.05
			noiseW += 0.04
		}
		if hasSuspense {
			length *= 1.05
			noise -= 0.05
			noiseW -= 0.04
		}
		if len(normalized) >= cfg.LongChunkThreshold && !hasExclamation {
			length *= cfg.LongChunkLengthMult
		}
	}

	if cfg.EnableCharacterVoiceVariation {
		if speaker, ok := ExtractSpeakerHint(normalized); ok {
			var profile config.VoiceProfile
			if configured, found := cfg.CharacterVoiceProfiles[speaker]; found {
				profile = configured
			} else {
				profile = SpeakerHashProfile(speaker)
			}
			length *= profile.LengthMultiplier
			noise += profile.NoiseDelta
			noiseW += profile.NoiseWDelta
		}
	}

	relativeMin := baseLength * cfg.MinRelativeLengthMult
	relativeMax := baseLength * cfg.MaxRelativeLengthMult
	if relativeMin > relativeMax {
		relativeMin, relativeMax = relativeMax, relativeMin
	}

	length = clamp(length, relativeMin, relativeMax)
	length = clamp(length, cfg.MinLengthScale, cfg.MaxLengthScale)
	noise = clamp(noise, cfg.MinNoiseScale, cfg.MaxNoiseScale)
	noiseW = clamp(noiseW, cfg.MinNoiseW, cfg.MaxNoiseW)

	return length, noise, noiseW
}

// SelectModel routes a chunk to the narration model or, when the emotional
// model is enabled and available, to the multi-speaker emotional model with
// a speaker index derived from the detected emotion.
func SelectModel(chunkText string, emotionalModelAvailable bool, cfg *config.EngineConfig) (string, *int) {
	if !cfg.EnableEmotionalModel || !emotionalModelAvailable {
		return cfg.NarrationModelPath, nil
	}

	normalized := strings.TrimSpace(chunkText)
	hasDialogue := strings.Contains(normalized, `"`)
	emotion, hasEmotion := DetectEmotion(normalized)

	if hasDialogue && hasEmotion {
		if speaker, ok := EmotionSpeakerMap[emotion]; ok {
			return cfg.EmotionalModelPath, &speaker
		}
	}

	if !hasDialogue && hasEmotion && (emotion == Anger || emotion == Fear || emotion == Suspense) {
		if speaker, ok := EmotionSpeakerMap[emotion]; ok {
			return cfg.EmotionalModelPath, &speaker
		}
	}

	return cfg.NarrationModelPath, nil
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
