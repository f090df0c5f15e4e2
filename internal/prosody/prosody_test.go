package prosody

import (
	"testing"

	"github.com/dschilow/talea-narration-engine/internal/config"
	"github.com/stretchr/testify/assert"
)

func baseConfig() *config.EngineConfig {
	return &config.EngineConfig{
		EnableDynamicChunkTuning:      true,
		EnableEmotionVariation:        true,
		EnableCharacterVoiceVariation: true,
		EnableEmotionalModel:         true,
		EnableProsodySmoothing:       true,
		MinLengthScale:               1.00,
		MaxLengthScale:               1.95,
		MinNoiseScale:                0.05,
		MaxNoiseScale:                1.30,
		MinNoiseW:                    0.05,
		MaxNoiseW:                    1.30,
		MinRelativeLengthMult:        0.94,
		MaxRelativeLengthMult:        1.10,
		LongChunkThreshold:           180,
		LongChunkLengthMult:          0.96,
		MaxLengthScaleStep:           0.12,
		MaxNoiseScaleStep:            0.08,
		MaxNoiseWStep:                0.08,
		NarrationModelPath:           "/app/model.onnx",
		EmotionalModelPath:           "/app/emotional_model.onnx",
		CharacterVoiceProfiles:       map[string]config.VoiceProfile{},
	}
}

func TestDetectEmotionAnger(t *testing.T) {
	emotion, ok := DetectEmotion(`"Nein!!" schrie er wütend.`)
	assert.True(t, ok)
	assert.Equal(t, Anger, emotion)
}

func TestDetectEmotionNone(t *testing.T) {
	_, ok := DetectEmotion("Der Himmel ist blau.")
	assert.False(t, ok)
}

func TestExtractSpeakerHintColonQuote(t *testing.T) {
	speaker, ok := ExtractSpeakerHint(`Leo: "Komm schnell!"`)
	assert.True(t, ok)
	assert.Equal(t, "leo", speaker)
}

func TestExtractSpeakerHintVerbAfter(t *testing.T) {
	speaker, ok := ExtractSpeakerHint(`"Komm schnell!", rief Leo`)
	assert.True(t, ok)
	assert.Equal(t, "leo", speaker)
}

func TestSpeakerHashProfileDeterministic(t *testing.T) {
	p1 := SpeakerHashProfile("leo")
	p2 := SpeakerHashProfile("leo")
	assert.Equal(t, p1, p2)
	assert.InDelta(t, 1.0, p1.LengthMultiplier, 0.05)
}

func TestDeriveClampsWithinAbsoluteRange(t *testing.T) {
	cfg := baseConfig()
	length, noise, noiseW := Derive(`"Nein!!" schrie er wütend und wild.`, 1.3, 0.5, 0.6, cfg)
	assert.GreaterOrEqual(t, length, cfg.MinLengthScale)
	assert.LessOrEqual(t, length, cfg.MaxLengthScale)
	assert.GreaterOrEqual(t, noise, cfg.MinNoiseScale)
	assert.LessOrEqual(t, noise, cfg.MaxNoiseScale)
	assert.GreaterOrEqual(t, noiseW, cfg.MinNoiseW)
	assert.LessOrEqual(t, noiseW, cfg.MaxNoiseW)
}

func TestSelectModelRoutesDialogueEmotionToEmotionalModel(t *testing.T) {
	cfg := baseConfig()
	model, speaker := SelectModel(`"Nein!!" schrie er wütend.`, true, cfg)
	assert.Equal(t, cfg.EmotionalModelPath, model)
	assert.NotNil(t, speaker)
	assert.Equal(t, EmotionSpeakerMap[Anger], *speaker)
}

func TestSelectModelNarrationWithoutEmotionalModel(t *testing.T) {
	cfg := baseConfig()
	model, speaker := SelectModel("Der Wald war still.", false, cfg)
	assert.Equal(t, cfg.NarrationModelPath, model)
	assert.Nil(t, speaker)
}

func TestSmoothFirstChunkUnsmoothed(t *testing.T) {
	cfg := baseConfig()
	targets := [][3]float64{{1.3, 0.5, 0.6}, {1.8, 0.9, 0.9}}
	smoothed := Smooth(targets, cfg)
	assert.Equal(t, clamp(1.3, cfg.MinLengthScale, cfg.MaxLengthScale), smoothed[0][0])
}

func TestSmoothBoundedStep(t *testing.T) {
	cfg := baseConfig()
	targets := [][3]float64{{1.3, 0.5, 0.6}, {1.9, 0.5, 0.6}}
	smoothed := Smooth(targets, cfg)
	assert.InDelta(t, smoothed[0][0]+cfg.MaxLengthScaleStep, smoothed[1][0], 1e-9)
}
