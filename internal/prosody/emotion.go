// Package prosody derives, tunes, and smooths the per-chunk synthesis
// parameters (length_scale, noise_scale, noise_w) and selects the voice
// model and speaker index for each chunk.
package prosody

import (
	"regexp"
	"strings"
)

// Emotion is one of the six detectable narrative moods.
type Emotion string

const (
	Anger    Emotion = "anger"
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Fear     Emotion = "fear"
	Calm     Emotion = "calm"
	Suspense Emotion = "suspense"
)

// EmotionSpeakerMap routes a detected emotion to a speaker index on the
// multi-speaker emotional voice model. The names are the model's original
// speaker labels; some are an acknowledged closest match rather than a
// literal semantic fit (sadness has no dedicated "sad" speaker).
var EmotionSpeakerMap = map[Emotion]int{
	Anger:    1, // angry
	Joy:      0, // amused
	Sadness:  5, // sleepy
	Fear:     6, // surprised
	Calm:     4, // neutral
	Suspense: 7, // whisper
}

var (
	angerCuesRe    = regexp.MustCompile(`\b(schrie|brüllte|knurrte|wut|zorn|fauchte|wütend|tobte|stampfte|donnerte)\b`)
	joyCuesRe      = regexp.MustCompile(`\b(lachte|jubelte|grinste|freute|strahlte|fröhlich|kicherte|jauchzte|hüpfte)\b`)
	sadnessCuesRe  = regexp.MustCompile(`\b(weinte|schluchzte|traurig|seufzte|leise|verzweifelt|träne|jammerte|klagte)\b`)
	fearCuesRe     = regexp.MustCompile(`\b(zitterte|ängstlich|aengstlich|panik|furcht|flucht|erschrocken|bebte|schauderte)\b`)
	calmCuesRe     = regexp.MustCompile(`\b(flüsterte|fluesterte|ruhig|sanft|behutsam|gelassen|still|friedlich|sachte)\b`)
	suspenseCuesRe = regexp.MustCompile(`\b(plötzlich|dunkel|schatten|geheimnis|lauerte|schlich|unheimlich|geisterhaft)\b`)
)

// DetectEmotion scores the six emotions from punctuation density and
// closed-set German lexical cues, returning the top scorer. Ties resolve to
// the emotion that comes first in the fixed order anger, joy, sadness, fear,
// calm, suspense.
func DetectEmotion(chunk string) (Emotion, bool) {
	text := strings.TrimSpace(chunk)
	lower := strings.ToLower(text)

	scores := map[Emotion]int{Anger: 0, Joy: 0, Sadness: 0, Fear: 0, Calm: 0, Suspense: 0}

	exclaimCount := strings.Count(text, "!")
	questionCount := strings.Count(text, "?")

	switch {
	case exclaimCount >= 2:
		scores[Anger] += 2
		scores[Joy] += 1
	case exclaimCount == 1:
		scores[Joy] += 1
		scores[Anger] += 1
	}
	switch {
	case questionCount >= 2:
		scores[Fear] += 1
		scores[Suspense] += 1
	case questionCount == 1:
		scores[Suspense] += 1
	}
	if strings.Contains(text, "...") || strings.Contains(text, "…") {
		scores[Suspense] += 2
		scores[Calm] += 1
	}

	if angerCuesRe.MatchString(lower) {
		scores[Anger] += 3
	}
	if joyCuesRe.MatchString(lower) {
		scores[Joy] += 3
	}
	if sadnessCuesRe.MatchString(lower) {
		scores[Sadness] += 3
	}
	if fearCuesRe.MatchString(lower) {
		scores[Fear] += 3
	}
	if calmCuesRe.MatchString(lower) {
		scores[Calm] += 3
	}
	if suspenseCuesRe.MatchString(lower) {
		scores[Suspense] += 3
	}

	order := []Emotion{Anger, Joy, Sadness, Fear, Calm, Suspense}
	best := order[0]
	for _, e := range order[1:] {
		if scores[e] > scores[best] {
			best = e
		}
	}
	if scores[best] == 0 {
		return "", false
	}
	return best, true
}

type emotionTuning struct {
	lengthMultiplier float64
	noiseDelta       float64
	noiseWDelta      float64
}

var emotionTuningTable = map[Emotion]emotionTuning{
	Anger:    {0.97, 0.10, 0.07},
	Joy:      {0.99, 0.08, 0.06},
	Sadness:  {1.10, -0.08, -0.06},
	Fear:     {1.01, 0.08, 0.06},
	Calm:     {1.06, -0.06, -0.05},
	Suspense: {1.08, -0.05, -0.04},
}

// EmotionTuningFromText returns the (length_mult, noise_delta, noise_w_delta)
// adjustment for the chunk's dominant detected emotion, or the identity
// tuning when variation is disabled or no emotion registers.
func EmotionTuningFromText(chunk string, enabled bool) (float64, float64, float64) {
	if !enabled {
		return 1.0, 0.0, 0.0
	}
	emotion, ok := DetectEmotion(chunk)
	if !ok {
		return 1.0, 0.0, 0.0
	}
	tuning, ok := emotionTuningTable[emotion]
	if !ok {
		return 1.0, 0.0, 0.0
	}
	return tuning.lengthMultiplier, tuning.noiseDelta, tuning.noiseWDelta
}
