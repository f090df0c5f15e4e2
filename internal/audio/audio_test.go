package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSilenceRoundTrips(t *testing.T) {
	wavBytes, err := GenerateSilence(200, 22050)
	require.NoError(t, err)
	assert.True(t, len(wavBytes) > 44)

	fragment, err := Decode(wavBytes)
	require.NoError(t, err)
	assert.Equal(t, 22050, fragment.SampleRate)
	assert.Equal(t, 1, fragment.NumChannels)
	assert.Equal(t, 16, fragment.BitsPerSample)
	for _, b := range fragment.Data {
		assert.Equal(t, byte(0), b)
	}
}

func TestClassifyBoundaryScene(t *testing.T) {
	assert.Equal(t, BoundaryScene, ClassifyBoundary("Er öffnete die Tür…", false, false))
}

func TestClassifyBoundaryDialogueTransition(t *testing.T) {
	assert.Equal(t, BoundaryDialogue, ClassifyBoundary(`Leo sagte "Hallo".`, true, false))
}

func TestClassifyBoundaryExclaim(t *testing.T) {
	assert.Equal(t, BoundaryExclaim, ClassifyBoundary("Lauf schnell!", false, false))
}

func TestClassifyBoundaryQuestion(t *testing.T) {
	assert.Equal(t, BoundaryQuestion, ClassifyBoundary("Wo bist du?", false, false))
}

func TestClassifyBoundaryComma(t *testing.T) {
	assert.Equal(t, BoundaryComma, ClassifyBoundary("Nach einer Weile,", false, false))
}

func TestClassifyBoundaryDefault(t *testing.T) {
	assert.Equal(t, BoundaryDefault, ClassifyBoundary("und dann", false, false))
}

func TestConcatenateSumsDataSize(t *testing.T) {
	a, err := GenerateSilence(100, 22050)
	require.NoError(t, err)
	b, err := GenerateSilence(150, 22050)
	require.NoError(t, err)

	fragA, err := Decode(a)
	require.NoError(t, err)
	fragB, err := Decode(b)
	require.NoError(t, err)

	combined, err := Concatenate([][]byte{a, b})
	require.NoError(t, err)

	fragCombined, err := Decode(combined)
	require.NoError(t, err)
	assert.Equal(t, len(fragA.Data)+len(fragB.Data), len(fragCombined.Data))
}

func TestConcatenateDetectsFormatMismatch(t *testing.T) {
	a, err := GenerateSilence(100, 22050)
	require.NoError(t, err)
	b, err := GenerateSilence(100, 16000)
	require.NoError(t, err)

	_, err = Concatenate([][]byte{a, b})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestPostprocessFallbackNormalizationClampsPeak(t *testing.T) {
	samples := make([]int, 2000)
	samples[1000] = 32000
	samples[1001] = -32000
	input, err := Encode(intsToPCMBytes(samples), 22050, 1, 16)
	require.NoError(t, err)

	opts := PostprocessOptions{
		EnableFFmpeg:        false,
		EnableNormalization: true,
		TargetPeak:          0.93,
		EdgeFadeMs:          6,
	}
	out := Postprocess(input, opts)
	assert.NotEmpty(t, out)

	fragment, err := Decode(out)
	require.NoError(t, err)
	peak := 0
	for _, s := range pcmBytesToInts(fragment.Data) {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	assert.LessOrEqual(t, peak, int(math.Round(0.93*32767))+1)
}
