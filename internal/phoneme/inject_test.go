package phoneme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelConfig(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestInjectSetsPhonemeSilence(t *testing.T) {
	dir := t.TempDir()
	path := writeModelConfig(t, dir, "model.onnx.json", map[string]any{
		"inference": map[string]any{"noise_scale": 0.667},
		"audio":     map[string]any{"sample_rate": 22050},
	})

	Inject([]string{path}, SilenceMap{
		Comma: 0.15, Period: 0.4, Question: 0.45, Exclaim: 0.45, Colon: 0.25, Semicolon: 0.25, Ellipsis: 0.6,
	})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	inference, ok := doc["inference"].(map[string]any)
	require.True(t, ok)
	silence, ok := inference["phoneme_silence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.15, silence[","])
	assert.Equal(t, 0.4, silence["."])
	assert.Equal(t, 0.6, silence["…"])

	audioSection, ok := doc["audio"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(22050), audioSection["sample_rate"])
}

func TestInjectCreatesMissingInferenceObject(t *testing.T) {
	dir := t.TempDir()
	path := writeModelConfig(t, dir, "model.onnx.json", map[string]any{
		"audio": map[string]any{"sample_rate": 22050},
	})

	Inject([]string{path}, SilenceMap{Comma: 0.1, Period: 0.3, Question: 0.3, Exclaim: 0.3, Colon: 0.2, Semicolon: 0.2, Ellipsis: 0.5})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	inference, ok := doc["inference"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, inference, "phoneme_silence")
}

func TestInjectIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeModelConfig(t, dir, "model.onnx.json", map[string]any{
		"inference": map[string]any{},
	})
	silence := SilenceMap{Comma: 0.15, Period: 0.4, Question: 0.45, Exclaim: 0.45, Colon: 0.25, Semicolon: 0.25, Ellipsis: 0.6}

	Inject([]string{path}, silence)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	Inject([]string{path}, silence)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestInjectSkipsMissingFileWithoutError(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist.json")
	assert.NotPanics(t, func() {
		Inject([]string{missing}, SilenceMap{})
	})
}
