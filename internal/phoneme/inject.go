// Package phoneme patches the voice model's companion JSON configuration so
// the model itself emits punctuation-aware pauses natively, before any
// synthesis request is accepted.
package phoneme

import (
	"encoding/json"
	"log/slog"
	"os"
)

// SilenceMap is the punctuation-to-seconds table written into
// inference.phoneme_silence.
type SilenceMap struct {
	Comma     float64
	Period    float64
	Question  float64
	Exclaim   float64
	Colon     float64
	Semicolon float64
	Ellipsis  float64
}

func (s SilenceMap) toJSON() map[string]float64 {
	return map[string]float64{
		",": round3(s.Comma),
		".": round3(s.Period),
		"?": round3(s.Question),
		"!": round3(s.Exclaim),
		":": round3(s.Colon),
		";": round3(s.Semicolon),
		"…": round3(s.Ellipsis),
	}
}

func round3(v float64) float64 {
	const factor = 1000.0
	return float64(int(v*factor+0.5)) / factor
}

// Inject sets inference.phoneme_silence in each given model companion JSON
// file to the configured seconds map and writes the file back. A missing
// file is skipped with a warning; a read/parse/write failure is a warning,
// never fatal — this only disables native pausing for that model, it does
// not abort startup. Re-running with the same values is a no-op write
// (same bytes), keeping the injection idempotent.
func Inject(configPaths []string, silence SilenceMap) {
	payload := silence.toJSON()

	for _, path := range configPaths {
		if err := injectOne(path, payload); err != nil {
			slog.Warn("phoneme silence injection skipped", "path", path, "error", err)
		} else {
			slog.Info("phoneme silence injected", "path", path)
		}
	}
}

func injectOne(path string, payload map[string]float64) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return err
	}
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	inference, ok := doc["inference"].(map[string]any)
	if !ok {
		inference = map[string]any{}
	}
	inference["phoneme_silence"] = payload
	doc["inference"] = inference

	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, updated, 0o644)
}
