// Command narrator turns a German story text file into a narrated WAV file
// using the narration engine. It wires config.Load and engine.Synthesize
// around a file-in/file-out CLI; the HTTP/batch-job transport surface is
// left to a future service layer.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dschilow/talea-narration-engine/internal/config"
	"github.com/dschilow/talea-narration-engine/internal/engine"
	"github.com/dschilow/talea-narration-engine/internal/phoneme"
	"github.com/dschilow/talea-narration-engine/internal/synth"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	inputPath := flag.String("input", "", "path to a UTF-8 story text file")
	outputPath := flag.String("output", "narration.wav", "path to write the synthesized WAV file")
	configPath := flag.String("config", "", "optional JSON config overlay path")
	flag.Parse()

	if *inputPath == "" {
		slog.Error("missing required -input flag")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if cfg.EnablePhonemeSilence {
		modelConfigs := []string{cfg.NarrationModelPath + ".json"}
		if cfg.EnableEmotionalModel {
			modelConfigs = append(modelConfigs, cfg.EmotionalModelPath+".json")
		}
		phoneme.Inject(modelConfigs, phoneme.SilenceMap{
			Comma:     cfg.PhonemeSilenceComma,
			Period:    cfg.PhonemeSilencePeriod,
			Question:  cfg.PhonemeSilenceQuestion,
			Exclaim:   cfg.PhonemeSilenceExclaim,
			Colon:     cfg.PhonemeSilenceColon,
			Semicolon: cfg.PhonemeSilenceSemicolon,
			Ellipsis:  cfg.PhonemeSilenceEllipsis,
		})
	}

	text, err := os.ReadFile(*inputPath)
	if err != nil {
		slog.Error("input read failed", "path", *inputPath, "error", err)
		os.Exit(1)
	}

	_, emotionalModelErr := os.Stat(cfg.EmotionalModelPath)
	emotionalModelReady := cfg.EnableEmotionalModel && emotionalModelErr == nil

	invoker := synth.BinaryInvoker{BinaryPath: cfg.TTSBinaryPath}

	wav, err := engine.Synthesize(engine.SynthesisRequest{
		Text:                string(text),
		EmotionalModelReady: emotionalModelReady,
	}, cfg, invoker)
	if err != nil {
		slog.Error("synthesis failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, wav, 0o644); err != nil {
		slog.Error("output write failed", "path", *outputPath, "error", err)
		os.Exit(1)
	}

	slog.Info("narration written", "path", *outputPath, "bytes", len(wav))
}
