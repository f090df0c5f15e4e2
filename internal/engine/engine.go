// Package engine orchestrates the full text-to-narration pipeline: German
// text normalization, prosodic text preparation, story enhancement,
// chunking, per-chunk prosody derivation and smoothing, parallel synthesis,
// inter-chunk silence insertion, concatenation, and output postprocessing.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dschilow/talea-narration-engine/internal/audio"
	"github.com/dschilow/talea-narration-engine/internal/chunk"
	"github.com/dschilow/talea-narration-engine/internal/config"
	"github.com/dschilow/talea-narration-engine/internal/enhance"
	"github.com/dschilow/talea-narration-engine/internal/metrics"
	"github.com/dschilow/talea-narration-engine/internal/prepare"
	"github.com/dschilow/talea-narration-engine/internal/prosody"
	"github.com/dschilow/talea-narration-engine/internal/synth"
	"github.com/dschilow/talea-narration-engine/internal/textnorm"
)

// ErrEmptyText is returned when a synthesis request has no usable text left
// after normalization.
var ErrEmptyText = errors.New("engine: request text is empty after normalization")

// SynthesisRequest describes one story-to-audio job. Overrides are optional;
// a zero value means "use the engine's configured default".
type SynthesisRequest struct {
	RequestID           string
	Text                string
	LengthScaleOverride *float64
	NoiseScaleOverride  *float64
	NoiseWOverride      *float64
	EmotionalModelReady bool
}

func (r *SynthesisRequest) ensureID() {
	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}
}

func (r SynthesisRequest) baseParams(cfg *config.EngineConfig) (float64, float64, float64) {
	length := cfg.DefaultLengthScale
	noise := cfg.DefaultNoiseScale
	noiseW := cfg.DefaultNoiseW
	if r.LengthScaleOverride != nil {
		length = *r.LengthScaleOverride
	}
	if r.NoiseScaleOverride != nil {
		noise = *r.NoiseScaleOverride
	}
	if r.NoiseWOverride != nil {
		noiseW = *r.NoiseWOverride
	}
	return length, noise, noiseW
}

// BatchItem pairs a caller-supplied identifier with its request, so batch
// results can be matched back up regardless of completion order.
type BatchItem struct {
	ID      string
	Request SynthesisRequest
}

// BatchResult carries one batch item's outcome. Exactly one of WAV/Err is
// set; a failure in one item never aborts the rest of the batch.
type BatchResult struct {
	ID  string
	WAV []byte
	Err error
}

// Synthesize runs one request through the full pipeline and returns the
// final WAV bytes.
func Synthesize(req SynthesisRequest, cfg *config.EngineConfig, invoker synth.Invoker) ([]byte, error) {
	req.ensureID()
	start := time.Now()
	log := slog.With("request_id", req.RequestID)

	metrics.RequestsActive.Inc()
	metrics.RequestsTotal.Inc()
	defer metrics.RequestsActive.Dec()
	defer func() {
		metrics.E2EDuration.Observe(time.Since(start).Seconds())
	}()

	stage := func(name string, fn func() error) error {
		stageStart := time.Now()
		err := fn()
		metrics.StageDuration.WithLabelValues(name).Observe(time.Since(stageStart).Seconds())
		if err != nil {
			metrics.Errors.WithLabelValues(name, fmt.Sprintf("%T", err)).Inc()
		}
		return err
	}

	var normalized, prepared, enhanced string
	var chunks []chunk.Chunk

	if err := stage("normalize", func() error {
		normalized = textnorm.Normalize(req.Text)
		if normalized == "" {
			return ErrEmptyText
		}
		return nil
	}); err != nil {
		log.Warn("synthesis aborted", "stage", "normalize", "error", err)
		return nil, err
	}

	_ = stage("prepare", func() error {
		prepared = prepare.Prepare(normalized, cfg.EnablePhonemeSilence)
		return nil
	})

	_ = stage("enhance", func() error {
		enhanced = enhance.Enhance(prepared, cfg)
		return nil
	})

	_ = stage("chunk", func() error {
		chunks = chunk.Split(enhanced, cfg.MaxChunkChars, cfg.MaxSentencesPerChunk)
		return nil
	})

	if len(chunks) == 0 {
		log.Warn("synthesis aborted", "stage", "chunk", "error", ErrEmptyText)
		return nil, ErrEmptyText
	}

	baseLength, baseNoise, baseNoiseW := req.baseParams(cfg)

	targets := make([][3]float64, len(chunks))
	modelPaths := make([]string, len(chunks))
	speakerIDs := make([]*int, len(chunks))

	_ = stage("derive_prosody", func() error {
		for i, c := range chunks {
			length, noise, noiseW := prosody.Derive(c.Text, baseLength, baseNoise, baseNoiseW, cfg)
			targets[i] = [3]float64{length, noise, noiseW}

			modelPath, speakerID := prosody.SelectModel(c.Text, req.EmotionalModelReady, cfg)
			modelPaths[i] = modelPath
			speakerIDs[i] = speakerID
			if speakerID != nil {
				metrics.EmotionalModelRouted.Inc()
			}
		}
		return nil
	})

	smoothed := prosody.Smooth(targets, cfg)

	jobs := make([]synth.Job, len(chunks))
	for i, c := range chunks {
		jobs[i] = synth.Job{
			Index:       i,
			Text:        c.Text,
			LengthScale: smoothed[i][0],
			NoiseScale:  smoothed[i][1],
			NoiseW:      smoothed[i][2],
			ModelPath:   modelPaths[i],
			SpeakerID:   speakerIDs[i],
		}
	}

	var fragments [][]byte
	if err := stage("synthesize", func() error {
		results, err := synth.Run(jobs, cfg.MaxParallel, invoker)
		if err != nil {
			return err
		}
		fragments = results
		metrics.ChunksSynthesized.Add(float64(len(results)))
		return nil
	}); err != nil {
		log.Error("synthesis failed", "stage", "synthesize", "error", err)
		return nil, err
	}

	withSilence, err := interleaveSilence(fragments, chunks, cfg)
	if err != nil {
		log.Error("synthesis failed", "stage", "silence", "error", err)
		return nil, err
	}

	var final []byte
	if err := stage("concatenate", func() error {
		out, err := audio.Concatenate(withSilence)
		if err != nil {
			return err
		}
		final = out
		return nil
	}); err != nil {
		log.Error("synthesis failed", "stage", "concatenate", "error", err)
		return nil, err
	}

	_ = stage("postprocess", func() error {
		final = audio.Postprocess(final, audio.PostprocessOptions{
			EnableFFmpeg:        cfg.EnableFFmpegPostprocess,
			FFmpegBinaryPath:    cfg.FFmpegBinaryPath,
			FFmpegFilterChain:   cfg.FFmpegFilterChain,
			EnableNormalization: cfg.EnableOutputNormalization,
			TargetPeak:          cfg.OutputTargetPeak,
			EdgeFadeMs:          cfg.OutputEdgeFadeMs,
		})
		return nil
	})

	log.Info("synthesis complete", "chunks", len(chunks), "bytes", len(final), "duration_ms", time.Since(start).Milliseconds())
	return final, nil
}

// interleaveSilence inserts a silence fragment between every pair of
// adjacent chunk fragments, classifying the gap from the left chunk's
// trailing punctuation and both chunks' dialogue-ness.
func interleaveSilence(fragments [][]byte, chunks []chunk.Chunk, cfg *config.EngineConfig) ([][]byte, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	sampleRate := sampleRateOf(fragments[0])

	out := make([][]byte, 0, len(fragments)*2-1)
	out = append(out, fragments[0])

	for i := 1; i < len(fragments); i++ {
		class := audio.ClassifyBoundary(chunks[i-1].Text, chunks[i-1].HasDialogue, chunks[i].HasDialogue)
		ms := silenceMsFor(class, cfg)
		if ms > 0 {
			silenceFragment, err := audio.GenerateSilence(ms, sampleRate)
			if err != nil {
				return nil, err
			}
			out = append(out, silenceFragment)
		}
		out = append(out, fragments[i])
	}

	return out, nil
}

func silenceMsFor(class audio.BoundaryClass, cfg *config.EngineConfig) int {
	switch class {
	case audio.BoundaryScene:
		return cfg.SilenceSceneMs
	case audio.BoundaryDialogue:
		return cfg.SilenceDialogueMs
	case audio.BoundaryExclaim:
		return cfg.SilenceExclaimMs
	case audio.BoundaryQuestion:
		return cfg.SilenceQuestionMs
	case audio.BoundaryPeriod:
		return cfg.SilencePeriodMs
	case audio.BoundaryComma:
		return cfg.SilenceCommaMs
	default:
		return cfg.SilenceDefaultMs
	}
}

// sampleRateOf decodes just enough of the fragment to recover its sample
// rate, defaulting to 22050 (the pipeline's standard rate) if decoding
// fails — silence generation failing softly beats aborting the request.
func sampleRateOf(wavBytes []byte) int {
	fragment, err := audio.Decode(wavBytes)
	if err != nil {
		return 22050
	}
	return fragment.SampleRate
}

// SynthesizeBatch runs each item independently, isolating failures so one
// bad request doesn't block the rest of the batch.
func SynthesizeBatch(items []BatchItem, cfg *config.EngineConfig, invoker synth.Invoker) []BatchResult {
	results := make([]BatchResult, len(items))
	for i, item := range items {
		wav, err := Synthesize(item.Request, cfg, invoker)
		results[i] = BatchResult{ID: item.ID, WAV: wav, Err: err}
	}
	return results
}
