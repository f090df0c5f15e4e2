package prosody

import "github.com/dschilow/talea-narration-engine/internal/config"

// ClampStep limits target to within step of prev, used to bound how far a
// prosody parameter can move between adjacent chunks.
func ClampStep(prev, target, step float64) float64 {
	return clamp(target, prev-step, prev+step)
}

// Smooth applies bounded-step smoothing across a sequence of target
// (length, noise, noise_w) triples, in place conceptually — the first chunk
// is only clamped to the absolute range, each following chunk is pulled toward its own
// target by at most the configured per-parameter step, then re-clamped to
// the absolute range.
func Smooth(targets [][3]float64, cfg *config.EngineConfig) [][3]float64 {
	if len(targets) == 0 {
		return nil
	}

	smoothed := make([][3]float64, len(targets))
	smoothed[0] = [3]float64{
		clamp(targets[0][0], cfg.MinLengthScale, cfg.MaxLengthScale),
		clamp(targets[0][1], cfg.MinNoiseScale, cfg.MaxNoiseScale),
		clamp(targets[0][2], cfg.MinNoiseW, cfg.MaxNoiseW),
	}

	for i := 1; i < len(targets); i++ {
		prev := smoothed[i-1]
		target := targets[i]

		var length, noise, noiseW float64
		if cfg.EnableProsodySmoothing {
			length = ClampStep(prev[0], target[0], cfg.MaxLengthScaleStep)
			noise = ClampStep(prev[1], target[1], cfg.MaxNoiseScaleStep)
			noiseW = ClampStep(prev[2], target[2], cfg.MaxNoiseWStep)
		} else {
			length, noise, noiseW = target[0], target[1], target[2]
		}

		smoothed[i] = [3]float64{
			clamp(length, cfg.MinLengthScale, cfg.MaxLengthScale),
			clamp(noise, cfg.MinNoiseScale, cfg.MaxNoiseScale),
			clamp(noiseW, cfg.MinNoiseW, cfg.MaxNoiseW),
		}
	}

	return smoothed
}
