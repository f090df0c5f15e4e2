package audio

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"

	"github.com/dschilow/talea-narration-engine/internal/metrics"
)

const ffmpegTimeout = 30 * time.Second

// PostprocessOptions carries the tunables the post-processor needs; it
// mirrors the relevant subset of EngineConfig without importing the config
// package, keeping internal/audio free of an upward dependency.
type PostprocessOptions struct {
	EnableFFmpeg          bool
	FFmpegBinaryPath      string
	FFmpegFilterChain     string
	EnableNormalization   bool
	TargetPeak            float64
	EdgeFadeMs            int
}

// Postprocess tries the external filter chain first; on any failure (missing
// binary, nonzero exit, timeout, or too-small output) it falls back to
// in-process peak normalization with edge fades, or returns the input
// unchanged if normalization is disabled too.
func Postprocess(wavBytes []byte, opts PostprocessOptions) []byte {
	if opts.EnableFFmpeg {
		if result, ok := postprocessWithFFmpeg(wavBytes, opts); ok {
			return result
		}
		metrics.PostprocessFallbacks.Inc()
	}

	if !opts.EnableNormalization {
		return wavBytes
	}
	return normalizePeak(wavBytes, opts.TargetPeak, opts.EdgeFadeMs)
}

func postprocessWithFFmpeg(wavBytes []byte, opts PostprocessOptions) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), ffmpegTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.FFmpegBinaryPath,
		"-y",
		"-i", "pipe:0",
		"-af", opts.FFmpegFilterChain,
		"-ar", "22050",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(wavBytes)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		slog.Warn("ffmpeg postprocess timed out, falling back to basic normalization")
		return nil, false
	}
	if err != nil {
		stderrText := stderr.String()
		if len(stderrText) > 200 {
			stderrText = stderrText[:200]
		}
		slog.Warn("ffmpeg postprocess failed, falling back to basic normalization", "error", err, "stderr", stderrText)
		return nil, false
	}
	if stdout.Len() < 44 {
		slog.Warn("ffmpeg returned too little data, falling back to basic normalization")
		return nil, false
	}

	return stdout.Bytes(), true
}

// normalizePeak scans the payload for peak absolute amplitude, computes a
// gain so the new peak lands at targetPeak (clamped to a sane range), and
// applies it with int16 saturation plus a linear fade-in/out at the edges.
func normalizePeak(wavBytes []byte, targetPeak float64, edgeFadeMs int) []byte {
	fragment, err := Decode(wavBytes)
	if err != nil {
		return wavBytes
	}

	samples := pcmBytesToInts(fragment.Data)
	if len(samples) == 0 {
		return wavBytes
	}

	maxAbs := 0
	for _, s := range samples {
		abs := s
		if abs < 0 {
			abs = -abs
		}
		if abs > maxAbs {
			maxAbs = abs
		}
	}
	if maxAbs == 0 {
		return wavBytes
	}

	clampedTarget := clampFloat(targetPeak, 0.10, 0.99)
	targetAmplitude := int(32767 * clampedTarget)
	gain := float64(targetAmplitude) / float64(maxAbs)
	gain = clampFloat(gain, 0.60, 2.50)

	sampleCount := len(samples)
	fadeSamples := edgeFadeMs * fragment.SampleRate / 1000
	if fadeSamples < 0 {
		fadeSamples = 0
	}
	if fadeSamples > sampleCount/2 {
		fadeSamples = sampleCount / 2
	}

	out := make([]int, sampleCount)
	for i, raw := range samples {
		scaled := int(float64(raw) * gain)

		if fadeSamples > 0 {
			if i < fadeSamples {
				scaled = int(float64(scaled) * (float64(i) / float64(fadeSamples)))
			} else if i >= sampleCount-fadeSamples {
				tailPos := sampleCount - i - 1
				scaled = int(float64(scaled) * (float64(tailPos) / float64(fadeSamples)))
			}
		}

		if scaled > 32767 {
			scaled = 32767
		}
		if scaled < -32768 {
			scaled = -32768
		}
		out[i] = scaled
	}

	encoded, err := Encode(intsToPCMBytes(out), fragment.SampleRate, fragment.NumChannels, fragment.BitsPerSample)
	if err != nil {
		return wavBytes
	}
	return encoded
}

func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
