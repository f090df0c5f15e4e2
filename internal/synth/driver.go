// Package synth drives the external neural text-to-speech binary, one
// invocation per chunk, under a bounded worker pool.
package synth

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrChunkSynthesis is the sentinel wrapped around any per-chunk synthesis
// failure: a nonzero subprocess exit, captured stderr included.
var ErrChunkSynthesis = errors.New("synth: chunk synthesis failed")

// maxStderrLen bounds how much of a failing chunk's captured stderr is
// embedded in the wrapped error, matching the postprocess fallback's own cap.
const maxStderrLen = 200

// Job is one unit of work for the worker pool: chunk text plus its derived
// prosody and model routing.
type Job struct {
	Index       int
	Text        string
	LengthScale float64
	NoiseScale  float64
	NoiseW      float64
	ModelPath   string
	SpeakerID   *int
}

// Result pairs a job's index with its WAV bytes (or error), so callers can
// reassemble fragments in original order regardless of completion order.
type Result struct {
	Index int
	WAV   []byte
	Err   error
}

// Invoker runs one synthesis job and returns raw WAV bytes. The production
// implementation shells out to the TTS binary; tests supply a stub.
type Invoker interface {
	Invoke(job Job) ([]byte, error)
}

// BinaryInvoker invokes the TTS binary at BinaryPath per the documented wire
// contract: argv flags for model/length_scale/noise_scale/noise_w/speaker,
// stdin carries the chunk text, stdout carries the WAV bytes.
type BinaryInvoker struct {
	BinaryPath string
}

func (b BinaryInvoker) Invoke(job Job) ([]byte, error) {
	args := []string{
		"--model", job.ModelPath,
		"--output_file", "-",
		"--length_scale", strconv.FormatFloat(job.LengthScale, 'f', -1, 64),
		"--noise_scale", strconv.FormatFloat(job.NoiseScale, 'f', -1, 64),
		"--noise_w", strconv.FormatFloat(job.NoiseW, 'f', -1, 64),
	}
	if job.SpeakerID != nil {
		args = append(args, "--speaker", strconv.Itoa(*job.SpeakerID))
	}

	cmd := exec.Command(b.BinaryPath, args...)
	cmd.Stdin = bytes.NewReader([]byte(job.Text))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrText := stderr.String()
		if len(stderrText) > maxStderrLen {
			stderrText = stderrText[:maxStderrLen]
		}
		return nil, fmt.Errorf("%w: chunk %d: %s", ErrChunkSynthesis, job.Index, stderrText)
	}
	return stdout.Bytes(), nil
}

// Run executes jobs across a worker pool of size min(maxParallel,
// len(jobs)), returning results indexed by job order. The first failing
// chunk is surfaced as an error; remaining in-flight workers are allowed to
// drain and their output is discarded.
func Run(jobs []Job, maxParallel int, invoker Invoker) ([][]byte, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	workers := maxParallel
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan Job)
	resultCh := make(chan Result, len(jobs))

	for i := 0; i < workers; i++ {
		go func() {
			for job := range jobCh {
				wav, err := invoker.Invoke(job)
				resultCh <- Result{Index: job.Index, WAV: wav, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			jobCh <- job
		}
	}()

	results := make([][]byte, len(jobs))
	var firstErr error
	for range jobs {
		r := <-resultCh
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		results[r.Index] = r.WAV
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
