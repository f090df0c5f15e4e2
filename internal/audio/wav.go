// Package audio decodes, validates, concatenates, and post-processes the
// mono 16-bit PCM WAV fragments produced by the synthesis driver and the
// silence inserter.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrFormatMismatch is returned by Concatenate when input fragments do not
// share the same sample rate, channel count, and bit depth.
var ErrFormatMismatch = errors.New("audio: fragment format mismatch")

// Fragment is a decoded PCM-WAV byte sequence tagged with its format.
type Fragment struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
	Data          []byte // raw little-endian PCM payload
}

// Decode parses WAV bytes into a Fragment, validating the RIFF/WAVE/fmt/data
// structure.
func Decode(wavBytes []byte) (Fragment, error) {
	if len(wavBytes) < 44 {
		return Fragment{}, fmt.Errorf("audio: payload of %d bytes is smaller than a WAV header", len(wavBytes))
	}
	decoder := wav.NewDecoder(bytes.NewReader(wavBytes))
	if !decoder.IsValidFile() {
		return Fragment{}, fmt.Errorf("audio: not a valid RIFF/WAVE file")
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Fragment{}, fmt.Errorf("audio: decode pcm: %w", err)
	}
	return Fragment{
		SampleRate:    int(decoder.SampleRate),
		NumChannels:   int(decoder.NumChans),
		BitsPerSample: int(decoder.BitDepth),
		Data:          intsToPCMBytes(buf.Data),
	}, nil
}

// Encode builds a mono or multi-channel 16-bit PCM WAV file from raw PCM
// bytes and the declared format.
func Encode(pcm []byte, sampleRate, numChannels, bitsPerSample int) ([]byte, error) {
	sink := &memWriteSeeker{}
	encoder := wav.NewEncoder(sink, sampleRate, bitsPerSample, numChannels, 1)
	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           pcmBytesToInts(pcm),
		SourceBitDepth: bitsPerSample,
	}
	if err := encoder.Write(buffer); err != nil {
		return nil, fmt.Errorf("audio: encode: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("audio: finalize encoder: %w", err)
	}
	return sink.buf, nil
}

func pcmBytesToInts(data []byte) []int {
	n := len(data) / 2
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	return out
}

func intsToPCMBytes(samples []int) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}

// memWriteSeeker is a minimal in-memory io.WriteSeeker, needed because
// wav.Encoder writes its header twice (once as a placeholder, once finalized
// on Close) and therefore requires Seek support that a plain bytes.Buffer
// does not provide.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = m.pos + int(offset)
	case io.SeekEnd:
		newPos = len(m.buf) + int(offset)
	default:
		return 0, fmt.Errorf("audio: invalid seek whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("audio: negative seek position")
	}
	m.pos = newPos
	return int64(m.pos), nil
}
