package audio

import "fmt"

// Concatenate decodes each WAV fragment, verifies they share one format, and
// re-encodes their joined PCM payload as a single WAV file. A single
// fragment is returned unchanged (after round-tripping through decode to
// validate it).
func Concatenate(fragments [][]byte) ([]byte, error) {
	if len(fragments) == 0 {
		return nil, fmt.Errorf("audio: no fragments to concatenate")
	}
	if len(fragments) == 1 {
		if _, err := Decode(fragments[0]); err != nil {
			return nil, fmt.Errorf("audio: decode fragment 0: %w", err)
		}
		return fragments[0], nil
	}

	var sampleRate, numChannels, bitsPerSample int
	var combined []byte

	for i, raw := range fragments {
		fragment, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("audio: decode fragment %d: %w", i, err)
		}
		if i == 0 {
			sampleRate = fragment.SampleRate
			numChannels = fragment.NumChannels
			bitsPerSample = fragment.BitsPerSample
		} else if fragment.SampleRate != sampleRate || fragment.NumChannels != numChannels || fragment.BitsPerSample != bitsPerSample {
			return nil, fmt.Errorf("%w: fragment %d is %dHz/%dch/%dbit, expected %dHz/%dch/%dbit",
				ErrFormatMismatch, i, fragment.SampleRate, fragment.NumChannels, fragment.BitsPerSample,
				sampleRate, numChannels, bitsPerSample)
		}
		combined = append(combined, fragment.Data...)
	}

	return Encode(combined, sampleRate, numChannels, bitsPerSample)
}
