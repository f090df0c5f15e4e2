package prosody

import (
	"regexp"
	"strings"

	"github.com/dschilow/talea-narration-engine/internal/config"
)

const nameCharset = `[A-Za-zÄÖÜäöüß][A-Za-zÄÖÜäöüß0-9_-]{1,24}`

const speechVerbs = `sagte|fragte|antwortete|rief|schrie|fl[üu]sterte|murmelte|` +
	`meinte|br[üu]llte|jammerte|lachte|seufzte|knurrte|wisperte|hauchte`

var (
	hintColonQuoteRe = regexp.MustCompile(`(?i)\b(` + nameCharset + `)\s*:\s*"`)
	hintVerbAfterRe  = regexp.MustCompile(`(?i)"\s*,?\s*(?:` + speechVerbs + `)\s+(` + nameCharset + `)\b`)
	hintVerbBeforeRe = regexp.MustCompile(`(?i)\b(` + nameCharset + `)\s+(?:` + speechVerbs + `)\b`)
)

// ExtractSpeakerHint finds the first of three name patterns in a chunk of
// text: `Name: "`, `"…", sagte Name`, and `Name sagte`. Returns the
// lowercased name and true, or "" and false if none match.
func ExtractSpeakerHint(chunk string) (string, bool) {
	if m := hintColonQuoteRe.FindStringSubmatch(chunk); m != nil {
		return strings.ToLower(m[1]), true
	}
	if m := hintVerbAfterRe.FindStringSubmatch(chunk); m != nil {
		return strings.ToLower(m[1]), true
	}
	if m := hintVerbBeforeRe.FindStringSubmatch(chunk); m != nil {
		return strings.ToLower(m[1]), true
	}
	return "", false
}

// SpeakerHashProfile derives a deterministic voice variation for a speaker
// with no explicit configured profile, so every character still gets a
// distinct but stable flavor. The hash formula (Σ (i+1)·codepoint_i) must
// match bit-exactly across implementations since it is observable through
// output prosody.
func SpeakerHashProfile(name string) config.VoiceProfile {
	seed := 0
	for index, r := range []rune(name) {
		seed += (index + 1) * int(r)
	}
	lengthMultiplier := 0.96 + float64(seed%9)/100.0
	noiseDelta := float64(mod(seed/17, 11)-5) / 100.0
	noiseWDelta := float64(mod(seed/255, 11)-5) / 100.0
	return config.VoiceProfile{
		LengthMultiplier: lengthMultiplier,
		NoiseDelta:       noiseDelta,
		NoiseWDelta:      noiseWDelta,
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
