package audio

// GenerateSilence builds a zero-filled mono 16-bit PCM WAV fragment of the
// given duration at sampleRate.
func GenerateSilence(durationMs, sampleRate int) ([]byte, error) {
	const bitsPerSample = 16
	const numChannels = 1

	numSamples := sampleRate * durationMs / 1000
	blockAlign := numChannels * (bitsPerSample / 8)
	pcm := make([]byte, numSamples*blockAlign)

	return Encode(pcm, sampleRate, numChannels, bitsPerSample)
}

// BoundaryClass names the silence duration category chosen between two
// adjacent chunks.
type BoundaryClass string

const (
	BoundaryScene    BoundaryClass = "scene"
	BoundaryDialogue BoundaryClass = "dialogue"
	BoundaryExclaim  BoundaryClass = "exclaim"
	BoundaryQuestion BoundaryClass = "question"
	BoundaryPeriod   BoundaryClass = "period"
	BoundaryComma    BoundaryClass = "comma"
	BoundaryDefault  BoundaryClass = "default"
)

// ClassifyBoundary inspects the trailing character of the left chunk (after
// stripping trailing quote marks) and the dialogue-ness of both chunks to
// pick the boundary class governing the silence gap between them.
func ClassifyBoundary(leftText string, leftHasDialogue, rightHasDialogue bool) BoundaryClass {
	tail := trimRightQuotes(leftText)

	if hasSuffixAny(tail, "...", "…") {
		return BoundaryScene
	}
	if leftHasDialogue != rightHasDialogue {
		return BoundaryDialogue
	}
	if hasSuffixAny(tail, "!!", "!") {
		return BoundaryExclaim
	}
	if hasSuffixAny(tail, "??", "?") {
		return BoundaryQuestion
	}
	if hasSuffixAny(tail, ".") {
		return BoundaryPeriod
	}
	if hasSuffixAny(tail, ",", ":", ";") {
		return BoundaryComma
	}
	return BoundaryDefault
}

func trimRightQuotes(s string) string {
	runes := []rune(s)
	end := len(runes)
	for end > 0 && (runes[end-1] == ' ' || runes[end-1] == '\t' || runes[end-1] == '\n') {
		end--
	}
	for end > 0 && (runes[end-1] == '"' || runes[end-1] == '\'') {
		end--
	}
	return string(runes[:end])
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
