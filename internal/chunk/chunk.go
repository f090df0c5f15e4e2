// Package chunk splits prepared story text into synthesis units bounded by
// a character budget and a sentence count, never splitting mid-word and
// starting a new unit at a dialogue/narration boundary once the current unit
// is longer than 40 characters.
package chunk

import (
	"strings"
)

// Chunk is a contiguous text fragment carrying enough context for
// independent synthesis.
type Chunk struct {
	Text        string
	HasDialogue bool
	Sentences   int
}

// Split breaks text into paragraphs, each paragraph into sentences, and
// assembles sentences greedily into chunks bounded by maxChars and
// maxSentences, starting a new chunk at a dialogue/narration transition when
// the current chunk is longer than 40 characters (a shorter lead-in stays
// merged with the following sentence).
func Split(text string, maxChars, maxSentences int) []Chunk {
	var chunks []Chunk

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		var sentences []string
		for _, sentence := range splitSentencesPreserveQuotes(paragraph) {
			if strings.TrimSpace(sentence) == "" {
				continue
			}
			sentences = append(sentences, splitOverlongSentence(sentence, maxChars)...)
		}

		var current strings.Builder
		currentSentenceCount := 0
		currentHasDialogue := false

		flush := func() {
			if current.Len() == 0 {
				return
			}
			chunks = append(chunks, Chunk{
				Text:        strings.TrimSpace(current.String()),
				HasDialogue: currentHasDialogue,
				Sentences:   currentSentenceCount,
			})
			current.Reset()
			currentSentenceCount = 0
			currentHasDialogue = false
		}

		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			hasDialogue := strings.Contains(sentence, `"`)

			if current.Len() == 0 {
				current.WriteString(sentence)
				currentSentenceCount = 1
				currentHasDialogue = hasDialogue
				continue
			}

			wouldExceed := current.Len()+len(sentence)+1 > maxChars
			sentenceLimitHit := currentSentenceCount >= maxInt(1, maxSentences)
			dialogueBoundary := hasDialogue != currentHasDialogue && current.Len() > 40

			if wouldExceed || sentenceLimitHit || dialogueBoundary {
				flush()
				current.WriteString(sentence)
				currentSentenceCount = 1
				currentHasDialogue = hasDialogue
			} else {
				current.WriteString(" ")
				current.WriteString(sentence)
				currentSentenceCount++
				currentHasDialogue = currentHasDialogue || hasDialogue
			}
		}
		flush()
	}

	return chunks
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
