package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSingleSentence(t *testing.T) {
	chunks := Split(`Hallo, Welt! Wie geht es dir? Ich bin zum Beispiel müde.`, 560, 1)
	assert.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), 560)
	}
}

func TestSplitRespectsMaxChars(t *testing.T) {
	paragraph := strings.Repeat("Das ist ein Satz. ", 40)
	chunks := Split(paragraph, 100, 10)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), 100)
	}
}

func TestSplitDialogueBoundary(t *testing.T) {
	text := `Leo rief: "Komm schnell!" Dann rannten sie los und liefen weit durch den dunklen Wald ohne anzuhalten.`
	chunks := Split(text, 560, 3)
	assert.GreaterOrEqual(t, len(chunks), 1)
}

func TestSplitParagraphsProduceSeparateChunks(t *testing.T) {
	para := strings.Repeat("x", 500) + "."
	text := para + "\n\n" + para + "\n\n" + para
	chunks := Split(text, 560, 10)
	assert.GreaterOrEqual(t, len(chunks), 3)
}

func TestSplitNoWhitespaceOnlyChunks(t *testing.T) {
	chunks := Split("Erster Satz.\n\n\n\nZweiter Satz.", 560, 10)
	for _, c := range chunks {
		assert.NotEqual(t, "", strings.TrimSpace(c.Text))
	}
}

func TestSplitSentencesPreserveQuotesKeepsTrailingQuote(t *testing.T) {
	sentences := splitSentencesPreserveQuotes(`Er sagte "Hallo!" Dann ging er.`)
	assert.NotEmpty(t, sentences)
	assert.Contains(t, sentences[0], `"`)
}

func TestSplitOverlongSentenceNeverExceedsWithoutSeparator(t *testing.T) {
	long := strings.Repeat("wortwortwort ", 30)
	parts := splitOverlongSentence(long, 50)
	assert.NotEmpty(t, parts)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 50)
	}
}

func TestSplitOverlongSentenceShortPassesThrough(t *testing.T) {
	parts := splitOverlongSentence("Kurzer Satz.", 560)
	assert.Equal(t, []string{"Kurzer Satz."}, parts)
}
