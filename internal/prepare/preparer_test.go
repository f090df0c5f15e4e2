package prepare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepareParagraphBreakPause(t *testing.T) {
	out := Prepare("Erster Satz.\n\nZweiter Satz.", true)
	assert.Contains(t, out, "Erster Satz.")
}

func TestPrepareExclaimDuplicationWithoutPhonemeSilence(t *testing.T) {
	out := Prepare("Komm schnell! Wir müssen los.", false)
	assert.Contains(t, out, "!!")
}

func TestPrepareExclaimCollapseWithPhonemeSilence(t *testing.T) {
	out := Prepare("Komm schnell!!! Wir müssen los.", true)
	assert.NotContains(t, out, "!!")
}

func TestPrepareSubordinateConjunctionComma(t *testing.T) {
	out := Prepare("Sie blieben zuhause weil es regnete draußen.", true)
	assert.Contains(t, out, ", weil")
}

func TestPrepareInterjectionPause(t *testing.T) {
	out := Prepare("Ach, das ist schön.", true)
	assert.Contains(t, out, "Ach…")
}

func TestPrepareBareNumberPronunciation(t *testing.T) {
	out := Prepare("Es waren 7 Kinder im Garten.", true)
	assert.Contains(t, out, "sieben")
}

func TestPrepareOnomatopoeiaStretch(t *testing.T) {
	out := Prepare("Platsch machte der Stein im Wasser.", true)
	assert.Contains(t, out, "Plaatsch")
}

func TestPrepareDirectAddressSpacing(t *testing.T) {
	out := Prepare("Komm, Leo, wir gehen.", true)
	assert.Contains(t, out, ", Leo, ")
}

func TestPreparePunctuationArtifactCleanup(t *testing.T) {
	out := Prepare("Das war schön,, wirklich.,", true)
	assert.NotContains(t, out, ",,")
}
