package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAbbreviations(t *testing.T) {
	out := Normalize("Ich bin z.B. müde.")
	assert.Contains(t, out, "zum Beispiel")
}

func TestNormalizeTimeExpression(t *testing.T) {
	out := Normalize("Wir treffen uns um 14:30 Uhr.")
	assert.Contains(t, out, "vierzehn Uhr dreißig")
}

func TestNormalizeTimeExpressionZeroMinutes(t *testing.T) {
	out := Normalize("Der Zug fährt um 09:00 ab.")
	assert.Contains(t, out, "neun Uhr")
	assert.NotContains(t, out, "neun Uhr null")
}

func TestNormalizeQuotationMarks(t *testing.T) {
	out := Normalize("„Hallo“ sagte sie zu »ihm« und ‹ihr›.")
	assert.NotContains(t, out, "„")
	assert.NotContains(t, out, "»")
	assert.NotContains(t, out, "‹")
}

func TestNormalizeMarkdownStripping(t *testing.T) {
	out := Normalize("Das ist **wichtig** und *betont* und [ein Link](http://example.com).")
	assert.Contains(t, out, "wichtig")
	assert.Contains(t, out, "betont")
	assert.Contains(t, out, "ein Link")
	assert.NotContains(t, out, "http://example.com")
}

func TestNormalizeNumberRange(t *testing.T) {
	out := Normalize("Es waren von 3 bis 7 Kinder da.")
	assert.Contains(t, out, "von drei bis sieben")
}

func TestNormalizeDashes(t *testing.T) {
	out := Normalize("Es war spät — sehr spät.")
	assert.Contains(t, out, ", ")
	assert.NotContains(t, out, "—")
}

func TestNormalizeWhitespaceCollapse(t *testing.T) {
	out := Normalize("Zeile eins\n\n\n\nZeile zwei   mit   Leerzeichen")
	assert.NotContains(t, out, "\n\n\n")
	assert.NotContains(t, out, "   ")
}

func TestNumberToGerman(t *testing.T) {
	cases := map[int]string{
		0:    "null",
		1:    "eins",
		14:   "vierzehn",
		21:   "einundzwanzig",
		30:   "dreißig",
		45:   "fünfundvierzig",
		100:  "hundert",
		123:  "einshundertdreiundzwanzig",
		200:  "zweihundert",
		1000: "einstausend",
		1999: "einstausendneunhundertneunundneunzig",
	}
	for n, want := range cases {
		assert.Equal(t, want, NumberToGerman(n), "n=%d", n)
	}
}

func TestNumberToGermanOutOfRange(t *testing.T) {
	assert.Equal(t, "10000", NumberToGerman(10000))
	assert.Equal(t, "-5", NumberToGerman(-5))
}
