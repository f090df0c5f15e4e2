// Package textnorm turns raw story prose into a pronounceable, rhythmic
// form: abbreviation expansion, number-to-words, quotation normalization,
// markdown stripping, and whitespace cleanup.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

type abbreviation struct {
	pattern     *regexp.Regexp
	replacement string
}

// abbreviations is applied in this exact order; later entries may depend on
// earlier ones having already consumed their matches (e.g. "z.B." before the
// unrelated "z.T." entry).
var abbreviations = []abbreviation{
	{regexp.MustCompile(`\bz\.B\.\b`), "zum Beispiel"},
	{regexp.MustCompile(`\bd\.h\.\b`), "das heißt"},
	{regexp.MustCompile(`\bu\.a\.\b`), "unter anderem"},
	{regexp.MustCompile(`\bbzw\.\b`), "beziehungsweise"},
	{regexp.MustCompile(`\busw\.\b`), "und so weiter"},
	{regexp.MustCompile(`\bu\.s\.w\.\b`), "und so weiter"},
	{regexp.MustCompile(`\bca\.\b`), "circa"},
	{regexp.MustCompile(`\bDr\.\b`), "Doktor"},
	{regexp.MustCompile(`\bProf\.\b`), "Professor"},
	{regexp.MustCompile(`\bHr\.\b`), "Herr"},
	{regexp.MustCompile(`\bFr\.\b`), "Frau"},
	{regexp.MustCompile(`\bNr\.\b`), "Nummer"},
	{regexp.MustCompile(`\bSt\.\b`), "Sankt"},
	{regexp.MustCompile(`\bStr\.\b`), "Straße"},
	{regexp.MustCompile(`\bo\.ä\.\b`), "oder ähnliches"},
	{regexp.MustCompile(`\bs\.o\.\b`), "siehe oben"},
	{regexp.MustCompile(`\bggf\.\b`), "gegebenenfalls"},
	{regexp.MustCompile(`\bevtl\.\b`), "eventuell"},
	{regexp.MustCompile(`\bMio\.\b`), "Millionen"},
	{regexp.MustCompile(`\bMrd\.\b`), "Milliarden"},
	{regexp.MustCompile(`\bz\.T\.\b`), "zum Teil"},
	{regexp.MustCompile(`\bv\.a\.\b`), "vor allem"},
	{regexp.MustCompile(`\bi\.d\.R\.\b`), "in der Regel"},
	{regexp.MustCompile(`\bsog\.\b`), "sogenannt"},
	{regexp.MustCompile(`\behem\.\b`), "ehemalig"},
	{regexp.MustCompile(`\babs\.\b`), "absolut"},
}

var (
	timePattern      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	boldPattern      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.+?)\*`)
	headingPattern   = regexp.MustCompile(`#{1,6}\s*`)
	linkPattern      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	sceneLinePattern = regexp.MustCompile(`(?m)^[*\-]{3,}\s*$`)
	numberRangeRe    = regexp.MustCompile(`\bvon\s+(\d+)\s+bis\s+(\d+)\b`)
	newlineRunsRe    = regexp.MustCompile(`\n+`)
	spaceRunsRe      = regexp.MustCompile(`[ \t]+`)
)

var quoteReplacer = strings.NewReplacer(
	"„", `"`, // „
	"“", `"`, // "
	"”", `"`, // "
	"»", `"`, // »
	"«", `"`, // «
	"›", `"`, // ›
	"‹", `"`, // ‹
)

var dashReplacer = strings.NewReplacer(
	"—", ", ", // em-dash
	"–", ", ", // en-dash
)

// Normalize applies the fixed-order rewrite pipeline described in the
// component design: abbreviations, time expressions, quotation marks,
// markdown stripping, scene markers, number ranges, dashes, whitespace.
func Normalize(text string) string {
	for _, a := range abbreviations {
		text = a.pattern.ReplaceAllString(text, a.replacement)
	}

	text = timePattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := timePattern.FindStringSubmatch(match)
		hour, _ := strconv.Atoi(groups[1])
		minute, _ := strconv.Atoi(groups[2])
		result := NumberToGerman(hour) + " Uhr"
		if minute > 0 {
			result += " " + NumberToGerman(minute)
		}
		return result
	})

	text = quoteReplacer.Replace(text)

	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "$1")

	text = sceneLinePattern.ReplaceAllString(text, "...")

	text = numberRangeRe.ReplaceAllStringFunc(text, func(match string) string {
		groups := numberRangeRe.FindStringSubmatch(match)
		from, _ := strconv.Atoi(groups[1])
		to, _ := strconv.Atoi(groups[2])
		return "von " + NumberToGerman(from) + " bis " + NumberToGerman(to)
	})

	text = dashReplacer.Replace(text)

	text = newlineRunsRe.ReplaceAllString(text, "\n\n")
	text = spaceRunsRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
