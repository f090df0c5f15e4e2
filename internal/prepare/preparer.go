// Package prepare inserts the micro-pause punctuation, dialogue pauses,
// interjection commas, and emphasis markers that make normalized prose read
// naturally out loud instead of as a flat wall of text.
package prepare

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dschilow/talea-narration-engine/internal/textnorm"
)

const attributionVerbs = "sagte|rief|flüsterte|fragte|antwortete|meinte|murmelte|schrie|lachte|" +
	"erklärte|bat|dachte|brummte|seufzte|stöhnte|jubelte|wisperte|knurrte|" +
	"hauchte|schluchzte|jammerte|staunte|schnaubte|zischte|sang|brüllte"

const interjectionWords = "Ach|Oh|Ah|Ooh|Wow|Hey|Hm|Hmm|Na|Naja|Tja|Aha|Ohje|Hoppla|" +
	"Hurra|Ups|Autsch|Aua|Igitt|Pfui|Juhu|Oje|Mensch|Mist|Donnerwetter"

const subordinateConjunctions = "wenn|als|weil|dass|aber|doch|denn|obwohl|damit|bevor|nachdem|während|sobald|ob|falls|solange"

var (
	paragraphBreakRe   = regexp.MustCompile(`\n\n+`)
	doublePeriodRe     = regexp.MustCompile(`\.{2,}`)
	openQuotePauseRe   = regexp.MustCompile(`([.!?])\s*"`)
	attributionPauseRe = regexp.MustCompile(`([.!?])"\s*,?\s*(` + attributionVerbs + `)`)
	midSpeechColonRe   = regexp.MustCompile(`(\w{3,}):\s*"`)
	exclaimDoubleRe    = regexp.MustCompile(`!\s`)
	questionDoubleRe   = regexp.MustCompile(`\?\s`)
	exclaimCollapseRe  = regexp.MustCompile(`!{2,}`)
	questionCollapseRe = regexp.MustCompile(`\?{2,}`)
	subordinateCommaRe = regexp.MustCompile(`(\w{4,})\s+(` + subordinateConjunctions + `)\s`)
	undOderCommaRe     = regexp.MustCompile(`(\w{6,})\s+(und|oder)\s+(\w{4,})`)
	interjectionRe     = regexp.MustCompile(`\b(` + interjectionWords + `)([,!]?\s)`)
	bareNumberRe       = regexp.MustCompile(`\b(\d+)\b`)
	trailingEllipsisRe = regexp.MustCompile(`([.])(\n\n)`)
	allCapsRe          = regexp.MustCompile(`\b[A-ZÄÖÜ]{3,}\b`)
	directAddressRe    = regexp.MustCompile(`,\s*([A-ZÄÖÜ][a-zäöüß]+)\s*,`)
	doubleCommaRe      = regexp.MustCompile(`,\s*,`)
	periodCommaRe      = regexp.MustCompile(`\.\s*,`)
	commaPeriodRe      = regexp.MustCompile(`,\s*\.`)
	fourDotsRe         = regexp.MustCompile(`\.{4,}`)
	tripleDotRe        = regexp.MustCompile(`\.{3}`)
	spaceRunsRe        = regexp.MustCompile(`[ \t]+`)
	lineSpaceRe        = regexp.MustCompile(` *\n *`)
	tripleNewlineRe    = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunctRe = regexp.MustCompile(`\s+([.!?,…])`)
)

var onomatopoeia = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bPlatsch\b`), "Plaatsch"}, {regexp.MustCompile(`\bplatsch\b`), "plaatsch"},
	{regexp.MustCompile(`\bBumm\b`), "Buumm"}, {regexp.MustCompile(`\bbumm\b`), "buumm"},
	{regexp.MustCompile(`\bPuff\b`), "Puuff"}, {regexp.MustCompile(`\bpuff\b`), "puuff"},
	{regexp.MustCompile(`\bKnall\b`), "Knaall"}, {regexp.MustCompile(`\bknall\b`), "knaall"},
	{regexp.MustCompile(`\bZisch\b`), "Ziisch"}, {regexp.MustCompile(`\bzisch\b`), "ziisch"},
	{regexp.MustCompile(`\bKlopf\b`), "Kloopf"}, {regexp.MustCompile(`\bklopf\b`), "kloopf"},
	{regexp.MustCompile(`\bPlopp\b`), "Ploopp"}, {regexp.MustCompile(`\bplopp\b`), "ploopp"},
	{regexp.MustCompile(`\bKrach\b`), "Kraach"}, {regexp.MustCompile(`\bkrach\b`), "kraach"},
	{regexp.MustCompile(`\bHuiii\b`), "Huuiii"},
	{regexp.MustCompile(`\bPssst\b`), "Psssst"},
	{regexp.MustCompile(`\bHuch\b`), "Huuch"}, {regexp.MustCompile(`\bhuch\b`), "huuch"},
	{regexp.MustCompile(`\bWusch\b`), "Wuusch"}, {regexp.MustCompile(`\bwusch\b`), "wuusch"},
	{regexp.MustCompile(`\bSchwupp\b`), "Schwuupp"}, {regexp.MustCompile(`\bschwupp\b`), "schwuupp"},
	{regexp.MustCompile(`\bRums\b`), "Ruums"}, {regexp.MustCompile(`\brums\b`), "ruums"},
	{regexp.MustCompile(`\bPiep\b`), "Pieep"}, {regexp.MustCompile(`\bpiep\b`), "pieep"},
	{regexp.MustCompile(`\bMiau\b`), "Miaauu"}, {regexp.MustCompile(`\bmiau\b`), "miaauu"},
	{regexp.MustCompile(`\bWuff\b`), "Wuuff"}, {regexp.MustCompile(`\bwuff\b`), "wuuff"},
	{regexp.MustCompile(`\bBrumm\b`), "Bruumm"}, {regexp.MustCompile(`\bbrumm\b`), "bruumm"},
	{regexp.MustCompile(`\bRatsch\b`), "Raatsch"}, {regexp.MustCompile(`\bratsch\b`), "raatsch"},
	{regexp.MustCompile(`\bKlirr\b`), "Kliirr"}, {regexp.MustCompile(`\bklirr\b`), "kliirr"},
	{regexp.MustCompile(`\bKling\b`), "Kliing"}, {regexp.MustCompile(`\bkling\b`), "kliing"},
	{regexp.MustCompile(`\bDong\b`), "Doong"}, {regexp.MustCompile(`\bdong\b`), "doong"},
	{regexp.MustCompile(`\bTock\b`), "Toock"}, {regexp.MustCompile(`\btock\b`), "toock"},
	{regexp.MustCompile(`\bTick\b`), "Tiick"}, {regexp.MustCompile(`\btick\b`), "tiick"},
}

var allCapsWhitelist = map[string]bool{
	"ICH": true, "DU": true, "ER": true, "SIE": true, "WIR": true,
	"IHR": true, "DAS": true, "DIE": true, "DER": true, "UND": true, "MIT": true,
}

// Prepare runs the eleven-step pause/emphasis pipeline over already
// normalized text. enablePhonemeSilence selects which of the two mutually
// exclusive exclaim/question handling paths applies: duplicating the mark
// for a model with no native pause support, or collapsing repeats when the
// model will honor phoneme_silence itself.
func Prepare(text string, enablePhonemeSilence bool) string {
	text = paragraphBreakRe.ReplaceAllString(text, ".\n\n")
	text = doublePeriodRe.ReplaceAllStringFunc(text, func(run string) string {
		if len(run) == 2 {
			return "."
		}
		return run
	})

	text = openQuotePauseRe.ReplaceAllString(text, `$1 ... "`)
	text = attributionPauseRe.ReplaceAllString(text, `$1" ... $2`)
	text = midSpeechColonRe.ReplaceAllString(text, `$1: ... "`)

	if !enablePhonemeSilence {
		text = exclaimDoubleRe.ReplaceAllString(text, "!! ")
		text = questionDoubleRe.ReplaceAllString(text, "?? ")
	} else {
		text = exclaimCollapseRe.ReplaceAllString(text, "!")
		text = questionCollapseRe.ReplaceAllString(text, "?")
	}

	text = subordinateCommaRe.ReplaceAllString(text, "$1, $2 ")
	text = undOderCommaRe.ReplaceAllString(text, "$1, $2 $3")

	text = interjectionRe.ReplaceAllString(text, "$1, ... ")

	text = bareNumberRe.ReplaceAllStringFunc(text, func(match string) string {
		n, err := strconv.Atoi(match)
		if err != nil {
			return match
		}
		return textnorm.NumberToGerman(n)
	})

	for _, sound := range onomatopoeia {
		text = sound.pattern.ReplaceAllString(text, sound.replacement)
	}

	text = trailingEllipsisRe.ReplaceAllString(text, "$1 …$2")

	text = allCapsRe.ReplaceAllStringFunc(text, capitalizeAllCaps)

	text = directAddressRe.ReplaceAllString(text, ", $1, ")

	text = doubleCommaRe.ReplaceAllString(text, ",")
	text = periodCommaRe.ReplaceAllString(text, ".")
	text = commaPeriodRe.ReplaceAllString(text, ".")
	text = fourDotsRe.ReplaceAllString(text, "…")
	text = tripleDotRe.ReplaceAllString(text, "…")
	text = spaceRunsRe.ReplaceAllString(text, " ")
	text = lineSpaceRe.ReplaceAllString(text, "\n")
	text = tripleNewlineRe.ReplaceAllString(text, "\n\n")
	text = spaceBeforePunctRe.ReplaceAllString(text, "$1")

	return strings.TrimSpace(text)
}

// capitalizeAllCaps title-cases an all-caps run of 3+ letters, leaving the
// words in allCapsWhitelist unchanged.
func capitalizeAllCaps(word string) string {
	if allCapsWhitelist[word] {
		return word
	}
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
