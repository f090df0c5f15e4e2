// Package enhance converts parentheticals to comma pauses, rewrites chapter
// and scene headings into spoken sentence starts, and applies a
// user-supplied pronunciation map as the final text transform before
// chunking.
package enhance

import (
	"regexp"

	"github.com/dschilow/talea-narration-engine/internal/config"
)

var (
	parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)
	chapterHeadingRe = regexp.MustCompile(`(?im)^\s*(kapitel\s+\d+)\s*[:\-]\s*`)
	sceneHeadingRe   = regexp.MustCompile(`(?im)^\s*(szene\s+\d+)\s*[:\-]\s*`)
	semicolonRe      = regexp.MustCompile(`;\s*`)
	slashRe          = regexp.MustCompile(`\s*/\s*`)
	ampersandRe      = regexp.MustCompile(`\s*&\s*`)
	exclaimBurstRe   = regexp.MustCompile(`!{2,}`)
	exclaimTripleRe  = regexp.MustCompile(`!{3,}`)
	questionBurstRe  = regexp.MustCompile(`\?{2,}`)
	questionTripleRe = regexp.MustCompile(`\?{3,}`)
	ellipsisRunRe    = regexp.MustCompile(`\.{3,}`)
	topicShiftRe     = regexp.MustCompile(`([.!?])\s*(Doch|Aber|Plötzlich|Dann)\b`)
)

// Enhance rewrites parentheticals, chapter/scene headings, and punctuation
// symbols into a form the synthesis voice reads more naturally, then applies
// the configured pronunciation substitutions. cfg.EnablePhonemeSilence governs
// whether repeated exclamation/question marks collapse to a single mark
// (native pauses) or merely cap at two (no native pauses).
func Enhance(text string, cfg *config.EngineConfig) string {
	text = parentheticalRe.ReplaceAllString(text, ", $1,")

	text = chapterHeadingRe.ReplaceAllString(text, "$1. ")
	text = sceneHeadingRe.ReplaceAllString(text, "$1. ")

	text = semicolonRe.ReplaceAllString(text, ". ")

	text = slashRe.ReplaceAllString(text, " oder ")
	text = ampersandRe.ReplaceAllString(text, " und ")

	if cfg.EnablePhonemeSilence {
		text = exclaimBurstRe.ReplaceAllString(text, "!")
		text = questionBurstRe.ReplaceAllString(text, "?")
	} else {
		text = exclaimTripleRe.ReplaceAllString(text, "!!")
		text = questionTripleRe.ReplaceAllString(text, "??")
	}
	text = ellipsisRunRe.ReplaceAllString(text, "…")

	text = topicShiftRe.ReplaceAllString(text, "$1 … $2")

	return ApplyPronunciations(text, cfg.CustomPronunciations)
}

// ApplyPronunciations runs each configured rule's word-bounded,
// case-insensitive pattern over text in configuration order.
func ApplyPronunciations(text string, rules []config.PronunciationRule) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	return text
}
