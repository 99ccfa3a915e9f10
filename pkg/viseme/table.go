package viseme

import (
	"strings"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// visemeByPhoneme buckets ARPABET vowels into mouth shapes. Stress digits
// are stripped before lookup, so "AE1" resolves via "AE". Anything not in
// the table (silence, consonants, unknown labels) maps to neutral.
var visemeByPhoneme = map[string]domain.Expression{
	// Open, relaxed jaw.
	"AH": domain.ExprSpeakingAh,
	"AA": domain.ExprSpeakingAh,
	"AO": domain.ExprSpeakingAh,
	"ER": domain.ExprSpeakingAh,

	// Wide, teeth showing.
	"IY": domain.ExprSpeakingEe,
	"IH": domain.ExprSpeakingEe,
	"EH": domain.ExprSpeakingEe,
	"EY": domain.ExprSpeakingEe,
	"AE": domain.ExprSpeakingEe,
	"AY": domain.ExprSpeakingEe,

	// Rounded, pursed lips.
	"UW": domain.ExprSpeakingUw,
	"UH": domain.ExprSpeakingUw,

	// Rounded with dropped jaw.
	"OW": domain.ExprOhRound,
	"OY": domain.ExprOhRound,
	"AW": domain.ExprOhRound,
}

// Map resolves a phoneme label to its viseme expression.
func Map(label string) domain.Expression {
	base := strings.TrimRight(label, "012")
	if expr, ok := visemeByPhoneme[base]; ok {
		return expr
	}
	return domain.ExprNeutral
}

// IsVowel reports whether the label maps to a non-neutral mouth shape.
func IsVowel(label string) bool {
	return Map(label) != domain.ExprNeutral
}
