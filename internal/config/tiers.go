package config

import "strings"

type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Built-in severity word lists. Each tier includes everything from the tiers
// below it: "low" only catches the worst language, "high" is aggressive.
var (
	tierLowWords = []string{
		"retard", "faggot", "cunt",
	}

	tierMediumWords = concat(tierLowWords, []string{
		"fuck", "motherfucker", "dickhead", "asshole", "bitch", "bastard",
		"whore", "slut",
	})

	tierHighWords = concat(tierMediumWords, []string{
		"shit", "bullshit", "damn", "goddamn", "piss", "crap", "dick",
		"cock", "pussy", "twat", "wanker", "prick", "arse",
	})
)

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierNone:
		return TierNone, true
	case TierLow:
		return TierLow, true
	case TierMedium:
		return TierMedium, true
	case TierHigh:
		return TierHigh, true
	}
	return TierNone, false
}

// TierWords returns the built-in word list for a tier. TierNone (and anything
// unrecognized) resolves to an empty list so it can never match.
func TierWords(t Tier) []string {
	switch t {
	case TierLow:
		return tierLowWords
	case TierMedium:
		return tierMediumWords
	case TierHigh:
		return tierHighWords
	default:
		return nil
	}
}
