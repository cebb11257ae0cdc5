// Package wordlist resolves the effective blocked/allowed vocabulary for a
// guild: custom whitelist, custom blacklist, and the built-in tier lists.
// Whitelist wins over everything.
package wordlist

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gilesshaxted/karma/internal/config"
)

type Decision uint8

const (
	DecisionNone Decision = iota
	DecisionWhitelisted
	DecisionBlacklisted
	DecisionTierFlagged
)

func (d Decision) String() string {
	switch d {
	case DecisionWhitelisted:
		return "whitelisted"
	case DecisionBlacklisted:
		return "blacklisted"
	case DecisionTierFlagged:
		return "tier-flagged"
	default:
		return "none"
	}
}

// Matcher is the substring scanner behind Resolve. The default implementation
// is a linear scan; large deployments can swap in a compiled matcher without
// touching call sites.
type Matcher interface {
	// MatchAny reports whether any entry is a substring of content.
	// Content is expected to be normalized already.
	MatchAny(content string, entries []string) bool
}

type substringMatcher struct{}

func (substringMatcher) MatchAny(content string, entries []string) bool {
	for _, entry := range entries {
		if entry != "" && strings.Contains(content, entry) {
			return true
		}
	}
	return false
}

type Resolver struct {
	matcher Matcher
}

func NewResolver() *Resolver {
	return &Resolver{matcher: substringMatcher{}}
}

func NewResolverWithMatcher(m Matcher) *Resolver {
	return &Resolver{matcher: m}
}

// Resolve scans message content against the guild's word lists. Precedence:
// whitelist suppresses everything, then custom blacklist, then the tier list.
func (r *Resolver) Resolve(content string, cfg *config.GuildModeration) (Decision, string) {
	normalized := Normalize(content)

	if r.matcher.MatchAny(normalized, SplitList(cfg.WhitelistedWords)) {
		return DecisionWhitelisted, ""
	}

	if r.matcher.MatchAny(normalized, SplitList(cfg.BlacklistedWords)) {
		return DecisionBlacklisted, "Blacklisted word detected."
	}

	if r.matcher.MatchAny(normalized, config.TierWords(cfg.ModerationTier)) {
		return DecisionTierFlagged, fmt.Sprintf("Word flagged by the %s moderation tier.", cfg.ModerationTier)
	}

	return DecisionNone, ""
}

// Normalize lower-cases and unicode-normalizes text (NFD, strip combining
// marks, NFC) so decorated look-alikes match their plain forms.
func Normalize(text string) string {
	// the transform chain is stateful and cannot be shared across calls
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	lowered := strings.ToLower(text)
	out, _, err := transform.String(normFunc, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// SplitList splits a comma-separated word list into normalized entries.
// Empty and whitespace-only tokens are dropped so an empty stored list can
// never match everything.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		entry := Normalize(strings.TrimSpace(p))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
