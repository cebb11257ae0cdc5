package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gilesshaxted/karma/internal/config"
)

func TestResolveBlacklist(t *testing.T) {
	assert := assert.New(t)
	r := NewResolver()

	cfg := &config.GuildModeration{BlacklistedWords: "badword, otherword"}

	decision, reason := r.Resolve("this contains a badword here", cfg)
	assert.Equal(DecisionBlacklisted, decision)
	assert.Equal("Blacklisted word detected.", reason)

	decision, _ = r.Resolve("perfectly fine message", cfg)
	assert.Equal(DecisionNone, decision)
}

func TestResolveWhitelistWins(t *testing.T) {
	assert := assert.New(t)
	r := NewResolver()

	cfg := &config.GuildModeration{
		BlacklistedWords: "scunthorpe",
		WhitelistedWords: "scunthorpe",
		ModerationTier:   config.TierHigh,
	}

	decision, reason := r.Resolve("greetings from scunthorpe", cfg)
	assert.Equal(DecisionWhitelisted, decision)
	assert.Empty(reason)
}

func TestResolveTier(t *testing.T) {
	assert := assert.New(t)
	r := NewResolver()

	cfg := &config.GuildModeration{ModerationTier: config.TierHigh}
	decision, reason := r.Resolve("what the fuck", cfg)
	assert.Equal(DecisionTierFlagged, decision)
	assert.Contains(reason, "high")

	cfg.ModerationTier = config.TierNone
	decision, _ = r.Resolve("what the fuck", cfg)
	assert.Equal(DecisionNone, decision)
}

func TestResolveCaseAndDiacritics(t *testing.T) {
	assert := assert.New(t)
	r := NewResolver()

	cfg := &config.GuildModeration{BlacklistedWords: "badword"}

	decision, _ := r.Resolve("BADWORD", cfg)
	assert.Equal(DecisionBlacklisted, decision)

	// decorated look-alike collapses to the plain form
	decision, _ = r.Resolve("bádwörd", cfg)
	assert.Equal(DecisionBlacklisted, decision)
}

func TestResolveEmptyLists(t *testing.T) {
	assert := assert.New(t)
	r := NewResolver()

	cfg := &config.GuildModeration{}
	decision, _ := r.Resolve("anything at all", cfg)
	assert.Equal(DecisionNone, decision)
}

func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("cafe", Normalize("Café"))
	assert.Equal("hello", Normalize("HELLO"))
	assert.Equal("", Normalize(""))
}

func TestSplitList(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"one", "two", "three"}, SplitList("one, Two ,three"))
	assert.Nil(SplitList(""))
	assert.Nil(SplitList("   "))
	// stray commas must not produce empty entries that match everything
	assert.Equal([]string{"word"}, SplitList(",word,,"))
}

func TestDecisionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("none", DecisionNone.String())
	assert.Equal("whitelisted", DecisionWhitelisted.String())
	assert.Equal("blacklisted", DecisionBlacklisted.String())
	assert.Equal("tier-flagged", DecisionTierFlagged.String())
}
