package detector

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/filters"
	"github.com/gilesshaxted/karma/internal/history"
)

type emptyHistory struct{}

func (emptyHistory) Recent(string, int) []history.Entry { return nil }

func detectorConfig() *config.GuildModeration {
	cfg := config.DefaultGuildModeration("g1")
	cfg.FilterLinks = true
	return cfg
}

func detectorMessage(content string) *filters.Message {
	return &filters.Message{
		ID:        "msg1",
		GuildID:   "g1",
		ChannelID: "c1",
		AuthorID:  "u1",
		Content:   content,
		Timestamp: time.Now(),
	}
}

func TestDetectFindsInfraction(t *testing.T) {
	assert := assert.New(t)

	d := New(emptyHistory{}, NewRoleExemption())
	inf := d.Detect(detectorMessage("spam https://example.com"), nil, detectorConfig())

	require.NotNil(t, inf)
	assert.Equal("links", inf.Filter)
}

func TestDetectDisabledGuild(t *testing.T) {
	assert := assert.New(t)

	d := New(emptyHistory{}, NewRoleExemption())

	cfg := detectorConfig()
	cfg.Enabled = false
	assert.Nil(d.Detect(detectorMessage("https://example.com"), nil, cfg))

	// a guild with no profile at all is treated the same
	assert.Nil(d.Detect(detectorMessage("https://example.com"), nil, nil))
}

func TestDetectSkipsBots(t *testing.T) {
	assert := assert.New(t)

	d := New(emptyHistory{}, NewRoleExemption())
	m := detectorMessage("https://example.com")
	m.AuthorIsBot = true

	assert.Nil(d.Detect(m, nil, detectorConfig()))
}

func TestDetectSkipsExemptMember(t *testing.T) {
	assert := assert.New(t)

	d := New(emptyHistory{}, NewRoleExemption())

	cfg := detectorConfig()
	cfg.ExemptRoles = []string{"mod-role"}

	member := &discordgo.Member{
		User:  &discordgo.User{ID: "u1"},
		Roles: []string{"other-role", "mod-role"},
	}
	assert.Nil(d.Detect(detectorMessage("https://example.com"), member, cfg))

	member.Roles = []string{"other-role"}
	assert.NotNil(d.Detect(detectorMessage("https://example.com"), member, cfg))
}

func TestDetectIdempotent(t *testing.T) {
	assert := assert.New(t)

	d := New(emptyHistory{}, NewRoleExemption())
	cfg := detectorConfig()
	m := detectorMessage("https://example.com")

	first := d.Detect(m, nil, cfg)
	second := d.Detect(m, nil, cfg)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(*first, *second)
}

func TestRoleExemption(t *testing.T) {
	assert := assert.New(t)

	e := NewRoleExemption()
	cfg := &config.GuildModeration{ExemptRoles: []string{"r1"}}

	// unknown membership is not exempt
	assert.False(e.IsExempt(nil, cfg, "c1"))

	bot := &discordgo.Member{User: &discordgo.User{ID: "b1", Bot: true}}
	assert.True(e.IsExempt(bot, cfg, "c1"))

	exempt := &discordgo.Member{User: &discordgo.User{ID: "u1"}, Roles: []string{"r1"}}
	assert.True(e.IsExempt(exempt, cfg, "c1"))

	plain := &discordgo.Member{User: &discordgo.User{ID: "u2"}, Roles: []string{"r9"}}
	assert.False(e.IsExempt(plain, cfg, "c1"))
}
