package config

import (
	"sync"
	"time"
)

// GuildModeration is the per-guild auto-moderation profile. The columns in the
// guild_config table map onto this struct one to one; the word lists stay
// comma-separated free text the way staff enter them in commands.
type GuildModeration struct {
	GuildID string
	Enabled bool

	ModerationTier   Tier
	BlacklistedWords string
	WhitelistedWords string

	FilterRepeated bool

	FilterSpam    bool
	SpamCount     int
	SpamTimeframe int // seconds

	FilterLinks   bool
	FilterInvites bool

	FilterEmoji bool
	EmojiLimit  int

	FilterMentions bool
	MentionLimit   int

	FilterCaps  bool
	CapsPercent int

	ExemptRoles []string

	LogChannelID   string
	AlertChannelID string

	CreatedAt int64
	UpdatedAt int64
}

type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*GuildModeration
}

var GlobalProfiles *ProfileStore

func InitGuildProfiles() {
	GlobalProfiles = &ProfileStore{
		profiles: make(map[string]*GuildModeration),
	}
}

func GetProfileStore() *ProfileStore {
	if GlobalProfiles == nil {
		InitGuildProfiles()
	}
	return GlobalProfiles
}

func (ps *ProfileStore) Get(guildID string) *GuildModeration {
	ps.mu.RLock()
	profile := ps.profiles[guildID]
	ps.mu.RUnlock()
	return profile
}

func (ps *ProfileStore) Set(profile *GuildModeration) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.profiles[profile.GuildID] = profile
}

func (ps *ProfileStore) GetOrCreate(guildID string) *GuildModeration {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if profile, exists := ps.profiles[guildID]; exists {
		return profile
	}

	profile := DefaultGuildModeration(guildID)
	ps.profiles[guildID] = profile
	return profile
}

func (ps *ProfileStore) Remove(guildID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.profiles, guildID)
}

func (ps *ProfileStore) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.profiles)
}

func DefaultGuildModeration(guildID string) *GuildModeration {
	now := time.Now().Unix()
	return &GuildModeration{
		GuildID:        guildID,
		Enabled:        true,
		ModerationTier: TierNone,
		FilterRepeated: false,
		FilterSpam:     false,
		SpamCount:      5,
		SpamTimeframe:  10,
		FilterLinks:    false,
		FilterInvites:  true,
		FilterEmoji:    false,
		EmojiLimit:     8,
		FilterMentions: false,
		MentionLimit:   6,
		FilterCaps:     false,
		CapsPercent:    70,
		ExemptRoles:    make([]string, 0),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
