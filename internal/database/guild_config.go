package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gilesshaxted/karma/internal/config"
)

// GetGuildConfig loads one guild's moderation profile. A missing row returns
// (nil, nil): moderation disabled, not an error.
func (d *Database) GetGuildConfig(guildID string) (*config.GuildModeration, error) {
	row := d.db.QueryRow(`
		SELECT guild_id, enabled, moderation_tier, blacklisted_words, whitelisted_words,
		       filter_repeated, filter_spam, spam_count, spam_timeframe,
		       filter_links, filter_invites, filter_emoji, emoji_limit,
		       filter_mentions, mention_limit, filter_caps, caps_percent,
		       exempt_roles, log_channel_id, alert_channel_id, created_at, updated_at
		FROM guild_config WHERE guild_id = ?`, guildID)

	var gm config.GuildModeration
	var tier, exemptRoles string
	err := row.Scan(&gm.GuildID, &gm.Enabled, &tier, &gm.BlacklistedWords, &gm.WhitelistedWords,
		&gm.FilterRepeated, &gm.FilterSpam, &gm.SpamCount, &gm.SpamTimeframe,
		&gm.FilterLinks, &gm.FilterInvites, &gm.FilterEmoji, &gm.EmojiLimit,
		&gm.FilterMentions, &gm.MentionLimit, &gm.FilterCaps, &gm.CapsPercent,
		&exemptRoles, &gm.LogChannelID, &gm.AlertChannelID, &gm.CreatedAt, &gm.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guild config %s: %w", guildID, err)
	}

	gm.ModerationTier, _ = config.ParseTier(tier)
	gm.ExemptRoles = splitIDs(exemptRoles)
	return &gm, nil
}

// UpsertGuildConfig writes the full profile back.
func (d *Database) UpsertGuildConfig(gm *config.GuildModeration) error {
	gm.UpdatedAt = time.Now().Unix()
	if gm.CreatedAt == 0 {
		gm.CreatedAt = gm.UpdatedAt
	}

	_, err := d.db.Exec(`
		INSERT INTO guild_config (
			guild_id, enabled, moderation_tier, blacklisted_words, whitelisted_words,
			filter_repeated, filter_spam, spam_count, spam_timeframe,
			filter_links, filter_invites, filter_emoji, emoji_limit,
			filter_mentions, mention_limit, filter_caps, caps_percent,
			exempt_roles, log_channel_id, alert_channel_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			enabled=excluded.enabled,
			moderation_tier=excluded.moderation_tier,
			blacklisted_words=excluded.blacklisted_words,
			whitelisted_words=excluded.whitelisted_words,
			filter_repeated=excluded.filter_repeated,
			filter_spam=excluded.filter_spam,
			spam_count=excluded.spam_count,
			spam_timeframe=excluded.spam_timeframe,
			filter_links=excluded.filter_links,
			filter_invites=excluded.filter_invites,
			filter_emoji=excluded.filter_emoji,
			emoji_limit=excluded.emoji_limit,
			filter_mentions=excluded.filter_mentions,
			mention_limit=excluded.mention_limit,
			filter_caps=excluded.filter_caps,
			caps_percent=excluded.caps_percent,
			exempt_roles=excluded.exempt_roles,
			log_channel_id=excluded.log_channel_id,
			alert_channel_id=excluded.alert_channel_id,
			updated_at=excluded.updated_at`,
		gm.GuildID, gm.Enabled, string(gm.ModerationTier), gm.BlacklistedWords, gm.WhitelistedWords,
		gm.FilterRepeated, gm.FilterSpam, gm.SpamCount, gm.SpamTimeframe,
		gm.FilterLinks, gm.FilterInvites, gm.FilterEmoji, gm.EmojiLimit,
		gm.FilterMentions, gm.MentionLimit, gm.FilterCaps, gm.CapsPercent,
		joinIDs(gm.ExemptRoles), gm.LogChannelID, gm.AlertChannelID, gm.CreatedAt, gm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert guild config %s: %w", gm.GuildID, err)
	}
	return nil
}

// EnsureGuildConfigExists inserts a default row for new guilds.
func (d *Database) EnsureGuildConfigExists(guildID string) error {
	existing, err := d.GetGuildConfig(guildID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return d.UpsertGuildConfig(config.DefaultGuildModeration(guildID))
}

// SyncAllGuildsToCache loads every stored profile into the in-memory store.
func (d *Database) SyncAllGuildsToCache() error {
	rows, err := d.db.Query(`SELECT guild_id FROM guild_config`)
	if err != nil {
		return fmt.Errorf("failed to list guild configs: %w", err)
	}
	defer rows.Close()

	store := config.GetProfileStore()
	for rows.Next() {
		var guildID string
		if err := rows.Scan(&guildID); err != nil {
			return err
		}
		gm, err := d.GetGuildConfig(guildID)
		if err != nil {
			return err
		}
		if gm != nil {
			store.Set(gm)
		}
	}
	return rows.Err()
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
