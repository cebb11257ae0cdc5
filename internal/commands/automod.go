package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/config"
)

func (h *Handler) setEnabled(s *discordgo.Session, i *discordgo.InteractionCreate, enabled bool) error {
	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		gm.Enabled = enabled
	})
	if err != nil {
		return respond(s, i, "Failed to update configuration.")
	}
	if enabled {
		return respond(s, i, "Auto-moderation enabled.")
	}
	return respond(s, i, "Auto-moderation disabled.")
}

func (h *Handler) setTier(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	raw := optionString(sub, "tier")
	tier, ok := config.ParseTier(raw)
	if !ok {
		return respond(s, i, "Unknown tier.")
	}

	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		gm.ModerationTier = tier
	})
	if err != nil {
		return respond(s, i, "Failed to update configuration.")
	}
	return respond(s, i, fmt.Sprintf("Moderation tier set to **%s**.", tier))
}

func (h *Handler) setFilter(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	name := optionString(sub, "name")
	enabled := optionBool(sub, "enabled")
	threshold, hasThreshold := optionInt(sub, "threshold")

	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		switch name {
		case "repeated":
			gm.FilterRepeated = enabled
		case "spam":
			gm.FilterSpam = enabled
			if hasThreshold {
				gm.SpamCount = threshold
			}
		case "links":
			gm.FilterLinks = enabled
		case "invites":
			gm.FilterInvites = enabled
		case "emoji":
			gm.FilterEmoji = enabled
			if hasThreshold {
				gm.EmojiLimit = threshold
			}
		case "mentions":
			gm.FilterMentions = enabled
			if hasThreshold {
				gm.MentionLimit = threshold
			}
		case "caps":
			gm.FilterCaps = enabled
			if hasThreshold {
				gm.CapsPercent = threshold
			}
		}
	})
	if err != nil {
		return respond(s, i, "Failed to update configuration.")
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return respond(s, i, fmt.Sprintf("Filter **%s** %s.", name, state))
}

func (h *Handler) setChannel(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	kind := optionString(sub, "kind")
	channelID := optionChannelID(sub, "channel")
	if channelID == "" {
		return respond(s, i, "No channel supplied.")
	}

	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		switch kind {
		case "log":
			gm.LogChannelID = channelID
		case "alert":
			gm.AlertChannelID = channelID
		}
	})
	if err != nil {
		return respond(s, i, "Failed to update configuration.")
	}
	return respond(s, i, fmt.Sprintf("%s channel set to <#%s>.", kind, channelID))
}

func optionString(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func optionBool(sub *discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}
	return false
}

func optionInt(sub *discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return int(opt.IntValue()), true
		}
	}
	return 0, false
}

func optionChannelID(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			return opt.Value.(string)
		}
	}
	return ""
}
